package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/metrics"
	"gymdesk/internal/adapters/sms"
	"gymdesk/internal/adapters/storage"
	accountStore "gymdesk/internal/adapters/storage/account"
	auditStore "gymdesk/internal/adapters/storage/audit"
	checkinStore "gymdesk/internal/adapters/storage/checkin"
	gymClassStore "gymdesk/internal/adapters/storage/gymclass"
	memberStore "gymdesk/internal/adapters/storage/member"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	reminderStore "gymdesk/internal/adapters/storage/reminder"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/config"
	"gymdesk/internal/domain/clock"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_event", "event", "config_invalid", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server_event", "event", "server_failed", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the process-wide slog handler: JSON in production, text elsewhere.
func setupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.CSRFKeyGenerated {
		slog.Warn("config_event", "event", "csrf_key_generated", "detail", "set GYM_CSRF_KEY so sessions survive restarts")
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		return err
	}

	reg := metrics.New()
	timedDB := storage.NewTimedDB(db, reg, cfg.SlowQueryMs)
	clk := clock.New(cfg.UTCOffset)

	stores := web.Stores{
		AccountStore:  accountStore.NewSQLiteStore(timedDB),
		MemberStore:   memberStore.NewSQLiteStore(timedDB),
		CheckinStore:  checkinStore.NewSQLiteStore(timedDB),
		ClassStore:    gymClassStore.NewSQLiteStore(timedDB),
		TrainerStore:  trainerStore.NewSQLiteStore(timedDB),
		PaymentStore:  paymentStore.NewSQLiteStore(timedDB),
		ReminderStore: reminderStore.NewSQLiteStore(timedDB),
		AuditStore:    auditStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore, Clock: clk}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	sender, err := sms.New(ctx, sms.Config{
		Transport:   cfg.SMSTransport,
		CountryCode: cfg.SMSCountryCode,
		AWSRegion:   cfg.AWSRegion,
		SNSSenderID: cfg.SNSSenderID,
		ResendKey:   cfg.ResendKey,
		ResendFrom:  cfg.ResendFrom,
		EmailDomain: cfg.SMSEmailDomain,
	})
	if err != nil {
		return err
	}
	if cfg.IsProduction() && sender.Name() == sms.TransportLog {
		slog.Warn("config_event", "event", "sms_simulated", "detail", "reminders are logged, not delivered")
	}

	server, err := web.NewServer(stores, sender, clk, reg, web.Config{
		GymName:       cfg.GymName,
		Secure:        cfg.IsProduction(),
		CSRFKey:       cfg.CSRFKey,
		RateLimit:     cfg.RateLimit,
		SlowRequestMs: cfg.SlowRequestMs,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_event", "event", "server_started",
			"version", version,
			"addr", cfg.Addr,
			"env", cfg.Env,
			"schema", storage.LatestSchemaVersion(),
			"sms_transport", sender.Name(),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_event", "event", "server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
