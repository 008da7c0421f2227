// Package web serves the front-desk pages and the JSON endpoints used by the desk script.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/metrics"
	"gymdesk/internal/adapters/sms"
	accountStore "gymdesk/internal/adapters/storage/account"
	auditStore "gymdesk/internal/adapters/storage/audit"
	checkinStore "gymdesk/internal/adapters/storage/checkin"
	gymClassStore "gymdesk/internal/adapters/storage/gymclass"
	memberStore "gymdesk/internal/adapters/storage/member"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	reminderStore "gymdesk/internal/adapters/storage/reminder"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/clock"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pages lists every template rendered inside layout.html.
var pages = []string{
	"login.html",
	"dashboard.html",
	"members.html",
	"member_form.html",
	"checkins.html",
	"classes.html",
	"class_form.html",
	"trainers.html",
	"trainer_form.html",
	"payments.html",
	"payment_form.html",
	"change_password.html",
	"activity.html",
}

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	MemberStore   memberStore.Store
	CheckinStore  checkinStore.Store
	ClassStore    gymClassStore.Store
	TrainerStore  trainerStore.Store
	PaymentStore  paymentStore.Store
	ReminderStore reminderStore.Store
	AuditStore    auditStore.Store
}

// Config carries the HTTP-facing settings resolved at startup.
type Config struct {
	GymName        string
	Secure         bool // production: Secure cookies, TLS-only CSRF checks
	CSRFKey        []byte
	TrustedOrigins []string
	RateLimit      int // requests per second per IP
	SlowRequestMs  int
}

// Server owns the dependencies every handler needs.
type Server struct {
	stores     Stores
	sessions   *middleware.SessionStore
	clock      clock.Clock
	sender     sms.Sender
	metrics    *metrics.Registry
	cfg        Config
	templates  map[string]*template.Template
	generateID orchestrators.IDGenerator
}

// NewServer parses the embedded templates once and returns a ready Server.
// PRE: stores are fully populated; sender is non-nil; len(cfg.CSRFKey) == 32
// POST: Handler() may be called; a nil registry is replaced by a private one
func NewServer(stores Stores, sender sms.Sender, clk clock.Clock, reg *metrics.Registry, cfg Config) (*Server, error) {
	if reg == nil {
		reg = metrics.New()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.GymName == "" {
		cfg.GymName = "Fitness Club"
	}

	tpls := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tpl, err := template.New("layout.html").Funcs(templateFuncs(clk)).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		tpls[page] = tpl
	}

	return &Server{
		stores:    stores,
		sessions:  middleware.NewSessionStore(cfg.Secure),
		clock:     clk,
		sender:    sender,
		metrics:   reg,
		cfg:       cfg,
		templates: tpls,
	}, nil
}

// jsonRoutes are the path prefixes app.js posts JSON bodies to.
var jsonRoutes = []string{"/api/", "/send_reminder/"}

// Handler wires the routes and wraps them in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	limiter := middleware.NewRateLimiter(s.cfg.RateLimit, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(middleware.RoutePattern(mux),
		middleware.SecurityHeaders,
		middleware.CSRF(s.cfg.CSRFKey, middleware.CSRFOptions{
			Secure:         s.cfg.Secure,
			TrustedOrigins: s.cfg.TrustedOrigins,
			JSONPaths:      jsonRoutes,
		}),
		middleware.Auth(s.sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(s.metrics, s.cfg.SlowRequestMs),
	)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	auth := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	mux.Handle("GET /whoami", auth(s.handleWhoAmI))
	mux.Handle("GET /change-password", auth(s.handleChangePasswordForm))
	mux.Handle("POST /change-password", auth(s.handleChangePassword))
	mux.Handle("GET /dashboard", auth(s.handleDashboard))

	mux.Handle("GET /members", auth(s.handleMembers))
	mux.Handle("GET /members/new", admin(s.handleMemberNewForm))
	mux.Handle("POST /members/new", admin(s.handleMemberCreate))
	mux.Handle("GET /members/{id}/edit", admin(s.handleMemberEditForm))
	mux.Handle("POST /members/{id}/edit", admin(s.handleMemberUpdate))
	mux.Handle("POST /members/{id}/delete", admin(s.handleMemberDelete))

	mux.Handle("POST /checkin/{id}", admin(s.handleCheckIn))
	mux.Handle("GET /checkins", auth(s.handleCheckins))
	mux.Handle("POST /checkins/cleanup", admin(s.handleCleanupCheckins))

	mux.Handle("GET /classes", auth(s.handleClasses))
	mux.Handle("GET /classes/new", admin(s.handleClassNewForm))
	mux.Handle("POST /classes/new", admin(s.handleClassSave))
	mux.Handle("GET /classes/{id}/edit", admin(s.handleClassEditForm))
	mux.Handle("POST /classes/{id}/edit", admin(s.handleClassSave))
	mux.Handle("POST /classes/{id}/delete", admin(s.handleClassDelete))

	mux.Handle("GET /trainers", auth(s.handleTrainers))
	mux.Handle("POST /trainers", admin(s.handleTrainerSave))
	mux.Handle("GET /trainers/{id}/edit", admin(s.handleTrainerEditForm))
	mux.Handle("POST /trainers/{id}/edit", admin(s.handleTrainerSave))
	mux.Handle("POST /trainers/{id}/delete", admin(s.handleTrainerDelete))

	mux.Handle("GET /payments", auth(s.handlePayments))
	mux.Handle("GET /payments/new", admin(s.handlePaymentNewForm))
	mux.Handle("POST /payments/new", admin(s.handlePaymentSave))
	mux.Handle("GET /payments/{id}/edit", admin(s.handlePaymentEditForm))
	mux.Handle("POST /payments/{id}/edit", admin(s.handlePaymentSave))
	mux.Handle("POST /payments/{id}/delete", admin(s.handlePaymentDelete))
	mux.Handle("POST /payments/sample", admin(s.handleSeedSamplePayments))

	mux.Handle("GET /api/search_members", auth(s.handleSearchMembers))
	mux.Handle("GET /api/members_needing_reminders", auth(s.handleMembersNeedingReminders))
	mux.Handle("GET /api/members_with_phones", auth(s.handleMembersWithPhones))
	mux.Handle("POST /send_reminder/{id}", admin(s.handleSendReminder))

	mux.Handle("GET /admin/activity", admin(s.handleActivityLog))
}
