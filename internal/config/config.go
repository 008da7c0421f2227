// Package config loads process configuration from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the fully resolved, validated process configuration.
type Config struct {
	Env              string
	Addr             string
	DBPath           string
	UTCOffset        time.Duration
	GymName          string
	AdminUsername    string
	AdminPassword    string
	CSRFKey          []byte
	CSRFKeyGenerated bool // no key configured, a random one was made
	SMSTransport     string
	SMSCountryCode   string
	AWSRegion        string
	SNSSenderID      string
	ResendKey        string
	ResendFrom       string
	SMSEmailDomain   string
	SlowQueryMs      int
	SlowRequestMs    int
	LogLevel         slog.Level
	RateLimit        int
}

// IsProduction reports whether the process runs with production safeguards.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env (if present) and then the process environment.
// PRE: none
// POST: Returns a validated Config or an error naming the offending variable
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Env:            get("GYM_ENV", EnvDevelopment),
		Addr:           get("GYM_ADDR", ":8080"),
		DBPath:         get("GYM_DB_PATH", "gymdesk.db"),
		GymName:        get("GYM_NAME", "Fitness Club"),
		AdminUsername:  get("GYM_ADMIN_USERNAME", "admin"),
		AdminPassword:  get("GYM_ADMIN_PASSWORD", "changeme-admin"),
		SMSTransport:   strings.ToLower(get("GYM_SMS_TRANSPORT", "log")),
		SMSCountryCode: get("GYM_SMS_COUNTRY_CODE", "+27"),
		AWSRegion:      get("AWS_REGION", ""),
		SNSSenderID:    get("GYM_SNS_SENDER_ID", ""),
		ResendKey:      get("GYM_RESEND_KEY", ""),
		ResendFrom:     get("GYM_RESEND_FROM", ""),
		SMSEmailDomain: get("GYM_SMS_EMAIL_DOMAIN", ""),
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("GYM_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}

	offset, err := strconv.ParseFloat(get("GYM_UTC_OFFSET_HOURS", "2"), 64)
	if err != nil || offset < -12 || offset > 14 {
		return Config{}, errors.New("GYM_UTC_OFFSET_HOURS must be a number between -12 and 14")
	}
	cfg.UTCOffset = time.Duration(offset * float64(time.Hour))

	for key, dst := range map[string]*int{
		"GYM_SLOW_QUERY_MS":   &cfg.SlowQueryMs,
		"GYM_SLOW_REQUEST_MS": &cfg.SlowRequestMs,
		"GYM_RATE_LIMIT":      &cfg.RateLimit,
	} {
		raw := get(key, "")
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive integer", key)
		}
		*dst = n
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("GYM_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("GYM_LOG_LEVEL: %w", err)
	}

	switch cfg.SMSTransport {
	case "log", "sns":
	case "email":
		if cfg.ResendKey == "" || cfg.SMSEmailDomain == "" {
			return Config{}, errors.New("GYM_SMS_TRANSPORT=email needs GYM_RESEND_KEY and GYM_SMS_EMAIL_DOMAIN")
		}
	default:
		return Config{}, fmt.Errorf("GYM_SMS_TRANSPORT must be log, sns or email, got %q", cfg.SMSTransport)
	}

	if keyHex := get("GYM_CSRF_KEY", ""); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return Config{}, errors.New("GYM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		cfg.CSRFKey = key
	} else {
		if cfg.IsProduction() {
			return Config{}, errors.New("GYM_CSRF_KEY is required in production")
		}
		cfg.CSRFKey = make([]byte, 32)
		if _, err := rand.Read(cfg.CSRFKey); err != nil {
			return Config{}, fmt.Errorf("generate CSRF key: %w", err)
		}
		cfg.CSRFKeyGenerated = true
	}

	if cfg.IsProduction() {
		if _, set := lookup("GYM_ADMIN_PASSWORD"); !set {
			return Config{}, errors.New("GYM_ADMIN_PASSWORD is required in production")
		}
	}

	return cfg, nil
}
