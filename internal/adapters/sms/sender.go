// Package sms delivers reminder text messages through a pluggable transport.
package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/domain/reminder"
)

// Transport names accepted by New.
const (
	TransportLog   = "log"
	TransportSNS   = "sns"
	TransportEmail = "email"
)

// DefaultCountryCode is prefixed to local numbers when converting to E.164.
const DefaultCountryCode = "+27"

// ErrEmptyPhone is returned when a send is attempted without a destination.
var ErrEmptyPhone = errors.New("sms: empty phone number")

// Result reports what the transport did with a message.
type Result struct {
	Status    string // reminder.StatusSimulated or reminder.StatusSent
	MessageID string // provider id, empty when simulated
}

// Sender is the interface for delivering a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) (Result, error)
	Name() string
}

// Config selects and configures a transport.
type Config struct {
	Transport   string
	CountryCode string
	AWSRegion   string
	SNSSenderID string
	ResendKey   string
	ResendFrom  string
	EmailDomain string
}

// New builds the Sender named by cfg.Transport.
// PRE: cfg has been validated by the config package
// POST: Returns a ready Sender, or an error when the transport cannot be initialised
func New(ctx context.Context, cfg Config) (Sender, error) {
	switch cfg.Transport {
	case "", TransportLog:
		return NewLogSender(), nil
	case TransportSNS:
		return NewSNSSender(ctx, cfg.AWSRegion, cfg.SNSSenderID, cfg.CountryCode)
	case TransportEmail:
		if cfg.ResendKey == "" || cfg.EmailDomain == "" {
			return nil, errors.New("sms: email transport needs a Resend key and gateway domain")
		}
		return NewEmailGatewaySender(cfg.ResendKey, cfg.ResendFrom, cfg.EmailDomain), nil
	}
	return nil, fmt.Errorf("sms: unknown transport %q", cfg.Transport)
}

// ToE164 converts a local 10-digit number (leading 0) into international form.
// Numbers already starting with + are returned unchanged.
func ToE164(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return countryCode + strings.TrimPrefix(phone, "0")
}

// simulated is the result of a transport that only logs.
var simulated = Result{Status: reminder.StatusSimulated}
