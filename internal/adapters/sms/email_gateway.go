package sms

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"gymdesk/internal/domain/reminder"
)

// DefaultGatewayFrom is the sender address used when none is configured.
const DefaultGatewayFrom = "Gym Desk <reminders@gymdesk.local>"

// mailer is the slice of the Resend client the gateway needs.
type mailer interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailGatewaySender delivers SMS through a carrier email-to-SMS gateway
// (<digits>@<domain>) using the Resend API.
type EmailGatewaySender struct {
	emails mailer
	from   string
	domain string
}

// NewEmailGatewaySender creates a gateway sender with the given Resend API key.
// PRE: apiKey is a valid Resend key; domain is the carrier gateway host
// POST: Returns a ready-to-use sender
func NewEmailGatewaySender(apiKey, from, domain string) *EmailGatewaySender {
	return newEmailGatewaySender(resend.NewClient(apiKey).Emails, from, domain)
}

func newEmailGatewaySender(emails mailer, from, domain string) *EmailGatewaySender {
	if from == "" {
		from = DefaultGatewayFrom
	}
	return &EmailGatewaySender{emails: emails, from: from, domain: strings.TrimPrefix(domain, "@")}
}

// Name identifies the transport in logs and metrics.
func (s *EmailGatewaySender) Name() string { return TransportEmail }

// Send emails the message body to the phone's gateway address.
// PRE: phone is a local number
// POST: Email queued with Resend; Result carries the Resend message id
func (s *EmailGatewaySender) Send(ctx context.Context, phone, message string) (Result, error) {
	if phone == "" {
		return Result{}, ErrEmptyPhone
	}
	to := strings.TrimSpace(phone) + "@" + s.domain
	sent, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Membership reminder",
		Text:    message,
	})
	if err != nil {
		slog.Error("sms_event", "event", "gateway_send_failed", "to", to, "error", err)
		return Result{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("sms_event", "event", "sms_sent", "transport", TransportEmail, "to", to, "message_id", sent.Id)
	return Result{Status: reminder.StatusSent, MessageID: sent.Id}, nil
}
