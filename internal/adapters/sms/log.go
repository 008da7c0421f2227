package sms

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of delivering them.
// Used in development and whenever no provider is configured.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Name identifies the transport in logs and metrics.
func (s *LogSender) Name() string { return TransportLog }

// Send logs the message but does not deliver it.
// POST: Returns a simulated result
func (s *LogSender) Send(_ context.Context, phone, message string) (Result, error) {
	if phone == "" {
		return Result{}, ErrEmptyPhone
	}
	slog.Info("sms_event", "event", "sms_simulated", "to", phone, "chars", len(message), "body", message)
	return simulated, nil
}
