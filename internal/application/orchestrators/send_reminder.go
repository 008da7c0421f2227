package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/adapters/sms"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/reminder"
)

// ReminderStore defines the interface for recording sent reminders.
type ReminderStore interface {
	Save(ctx context.Context, r reminder.PaymentReminder) error
}

// ReminderRecorder counts reminders by category and status.
type ReminderRecorder interface {
	Reminder(category, status string)
}

// SendReminderInput carries input for the reminder orchestrator.
type SendReminderInput struct {
	MemberID string
}

// SendReminderResult is the outcome reported back to the front desk.
// Success is false for a refusal (no phone); hard failures are returned as errors instead.
type SendReminderResult struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	MemberName      string            `json:"member_name,omitempty"`
	DaysUntilExpiry int               `json:"days_until_expiry"`
	Category        reminder.Category `json:"category,omitempty"`
	Status          string            `json:"status,omitempty"`
}

// SendReminderDeps holds dependencies for SendReminder.
type SendReminderDeps struct {
	MemberStore   MemberLookupStore
	ReminderStore ReminderStore
	Sender        sms.Sender
	Clock         clock.Clock
	GymName       string
	GenerateID    IDGenerator
	Recorder      ReminderRecorder // optional
}

// ExecuteSendReminder classifies a member's expiry, sends the matching SMS and records it.
// PRE: MemberID is non-empty
// POST: On success exactly one PaymentReminder is stored with the transport's status
// INVARIANT: Nothing is stored when the member has no phone or the transport fails
func ExecuteSendReminder(ctx context.Context, input SendReminderInput, deps SendReminderDeps) (SendReminderResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return SendReminderResult{}, lookupErr(err, ErrMemberNotFound)
	}

	today := deps.Clock.LocalToday()
	days := m.DaysUntilExpiry(today)
	if !m.HasPhone() {
		slog.Info("reminder_event", "event", "reminder_refused", "member_id", m.ID, "reason", reminder.ErrNoPhone)
		return SendReminderResult{
			Success:         false,
			Message:         "Member has no phone number",
			MemberName:      m.Name,
			DaysUntilExpiry: days,
		}, nil
	}

	category := reminder.Classify(m.ExpiryDate, today)
	body := reminder.Message(category, reminder.MessageData{
		GymName:        deps.GymName,
		MemberName:     m.Name,
		MembershipType: m.MembershipType,
		ExpiryDate:     m.ExpiryDate,
		DaysUntil:      days,
	})

	sent, err := deps.Sender.Send(ctx, m.Phone, body)
	if err != nil {
		slog.Error("reminder_event", "event", "reminder_failed", "member_id", m.ID, "transport", deps.Sender.Name(), "error", err)
		return SendReminderResult{}, fmt.Errorf("send reminder: %w", err)
	}

	r := reminder.PaymentReminder{
		ID:          deps.GenerateID.next(),
		MemberID:    m.ID,
		Category:    category,
		SentAt:      deps.Clock.Now().UTC(),
		Status:      sent.Status,
		ProviderRef: sent.MessageID,
	}
	if err := r.Validate(); err != nil {
		return SendReminderResult{}, err
	}
	if err := deps.ReminderStore.Save(ctx, r); err != nil {
		return SendReminderResult{}, err
	}

	if deps.Recorder != nil {
		deps.Recorder.Reminder(string(category), sent.Status)
	}
	slog.Info("reminder_event", "event", "reminder_sent", "member_id", m.ID, "category", category, "status", sent.Status, "transport", deps.Sender.Name())

	return SendReminderResult{
		Success:         true,
		Message:         "SMS reminder sent to " + m.Name,
		MemberName:      m.Name,
		DaysUntilExpiry: days,
		Category:        category,
		Status:          sent.Status,
	}, nil
}
