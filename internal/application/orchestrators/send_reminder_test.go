package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/reminder"
)

func reminderDeps(members *fakeMemberStore, reminders *fakeReminderStore, sender *fakeSender) SendReminderDeps {
	return SendReminderDeps{
		MemberStore:   members,
		ReminderStore: reminders,
		Sender:        sender,
		Clock:         deskClock(),
		GymName:       "Iron Temple",
		GenerateID:    sequentialIDs("reminder"),
	}
}

// TestExecuteSendReminder_Categories classifies against the local day and records the transport status.
func TestExecuteSendReminder_Categories(t *testing.T) {
	tests := []struct {
		name     string
		expiry   string
		category reminder.Category
		days     int
		contains string
	}{
		{"expires today", "2026-05-10", reminder.CategoryExpiryToday, 0, "expires TODAY"},
		{"expires in two days", "2026-05-12", reminder.CategoryExpiryIn3Days, 2, "expires in 2 days on 2026-05-12"},
		{"expired", "2026-05-01", reminder.CategoryExpired, -9, "expired on 2026-05-01"},
		{"far away", "2026-08-01", reminder.CategoryGeneral, 83, "friendly reminder from Iron Temple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders := &fakeReminderStore{}
			sender := &fakeSender{status: reminder.StatusSimulated}
			deps := reminderDeps(newFakeMemberStore(thandi(tt.expiry)), reminders, sender)
			rec := newCountingRecorder()
			deps.Recorder = rec

			res, err := ExecuteSendReminder(context.Background(), SendReminderInput{MemberID: "m1"}, deps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Success || res.Message != "SMS reminder sent to Thandi" {
				t.Errorf("result = %+v", res)
			}
			if res.DaysUntilExpiry != tt.days || res.Category != tt.category {
				t.Errorf("days/category = %d/%s, want %d/%s", res.DaysUntilExpiry, res.Category, tt.days, tt.category)
			}
			if len(sender.sent) != 1 || !strings.Contains(sender.sent[0], tt.contains) {
				t.Errorf("sent = %v, want message containing %q", sender.sent, tt.contains)
			}
			if len(reminders.saved) != 1 {
				t.Fatalf("expected 1 stored reminder, got %d", len(reminders.saved))
			}
			r := reminders.saved[0]
			if r.Status != reminder.StatusSimulated || r.Category != tt.category || r.ProviderRef != "msg-1" {
				t.Errorf("stored reminder = %+v", r)
			}
			if !r.SentAt.Equal(deskNow) {
				t.Errorf("SentAt = %v, want %v", r.SentAt, deskNow)
			}
			if rec.reminders[string(tt.category)+"/simulated"] != 1 {
				t.Errorf("recorder = %v", rec.reminders)
			}
		})
	}
}

// TestExecuteSendReminder_NoPhone refuses without touching the transport or the store.
func TestExecuteSendReminder_NoPhone(t *testing.T) {
	m := thandi("2026-05-12")
	m.Phone = ""
	reminders := &fakeReminderStore{}
	sender := &fakeSender{status: reminder.StatusSent}

	res, err := ExecuteSendReminder(context.Background(), SendReminderInput{MemberID: "m1"},
		reminderDeps(newFakeMemberStore(m), reminders, sender))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success || res.Message != "Member has no phone number" {
		t.Errorf("result = %+v", res)
	}
	if len(sender.sent) != 0 || len(reminders.saved) != 0 {
		t.Error("expected no send and no stored reminder")
	}
}

// TestExecuteSendReminder_TransportFailure stores nothing and surfaces the error.
func TestExecuteSendReminder_TransportFailure(t *testing.T) {
	reminders := &fakeReminderStore{}
	boom := errors.New("throttled")
	_, err := ExecuteSendReminder(context.Background(), SendReminderInput{MemberID: "m1"},
		reminderDeps(newFakeMemberStore(thandi("2026-05-12")), reminders, &fakeSender{err: boom}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(reminders.saved) != 0 {
		t.Error("expected no stored reminder")
	}
}

// TestExecuteSendReminder_NotFound maps a missing member to ErrMemberNotFound.
func TestExecuteSendReminder_NotFound(t *testing.T) {
	_, err := ExecuteSendReminder(context.Background(), SendReminderInput{MemberID: "ghost"},
		reminderDeps(newFakeMemberStore(), &fakeReminderStore{}, &fakeSender{}))
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

// TestExecuteSendReminder_DefaultGymName falls back when no gym name is configured.
func TestExecuteSendReminder_DefaultGymName(t *testing.T) {
	sender := &fakeSender{status: reminder.StatusSent}
	deps := reminderDeps(newFakeMemberStore(member.Member{
		ID: "m1", Name: "Sipho", MembershipType: member.TypeYearly, Phone: "0831112222", ExpiryDate: mustDate("2026-12-01"),
	}), &fakeReminderStore{}, sender)
	deps.GymName = ""

	if _, err := ExecuteSendReminder(context.Background(), SendReminderInput{MemberID: "m1"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sender.sent[0], reminder.DefaultGymName) {
		t.Errorf("sent = %q", sender.sent[0])
	}
}
