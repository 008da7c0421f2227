package reminder

import (
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/domain/clock"
)

// Category buckets a member by how close their membership is to expiry.
type Category string

// Reminder categories.
const (
	CategoryExpiryToday   Category = "expiry_today"
	CategoryExpiryIn3Days Category = "expiry_3_days"
	CategoryExpired       Category = "expired"
	CategoryGeneral       Category = "general"
)

// Reminder statuses. Simulated sends were only logged, never delivered.
const (
	StatusSimulated = "simulated"
	StatusSent      = "sent"
)

const (
	DefaultGymName = "Fitness Club"
	soonWindowDays = 3
)

// ErrNoPhone is why a reminder cannot be addressed to a member without a phone number.
var ErrNoPhone = errors.New("member has no phone number")

// PaymentReminder records one reminder handed to the notification transport.
type PaymentReminder struct {
	ID          string
	MemberID    string
	Category    Category
	SentAt      time.Time // UTC
	Status      string
	ProviderRef string // transport message id, empty for simulated sends
}

// Validate checks if the PaymentReminder has valid data.
// PRE: PaymentReminder is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *PaymentReminder) Validate() error {
	if r.MemberID == "" {
		return errors.New("reminder must be associated with a member")
	}
	if r.SentAt.IsZero() {
		return errors.New("reminder sent time must be set")
	}
	if r.Status == "" {
		return errors.New("reminder status must be set")
	}
	return nil
}

// Classify buckets an expiry date relative to the local day.
// Total over daysUntil: 0 today, 1..3 soon, negative expired, otherwise general.
func Classify(expiry, today time.Time) Category {
	return ClassifyDays(clock.DaysBetween(today, expiry))
}

// ClassifyDays is Classify expressed directly on days until expiry.
func ClassifyDays(daysUntil int) Category {
	switch {
	case daysUntil == 0:
		return CategoryExpiryToday
	case daysUntil >= 1 && daysUntil <= soonWindowDays:
		return CategoryExpiryIn3Days
	case daysUntil < 0:
		return CategoryExpired
	default:
		return CategoryGeneral
	}
}

// MessageData parameterizes the reminder templates.
type MessageData struct {
	GymName        string
	MemberName     string
	MembershipType string
	ExpiryDate     time.Time
	DaysUntil      int
}

// Message renders the SMS body for a category.
// Unknown categories fall back to the general template.
func Message(c Category, d MessageData) string {
	gym := d.GymName
	if gym == "" {
		gym = DefaultGymName
	}
	expiry := clock.FormatDate(d.ExpiryDate)
	switch c {
	case CategoryExpiryIn3Days:
		return fmt.Sprintf("Hi %s, your %s membership at %s expires in %d days on %s. Please renew to avoid interruption. Reply STOP to unsubscribe.",
			d.MemberName, d.MembershipType, gym, d.DaysUntil, expiry)
	case CategoryExpiryToday:
		return fmt.Sprintf("Hi %s, your %s membership expires TODAY. Please visit us to renew. Reply STOP to unsubscribe.",
			d.MemberName, d.MembershipType)
	case CategoryExpired:
		return fmt.Sprintf("Hi %s, your %s membership expired on %s. Renew now to restore access. Reply STOP to unsubscribe.",
			d.MemberName, d.MembershipType, expiry)
	default:
		return fmt.Sprintf("Hi %s, friendly reminder from %s about your membership. Reply STOP to unsubscribe.",
			d.MemberName, gym)
	}
}
