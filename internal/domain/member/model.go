package member

import (
	"errors"
	"strings"
	"time"

	"gymdesk/internal/domain/clock"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 150
	PhoneLength   = 10
)

// Membership types offered at the front desk. Any other free-text type is accepted.
const (
	TypeMonthly   = "Monthly"
	TypeQuarterly = "Quarterly"
	TypeYearly    = "Yearly"
	TypeCustom    = "Custom"
)

// prices is the fixed price table per membership type.
var prices = map[string]float64{
	TypeMonthly:   300,
	TypeQuarterly: 800,
	TypeYearly:    3000,
}

// Domain errors
var (
	ErrEmptyName          = errors.New("name and membership type are required")
	ErrNameTooLong        = errors.New("member name cannot exceed 150 characters")
	ErrInvalidPhone       = errors.New("phone number must be 10 digits starting with 0 (e.g., 0123456789)")
	ErrMissingExpiry      = errors.New("expiry date is required")
	ErrCustomNeedsExpiry  = errors.New("expiry date required for Custom membership")
	ErrInvalidExpiryValue = errors.New("invalid expiry date format")
)

// Member holds state for the concept.
type Member struct {
	ID             string
	Name           string
	MembershipType string
	Phone          string    // optional
	ExpiryDate     time.Time // calendar date, always present
	CreatedAt      time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name and MembershipType are non-empty, ExpiryDate is set
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.MembershipType) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if err := ValidatePhone(m.Phone); err != nil {
		return err
	}
	if m.ExpiryDate.IsZero() {
		return ErrMissingExpiry
	}
	return nil
}

// HasPhone reports whether an SMS can be addressed to this member.
func (m *Member) HasPhone() bool {
	return strings.TrimSpace(m.Phone) != ""
}

// IsActive reports whether the membership covers the given local day.
// The expiry day itself still counts as active.
func (m *Member) IsActive(today time.Time) bool {
	return !clock.DateOf(m.ExpiryDate).Before(clock.DateOf(today))
}

// DaysUntilExpiry returns expiry - today in whole days (negative once expired).
func (m *Member) DaysUntilExpiry(today time.Time) int {
	return clock.DaysBetween(today, m.ExpiryDate)
}

// Price returns the membership price for the member's type.
func (m *Member) Price() float64 {
	return Price(m.MembershipType)
}

// Price looks up the fixed price of a membership type.
// Unknown types map to 0: a pricing gap, not a failure.
func Price(membershipType string) float64 {
	return prices[membershipType]
}

// ValidatePhone accepts an empty phone or exactly 10 digits starting with 0.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) != PhoneLength || phone[0] != '0' {
		return ErrInvalidPhone
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return ErrInvalidPhone
		}
	}
	return nil
}

// termDays returns the length of a fixed-term membership, or 0 for Custom and unknown types.
func termDays(membershipType string) int {
	switch strings.ToLower(strings.TrimSpace(membershipType)) {
	case "monthly":
		return 30
	case "quarterly":
		return 90
	case "yearly":
		return 365
	}
	return 0
}

// ExpiryForNew picks the expiry date of a newly registered membership.
// PRE: today is a local date; explicit is "" or YYYY-MM-DD
// POST: Fixed terms count from today; Custom requires explicit; other types use explicit or 30 days
func ExpiryForNew(membershipType string, today time.Time, explicit string) (time.Time, error) {
	if days := termDays(membershipType); days > 0 {
		return clock.AddDays(today, days), nil
	}
	if explicit == "" {
		if strings.EqualFold(strings.TrimSpace(membershipType), TypeCustom) {
			return time.Time{}, ErrCustomNeedsExpiry
		}
		return clock.AddDays(today, 30), nil
	}
	d, err := clock.ParseDate(explicit)
	if err != nil {
		return time.Time{}, ErrInvalidExpiryValue
	}
	return d, nil
}

// ExpiryForEdit picks the expiry date when an existing membership is edited.
// An explicit date always wins; otherwise fixed terms restart from today and
// Custom/unknown types keep the current expiry.
func ExpiryForEdit(membershipType string, today, current time.Time, explicit string) (time.Time, error) {
	if explicit != "" {
		d, err := clock.ParseDate(explicit)
		if err != nil {
			return time.Time{}, ErrInvalidExpiryValue
		}
		return d, nil
	}
	if days := termDays(membershipType); days > 0 {
		return clock.AddDays(today, days), nil
	}
	return current, nil
}
