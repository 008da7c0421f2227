package payment

import (
	"errors"
	"math"
	"strings"
	"time"
)

// MaxMethodLength bounds the free-text payment method tag.
const MaxMethodLength = 50

// Domain errors
var (
	ErrNoMember        = errors.New("payment must be associated with a member")
	ErrNegativeAmount  = errors.New("payment amount cannot be negative")
	ErrAmountNotFinite = errors.New("payment amount must be a finite number")
	ErrMissingDate     = errors.New("payment date is required")
	ErrMethodTooLong   = errors.New("payment method cannot exceed 50 characters")
)

// Payment holds state for the concept.
type Payment struct {
	ID       string
	MemberID string
	Amount   float64
	Date     time.Time // calendar date
	Method   string    // free-text tag, e.g. Card, Cash, EFT
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Amount is finite and non-negative
func (p *Payment) Validate() error {
	if strings.TrimSpace(p.MemberID) == "" {
		return ErrNoMember
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return ErrAmountNotFinite
	}
	if p.Amount < 0 {
		return ErrNegativeAmount
	}
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	if len(p.Method) > MaxMethodLength {
		return ErrMethodTooLong
	}
	return nil
}

// MonthKey returns the YYYY-MM bucket key of the payment's own date.
func (p *Payment) MonthKey() string {
	return p.Date.Format("2006-01")
}
