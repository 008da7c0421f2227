package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/payment"
)

// PaymentStore defines the interface for payment persistence.
type PaymentStore interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAmount = errors.New("amount must be a number")
	ErrInvalidDate   = errors.New("invalid date format. Please use YYYY-MM-DD")
)

// SavePaymentInput carries the payment form. ID is empty for a new payment.
type SavePaymentInput struct {
	ID       string
	MemberID string
	Amount   string
	Date     string // YYYY-MM-DD
	Method   string
}

// SavePaymentDeps holds dependencies for payment use cases.
type SavePaymentDeps struct {
	PaymentStore PaymentStore
	MemberStore  MemberLookupStore
	GenerateID   IDGenerator
}

// ExecuteSavePayment records a payment or edits an existing one.
// PRE: MemberID refers to an existing member; Amount parses as a non-negative number
// POST: Payment persisted
// INVARIANT: Nothing is written when validation fails
func ExecuteSavePayment(ctx context.Context, input SavePaymentInput, deps SavePaymentDeps) (payment.Payment, error) {
	p := payment.Payment{ID: input.ID}
	if input.ID != "" {
		if _, err := deps.PaymentStore.GetByID(ctx, input.ID); err != nil {
			return payment.Payment{}, lookupErr(err, ErrPaymentNotFound)
		}
	} else {
		p.ID = deps.GenerateID.next()
	}

	p.MemberID = strings.TrimSpace(input.MemberID)
	p.Method = strings.TrimSpace(input.Method)

	// ParseFloat accepts "Inf" and "NaN"; neither is an amount of money.
	amount, err := strconv.ParseFloat(strings.TrimSpace(input.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return payment.Payment{}, ErrInvalidAmount
	}
	p.Amount = amount

	if p.Date, err = parseFormDate(input.Date); err != nil {
		return payment.Payment{}, ErrInvalidDate
	}
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}
	if _, err := deps.MemberStore.GetByID(ctx, p.MemberID); err != nil {
		return payment.Payment{}, lookupErr(err, ErrMemberNotFound)
	}

	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	event := "payment_recorded"
	if input.ID != "" {
		event = "payment_updated"
	}
	slog.Info("payment_event", "event", event, "payment_id", p.ID, "member_id", p.MemberID, "amount", p.Amount)
	return p, nil
}

// ExecuteDeletePayment removes a payment.
// PRE: id refers to an existing payment
// POST: Payment removed
func ExecuteDeletePayment(ctx context.Context, id string, deps SavePaymentDeps) error {
	if _, err := deps.PaymentStore.GetByID(ctx, id); err != nil {
		return lookupErr(err, ErrPaymentNotFound)
	}
	if err := deps.PaymentStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("payment_event", "event", "payment_deleted", "payment_id", id)
	return nil
}

// parseFormDate parses a YYYY-MM-DD form value.
func parseFormDate(raw string) (time.Time, error) {
	return clock.ParseDate(strings.TrimSpace(raw))
}
