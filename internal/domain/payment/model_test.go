package payment_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"gymdesk/internal/domain/payment"
)

// TestPaymentValidation tests validation of Payment.
func TestPaymentValidation(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		payment payment.Payment
		wantErr error
	}{
		{"valid", payment.Payment{MemberID: "m1", Amount: 300, Date: day, Method: "Card"}, nil},
		{"zero amount allowed", payment.Payment{MemberID: "m1", Amount: 0, Date: day}, nil},
		{"no member", payment.Payment{Amount: 300, Date: day}, payment.ErrNoMember},
		{"negative amount", payment.Payment{MemberID: "m1", Amount: -1, Date: day}, payment.ErrNegativeAmount},
		{"infinite amount", payment.Payment{MemberID: "m1", Amount: math.Inf(1), Date: day}, payment.ErrAmountNotFinite},
		{"NaN amount", payment.Payment{MemberID: "m1", Amount: math.NaN(), Date: day}, payment.ErrAmountNotFinite},
		{"no date", payment.Payment{MemberID: "m1", Amount: 10}, payment.ErrMissingDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.payment.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMonthKey uses the payment's own calendar month.
func TestMonthKey(t *testing.T) {
	p := payment.Payment{Date: time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)}
	if got := p.MonthKey(); got != "2026-11" {
		t.Errorf("MonthKey() = %s, want 2026-11", got)
	}
}
