package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	memberStore "gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
)

const (
	samplePaymentCount  = 6
	sampleMemberLimit   = 3
	sampleBaseAmount    = 300
	sampleAmountStep    = 50
	samplePaymentMethod = "Card"
	sampleSpacingDays   = 30
)

// ErrNoMembersForSample is returned when sample payments are requested before any member exists.
var ErrNoMembersForSample = errors.New("no members found to create sample payments for")

// SampleMemberStore lists members in registration order.
type SampleMemberStore interface {
	List(ctx context.Context, filter memberStore.ListFilter) ([]member.Member, error)
}

// SamplePaymentStore replaces the payment log.
type SamplePaymentStore interface {
	DeleteAll(ctx context.Context) (int, error)
	Save(ctx context.Context, p payment.Payment) error
}

// SeedSamplePaymentsDeps holds dependencies for SeedSamplePayments.
type SeedSamplePaymentsDeps struct {
	MemberStore  SampleMemberStore
	PaymentStore SamplePaymentStore
	Clock        clock.Clock
	GenerateID   IDGenerator
}

// SeedSamplePaymentsResult reports what the utility wrote.
type SeedSamplePaymentsResult struct {
	Deleted int
	Created int
}

// Message is the flash text shown after seeding.
func (r SeedSamplePaymentsResult) Message() string {
	return fmt.Sprintf("Created %d sample payments for testing", r.Created)
}

// ExecuteSeedSamplePayments wipes the payment log and writes six payments spread over five months.
// PRE: at least one member exists
// POST: Payment i (0..5) is dated today-30*(5-i) days, amount 300+50*i, method Card,
// assigned round-robin to the first three registered members
// INVARIANT: Existing payments are deleted only when there is a member to seed for
func ExecuteSeedSamplePayments(ctx context.Context, deps SeedSamplePaymentsDeps) (SeedSamplePaymentsResult, error) {
	members, err := deps.MemberStore.List(ctx, memberStore.ListFilter{
		Order: memberStore.OrderInserted,
		Limit: sampleMemberLimit,
	})
	if err != nil {
		return SeedSamplePaymentsResult{}, err
	}
	if len(members) == 0 {
		return SeedSamplePaymentsResult{}, ErrNoMembersForSample
	}

	deleted, err := deps.PaymentStore.DeleteAll(ctx)
	if err != nil {
		return SeedSamplePaymentsResult{}, err
	}

	today := deps.Clock.LocalToday()
	result := SeedSamplePaymentsResult{Deleted: deleted}
	for i := 0; i < samplePaymentCount; i++ {
		p := payment.Payment{
			ID:       deps.GenerateID.next(),
			MemberID: members[i%len(members)].ID,
			Amount:   float64(sampleBaseAmount + sampleAmountStep*i),
			Date:     clock.AddDays(today, -sampleSpacingDays*(samplePaymentCount-1-i)),
			Method:   samplePaymentMethod,
		}
		if err := deps.PaymentStore.Save(ctx, p); err != nil {
			return result, err
		}
		result.Created++
	}

	slog.Info("payment_event", "event", "sample_payments_seeded", "deleted", deleted, "created", result.Created, "members", len(members))
	return result, nil
}
