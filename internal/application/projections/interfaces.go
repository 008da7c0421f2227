package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	domainCheckin "gymdesk/internal/domain/checkin"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
}

// MemberSearchStore interface for name search.
type MemberSearchStore interface {
	SearchByName(ctx context.Context, query string, limit int) ([]domainMember.Member, error)
}

// ClassStore interface for class queries.
type ClassStore interface {
	List(ctx context.Context, filter gymclass.ListFilter) ([]domainClass.GymClass, error)
}

// TrainerStore interface for the roster.
type TrainerStore interface {
	List(ctx context.Context) ([]domainTrainer.Trainer, error)
}

// PaymentStore interface for payment queries.
type PaymentStore interface {
	List(ctx context.Context, filter payment.ListFilter) ([]domainPayment.Payment, error)
}

// CheckinStore interface for check-in queries.
type CheckinStore interface {
	ListAll(ctx context.Context) ([]domainCheckin.Checkin, error)
}

// ReminderCounter interface for reminder history counts.
type ReminderCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}
