package reminder

import (
	"context"
	"time"

	domain "gymdesk/internal/domain/reminder"
)

// Store persists PaymentReminder state.
type Store interface {
	Save(ctx context.Context, value domain.PaymentReminder) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.PaymentReminder, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
