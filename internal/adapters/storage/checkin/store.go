package checkin

import (
	"context"

	domain "gymdesk/internal/domain/checkin"
)

// Store persists Checkin state.
type Store interface {
	Save(ctx context.Context, value domain.Checkin) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Checkin, error)
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Checkin, error)
}
