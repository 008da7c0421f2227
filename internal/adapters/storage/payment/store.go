package payment

import (
	"context"

	domain "gymdesk/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Payment, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit    int
	MemberID string
	// Newest orders by payment date descending; otherwise rows come back in insertion order.
	Newest bool
}
