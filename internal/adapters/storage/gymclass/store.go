package gymclass

import (
	"context"

	domain "gymdesk/internal/domain/gymclass"
)

// Store persists GymClass state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.GymClass, error)
	Save(ctx context.Context, value domain.GymClass) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.GymClass, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit int
	// Chronological orders by date then time; otherwise rows come back in insertion order.
	Chronological bool
}
