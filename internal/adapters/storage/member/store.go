package member

import (
	"context"

	domain "gymdesk/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context) (int, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error)
}

// List orderings.
const (
	OrderByName   = ""
	OrderRecent   = "recent"   // newest registration first
	OrderInserted = "inserted" // registration order
)

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit     int
	Offset    int
	WithPhone bool
	Order     string
}
