package audit

import (
	"context"

	domain "gymdesk/internal/domain/audit"
)

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	// PRE: event is valid
	// POST: Event is persisted
	Save(ctx context.Context, event domain.Event) error

	// List returns audit events matching the filter.
	// POST: Returns events ordered newest first
	List(ctx context.Context, filter Filter) ([]domain.Event, error)

	// Count returns how many events match the filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter defines query parameters for listing audit events.
type Filter struct {
	Category domain.Category // empty matches every category
	ActorID  string
	Limit    int
	Offset   int
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
