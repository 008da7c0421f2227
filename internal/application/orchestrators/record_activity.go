package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/audit"
)

// ActivityStore persists activity log entries.
type ActivityStore interface {
	Save(ctx context.Context, event audit.Event) error
}

// RecordActivityDeps holds dependencies for RecordActivity.
type RecordActivityDeps struct {
	AuditStore ActivityStore
	GenerateID IDGenerator
}

// ExecuteRecordActivity appends an event to the activity log.
// PRE: event was built with audit.NewEvent
// POST: Event is stored with a fresh ID, or an error is returned and nothing is stored
func ExecuteRecordActivity(ctx context.Context, event audit.Event, deps RecordActivityDeps) error {
	event.ID = deps.GenerateID.next()
	if err := event.Validate(); err != nil {
		return err
	}
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		return err
	}
	slog.Debug("audit_event", "event", "activity_recorded",
		"category", event.Category, "action", event.Action, "actor", event.ActorName, "resource_id", event.ResourceID)
	return nil
}
