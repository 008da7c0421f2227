package projections

import (
	"context"
	"time"

	auditStore "gymdesk/internal/adapters/storage/audit"
	"gymdesk/internal/application/paging"
	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/clock"
)

// AuditStore interface for activity log queries.
type AuditStore interface {
	List(ctx context.Context, filter auditStore.Filter) ([]audit.Event, error)
	Count(ctx context.Context, filter auditStore.Filter) (int, error)
}

// GetActivityLogQuery selects one page of the log.
type GetActivityLogQuery struct {
	Category audit.Category // empty or unknown shows every category
	Page     paging.Request
}

// GetActivityLogDeps holds dependencies for GetActivityLog.
type GetActivityLogDeps struct {
	AuditStore AuditStore
	Clock      clock.Clock
}

// ActivityRow is one log line with its local timestamp.
type ActivityRow struct {
	audit.Event
	LocalTime time.Time
}

// GetActivityLogResult carries one page of the log.
type GetActivityLogResult struct {
	Events     []ActivityRow
	Category   audit.Category
	Categories []audit.Category
	Page       paging.Window
}

// QueryGetActivityLog returns the requested page of the activity log, newest first.
// PRE: none
// POST: Page is clamped to the last page when the request runs past the end
func QueryGetActivityLog(ctx context.Context, query GetActivityLogQuery, deps GetActivityLogDeps) (GetActivityLogResult, error) {
	filter := auditStore.Filter{}
	if audit.ValidCategory(query.Category) {
		filter.Category = query.Category
	}

	total, err := deps.AuditStore.Count(ctx, filter)
	if err != nil {
		return GetActivityLogResult{}, err
	}
	page := paging.New(query.Page, total)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset

	events, err := deps.AuditStore.List(ctx, filter)
	if err != nil {
		return GetActivityLogResult{}, err
	}

	res := GetActivityLogResult{
		Events:     make([]ActivityRow, 0, len(events)),
		Category:   filter.Category,
		Categories: audit.Categories,
		Page:       page,
	}
	for _, e := range events {
		res.Events = append(res.Events, ActivityRow{Event: e, LocalTime: deps.Clock.ToLocal(e.OccurredAt)})
	}
	return res, nil
}
