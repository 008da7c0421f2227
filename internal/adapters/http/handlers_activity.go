package web

import (
	"log/slog"
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/paging"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
)

// recordActivity appends a change to the activity log on behalf of the current session.
// A failed write is logged and never fails the request that made the change.
func (s *Server) recordActivity(r *http.Request, category audit.Category, action audit.Action, resourceID, description string) {
	event := audit.NewEvent(category, action, s.clock.Now()).
		WithResource(resourceID).
		WithDescription(description).
		WithRequest(middleware.ClientIP(r))
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		event = event.WithActor(sess.AccountID, sess.Username)
	}

	err := orchestrators.ExecuteRecordActivity(r.Context(), event, orchestrators.RecordActivityDeps{
		AuditStore: s.stores.AuditStore,
		GenerateID: s.generateID,
	})
	if err != nil {
		slog.Error("audit_event", "event", "activity_record_failed", "category", category, "action", action, "error", err)
	}
}

// handleActivityLog handles GET /admin/activity
// PRE: Admin session
// POST: Renders one page of the activity log, optionally filtered by ?category=
func (s *Server) handleActivityLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryGetActivityLog(r.Context(), projections.GetActivityLogQuery{
		Category: audit.Category(q.Get("category")),
		Page:     paging.FromQuery(q),
	}, projections.GetActivityLogDeps{
		AuditStore: s.stores.AuditStore,
		Clock:      s.clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "activity.html", "Activity", result)
}
