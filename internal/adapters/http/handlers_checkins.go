package web

import (
	"fmt"
	"net/http"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
)

// handleCheckins handles GET /checkins
func (s *Server) handleCheckins(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetCheckins(r.Context(), projections.GetCheckinsDeps{
		CheckinStore: s.stores.CheckinStore,
		MemberStore:  s.stores.MemberStore,
		Clock:        s.clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "checkins.html", "Check-ins", result)
}

// handleCleanupCheckins handles POST /checkins/cleanup and answers with a plain sentence.
func (s *Server) handleCleanupCheckins(w http.ResponseWriter, r *http.Request) {
	removed, err := orchestrators.ExecuteCleanupCheckins(r.Context(), orchestrators.CleanupCheckinsDeps{
		CheckinStore: s.stores.CheckinStore,
		MemberStore:  s.stores.MemberStore,
		Recorder:     s.metrics,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	msg := fmt.Sprintf("Cleaned up %d orphaned check-ins", removed)
	s.recordActivity(r, audit.CategoryCheckin, audit.ActionCleanup, "", msg)
	writeText(w, http.StatusOK, msg)
}
