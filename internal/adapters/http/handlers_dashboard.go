package web

import (
	"net/http"

	"gymdesk/internal/application/projections"
)

// handleDashboard handles GET /dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		MemberStore:   s.stores.MemberStore,
		ClassStore:    s.stores.ClassStore,
		TrainerStore:  s.stores.TrainerStore,
		PaymentStore:  s.stores.PaymentStore,
		CheckinStore:  s.stores.CheckinStore,
		ReminderStore: s.stores.ReminderStore,
		Clock:         s.clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "dashboard.html", "Dashboard", result)
}
