package web

import (
	"log/slog"
	"net/http"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
)

func (s *Server) lookupDeps() projections.MemberLookupDeps {
	return projections.MemberLookupDeps{
		MemberStore: s.stores.MemberStore,
		SearchStore: s.stores.MemberStore,
		Clock:       s.clock,
	}
}

// handleSearchMembers handles GET /api/search_members?q=
func (s *Server) handleSearchMembers(w http.ResponseWriter, r *http.Request) {
	matches, err := projections.QuerySearchMembers(r.Context(), r.URL.Query().Get("q"), s.lookupDeps())
	if err != nil {
		failJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// handleMembersNeedingReminders handles GET /api/members_needing_reminders
func (s *Server) handleMembersNeedingReminders(w http.ResponseWriter, r *http.Request) {
	candidates, err := projections.QueryMembersNeedingReminders(r.Context(), s.lookupDeps())
	if err != nil {
		failJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// handleMembersWithPhones handles GET /api/members_with_phones
func (s *Server) handleMembersWithPhones(w http.ResponseWriter, r *http.Request) {
	contacts, err := projections.QueryMembersWithPhones(r.Context(), s.lookupDeps())
	if err != nil {
		failJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// handleSendReminder handles POST /send_reminder/{id}
// A member without a phone is a refused send (200, success=false), not an error.
func (s *Server) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	result, err := orchestrators.ExecuteSendReminder(r.Context(), orchestrators.SendReminderInput{
		MemberID: r.PathValue("id"),
	}, orchestrators.SendReminderDeps{
		MemberStore:   s.stores.MemberStore,
		ReminderStore: s.stores.ReminderStore,
		Sender:        s.sender,
		Clock:         s.clock,
		GymName:       s.cfg.GymName,
		GenerateID:    s.generateID,
		Recorder:      s.metrics,
	})
	if err != nil {
		if isNotFound(err) || isValidation(err) {
			failJSON(w, err)
			return
		}
		slog.Error("internal_error", "error", err.Error())
		writeJSON(w, http.StatusBadGateway, orchestrators.SendReminderResult{
			Success: false,
			Message: "Could not send SMS reminder",
		})
		return
	}
	if result.Success {
		s.recordActivity(r, audit.CategoryReminder, audit.ActionSend, r.PathValue("id"), result.Message+" ("+string(result.Category)+", "+result.Status+")")
	}
	writeJSON(w, http.StatusOK, result)
}
