package web

import (
	"errors"
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
)

var membershipTypes = []string{member.TypeMonthly, member.TypeQuarterly, member.TypeYearly, member.TypeCustom}

// memberForm is the payload of member_form.html.
type memberForm struct {
	Action string
	Member member.Member
	Expiry string
	Types  []string
	Edit   bool
}

func (s *Server) memberDeps() orchestrators.RegisterMemberDeps {
	return orchestrators.RegisterMemberDeps{
		MemberStore: s.stores.MemberStore,
		Clock:       s.clock,
		GenerateID:  s.generateID,
	}
}

// handleMembers handles GET /members
func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListDeps{
		MemberStore: s.stores.MemberStore,
		Clock:       s.clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "members.html", "Members", result)
}

// handleMemberNewForm handles GET /members/new
func (s *Server) handleMemberNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "member_form.html", "Add member", memberForm{
		Action: "/members/new",
		Member: member.Member{MembershipType: member.TypeMonthly},
		Types:  membershipTypes,
	})
}

// handleMemberCreate handles POST /members/new
func (s *Server) handleMemberCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	m, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput{
		Name:           r.FormValue("name"),
		MembershipType: r.FormValue("membership_type"),
		Phone:          r.FormValue("phone"),
		Expiry:         r.FormValue("expiry_date"),
	}, s.memberDeps())
	if err != nil {
		s.failForm(w, r, err, "/members/new")
		return
	}

	s.recordActivity(r, audit.CategoryMember, audit.ActionCreate, m.ID, "Registered "+m.Name+" ("+m.MembershipType+")")
	msg := "Member " + m.Name + " added successfully!"
	if m.HasPhone() {
		msg = "Member " + m.Name + " added successfully with phone number!"
	}
	s.redirectWithFlash(w, r, "/members", middleware.FlashSuccess, msg)
}

// handleMemberEditForm handles GET /members/{id}/edit
func (s *Server) handleMemberEditForm(w http.ResponseWriter, r *http.Request) {
	m, err := s.stores.MemberStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	s.render(w, r, "member_form.html", "Edit member", memberForm{
		Action: "/members/" + m.ID + "/edit",
		Member: m,
		Expiry: clock.FormatDate(m.ExpiryDate),
		Types:  membershipTypes,
		Edit:   true,
	})
}

// handleMemberUpdate handles POST /members/{id}/edit
func (s *Server) handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := r.PathValue("id")
	m, err := orchestrators.ExecuteEditMember(r.Context(), orchestrators.EditMemberInput{
		ID:             id,
		Name:           r.FormValue("name"),
		MembershipType: r.FormValue("membership_type"),
		Phone:          r.FormValue("phone"),
		Expiry:         r.FormValue("expiry_date"),
	}, s.memberDeps())
	if err != nil {
		s.failForm(w, r, err, "/members/"+id+"/edit")
		return
	}
	s.recordActivity(r, audit.CategoryMember, audit.ActionUpdate, m.ID, "Updated "+m.Name+", expires "+clock.FormatDate(m.ExpiryDate))
	s.redirectWithFlash(w, r, "/members", middleware.FlashSuccess, "Member "+m.Name+" updated successfully!")
}

// handleMemberDelete handles POST /members/{id}/delete
func (s *Server) handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	m, err := orchestrators.ExecuteDeleteMember(r.Context(), r.PathValue("id"), s.memberDeps())
	if err != nil {
		s.failForm(w, r, err, "/members")
		return
	}
	s.recordActivity(r, audit.CategoryMember, audit.ActionDelete, m.ID, "Deleted "+m.Name)
	s.redirectWithFlash(w, r, "/members", middleware.FlashSuccess, "Member "+m.Name+" deleted.")
}

// handleCheckIn handles POST /checkin/{id}
// Every outcome returns to the members page; only the flash level differs.
func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	result, err := orchestrators.ExecuteCheckInMember(r.Context(), orchestrators.CheckInMemberInput{
		MemberID: r.PathValue("id"),
	}, orchestrators.CheckInMemberDeps{
		MemberStore:  s.stores.MemberStore,
		CheckinStore: s.stores.CheckinStore,
		Clock:        s.clock,
		GenerateID:   s.generateID,
		Recorder:     s.metrics,
	})

	var dup *orchestrators.AlreadyCheckedInError
	switch {
	case err == nil:
		s.recordActivity(r, audit.CategoryCheckin, audit.ActionCheckIn, r.PathValue("id"), result.Message())
		s.redirectWithFlash(w, r, "/members", middleware.FlashSuccess, result.Message())
	case errors.As(err, &dup):
		s.redirectWithFlash(w, r, "/members", middleware.FlashWarning, err.Error())
	case errors.Is(err, orchestrators.ErrMemberNotFound):
		s.redirectWithFlash(w, r, "/members", middleware.FlashError, "Member not found!")
	case orchestrators.IsCheckInRejection(err):
		s.redirectWithFlash(w, r, "/members", middleware.FlashError, err.Error())
	default:
		internalError(w, err)
	}
}
