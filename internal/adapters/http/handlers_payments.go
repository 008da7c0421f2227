package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gymdesk/internal/adapters/http/middleware"
	memberStore "gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
)

// paymentForm is the payload of payment_form.html.
type paymentForm struct {
	Action   string
	ID       string
	MemberID string
	Amount   string
	Date     string
	Method   string
	Members  []member.Member
	Edit     bool
}

func (s *Server) paymentDeps() orchestrators.SavePaymentDeps {
	return orchestrators.SavePaymentDeps{
		PaymentStore: s.stores.PaymentStore,
		MemberStore:  s.stores.MemberStore,
		GenerateID:   s.generateID,
	}
}

func (s *Server) payers(r *http.Request) ([]member.Member, error) {
	return s.stores.MemberStore.List(r.Context(), memberStore.ListFilter{Order: memberStore.OrderByName})
}

// handlePayments handles GET /payments
func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetPaymentList(r.Context(), projections.GetPaymentListDeps{
		PaymentStore: s.stores.PaymentStore,
		MemberStore:  s.stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "payments.html", "Payments", result)
}

// handlePaymentNewForm handles GET /payments/new
func (s *Server) handlePaymentNewForm(w http.ResponseWriter, r *http.Request) {
	members, err := s.payers(r)
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "payment_form.html", "Record payment", paymentForm{
		Action:   "/payments/new",
		MemberID: r.URL.Query().Get("member_id"),
		Date:     clock.FormatDate(s.clock.LocalToday()),
		Members:  members,
	})
}

// handlePaymentEditForm handles GET /payments/{id}/edit
func (s *Server) handlePaymentEditForm(w http.ResponseWriter, r *http.Request) {
	p, err := s.stores.PaymentStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	members, err := s.payers(r)
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "payment_form.html", "Edit payment", paymentForm{
		Action:   "/payments/" + p.ID + "/edit",
		ID:       p.ID,
		MemberID: p.MemberID,
		Amount:   strconv.FormatFloat(p.Amount, 'f', 2, 64),
		Date:     clock.FormatDate(p.Date),
		Method:   p.Method,
		Members:  members,
		Edit:     true,
	})
}

// handlePaymentSave handles POST /payments/new and POST /payments/{id}/edit
func (s *Server) handlePaymentSave(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := r.PathValue("id")
	backTo := "/payments/new"
	if id != "" {
		backTo = "/payments/" + id + "/edit"
	}

	p, err := orchestrators.ExecuteSavePayment(r.Context(), orchestrators.SavePaymentInput{
		ID:       id,
		MemberID: r.FormValue("member_id"),
		Amount:   r.FormValue("amount"),
		Date:     r.FormValue("date"),
		Method:   r.FormValue("method"),
	}, s.paymentDeps())
	if errors.Is(err, orchestrators.ErrMemberNotFound) {
		s.redirectWithFlash(w, r, backTo, middleware.FlashError, "Member not found.")
		return
	}
	if err != nil {
		s.failForm(w, r, err, backTo)
		return
	}

	msg, action := "Payment recorded successfully!", audit.ActionCreate
	if id != "" {
		msg, action = "Payment updated successfully!", audit.ActionUpdate
	}
	s.recordActivity(r, audit.CategoryPayment, action, p.ID, fmt.Sprintf("R%.2f from member %s on %s", p.Amount, p.MemberID, clock.FormatDate(p.Date)))
	s.redirectWithFlash(w, r, "/payments", middleware.FlashSuccess, msg)
}

// handlePaymentDelete handles POST /payments/{id}/delete
func (s *Server) handlePaymentDelete(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteDeletePayment(r.Context(), r.PathValue("id"), s.paymentDeps()); err != nil {
		s.failForm(w, r, err, "/payments")
		return
	}
	s.recordActivity(r, audit.CategoryPayment, audit.ActionDelete, r.PathValue("id"), "Deleted payment")
	s.redirectWithFlash(w, r, "/payments", middleware.FlashSuccess, "Payment deleted successfully!")
}

// handleSeedSamplePayments handles POST /payments/sample and answers with a plain sentence.
func (s *Server) handleSeedSamplePayments(w http.ResponseWriter, r *http.Request) {
	result, err := orchestrators.ExecuteSeedSamplePayments(r.Context(), orchestrators.SeedSamplePaymentsDeps{
		MemberStore:  s.stores.MemberStore,
		PaymentStore: s.stores.PaymentStore,
		Clock:        s.clock,
		GenerateID:   s.generateID,
	})
	if errors.Is(err, orchestrators.ErrNoMembersForSample) {
		writeText(w, http.StatusOK, "No members found to create sample payments for")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	s.recordActivity(r, audit.CategoryPayment, audit.ActionSeed, "", result.Message())
	writeText(w, http.StatusOK, result.Message())
}
