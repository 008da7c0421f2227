package web

import (
	"errors"
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/trainer"
)

// classForm is the payload of class_form.html.
type classForm struct {
	Action   string
	Class    gymclass.GymClass
	Date     string
	Trainers []trainer.Trainer
	Edit     bool
}

func (s *Server) classDeps() orchestrators.SaveClassDeps {
	return orchestrators.SaveClassDeps{
		ClassStore:   s.stores.ClassStore,
		TrainerStore: s.stores.TrainerStore,
		GenerateID:   s.generateID,
	}
}

// handleClasses handles GET /classes
func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetClassBoard(r.Context(), projections.GetClassBoardDeps{
		ClassStore:   s.stores.ClassStore,
		TrainerStore: s.stores.TrainerStore,
		Clock:        s.clock,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "classes.html", "Classes", result)
}

// handleClassNewForm handles GET /classes/new
func (s *Server) handleClassNewForm(w http.ResponseWriter, r *http.Request) {
	trainers, err := s.stores.TrainerStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "class_form.html", "Add class", classForm{
		Action:   "/classes/new",
		Date:     clock.FormatDate(s.clock.LocalToday()),
		Trainers: trainers,
	})
}

// handleClassEditForm handles GET /classes/{id}/edit
func (s *Server) handleClassEditForm(w http.ResponseWriter, r *http.Request) {
	c, err := s.stores.ClassStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	trainers, err := s.stores.TrainerStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "class_form.html", "Edit class", classForm{
		Action:   "/classes/" + c.ID + "/edit",
		Class:    c,
		Date:     clock.FormatDate(c.Date),
		Trainers: trainers,
		Edit:     true,
	})
}

// handleClassSave handles POST /classes/new and POST /classes/{id}/edit
func (s *Server) handleClassSave(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := r.PathValue("id")
	backTo := "/classes/new"
	if id != "" {
		backTo = "/classes/" + id + "/edit"
	}

	c, err := orchestrators.ExecuteSaveClass(r.Context(), orchestrators.SaveClassInput{
		ID:        id,
		Name:      r.FormValue("name"),
		TrainerID: r.FormValue("trainer_id"),
		Date:      r.FormValue("date"),
		Time:      r.FormValue("time"),
		Capacity:  r.FormValue("capacity"),
	}, s.classDeps())
	if errors.Is(err, orchestrators.ErrTrainerNotFound) {
		// A stale drop-down, not a missing class.
		s.redirectWithFlash(w, r, backTo, middleware.FlashError, "Trainer not found.")
		return
	}
	if err != nil {
		s.failForm(w, r, err, backTo)
		return
	}

	msg, action := "Class added successfully!", audit.ActionCreate
	if id != "" {
		msg, action = "Class updated successfully!", audit.ActionUpdate
	}
	s.recordActivity(r, audit.CategoryClass, action, c.ID, c.Name+" on "+clock.FormatDate(c.Date))
	s.redirectWithFlash(w, r, "/classes", middleware.FlashSuccess, msg)
}

// handleClassDelete handles POST /classes/{id}/delete
func (s *Server) handleClassDelete(w http.ResponseWriter, r *http.Request) {
	c, err := orchestrators.ExecuteDeleteClass(r.Context(), r.PathValue("id"), s.classDeps())
	if err != nil {
		s.failForm(w, r, err, "/classes")
		return
	}
	s.recordActivity(r, audit.CategoryClass, audit.ActionDelete, c.ID, "Deleted "+c.Name+" on "+clock.FormatDate(c.Date))
	s.redirectWithFlash(w, r, "/classes", middleware.FlashSuccess, "Class deleted.")
}
