package web

import (
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/audit"
)

func (s *Server) trainerDeps() orchestrators.SaveTrainerDeps {
	return orchestrators.SaveTrainerDeps{
		TrainerStore: s.stores.TrainerStore,
		GenerateID:   s.generateID,
	}
}

// handleTrainers handles GET /trainers; the add form sits on the same page.
func (s *Server) handleTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := s.stores.TrainerStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, "trainers.html", "Trainers", trainers)
}

// handleTrainerEditForm handles GET /trainers/{id}/edit
func (s *Server) handleTrainerEditForm(w http.ResponseWriter, r *http.Request) {
	t, err := s.stores.TrainerStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	s.render(w, r, "trainer_form.html", "Edit trainer", t)
}

// handleTrainerSave handles POST /trainers and POST /trainers/{id}/edit
func (s *Server) handleTrainerSave(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := r.PathValue("id")
	backTo := "/trainers"
	if id != "" {
		backTo = "/trainers/" + id + "/edit"
	}

	t, err := orchestrators.ExecuteSaveTrainer(r.Context(), orchestrators.SaveTrainerInput{
		ID:        id,
		Name:      r.FormValue("name"),
		Specialty: r.FormValue("specialty"),
		Contact:   r.FormValue("contact"),
		Bio:       r.FormValue("bio"),
	}, s.trainerDeps())
	if err != nil {
		s.failForm(w, r, err, backTo)
		return
	}

	msg, action := "Trainer "+t.Name+" added successfully!", audit.ActionCreate
	if id != "" {
		msg, action = "Trainer "+t.Name+" updated successfully!", audit.ActionUpdate
	}
	s.recordActivity(r, audit.CategoryTrainer, action, t.ID, t.Name)
	s.redirectWithFlash(w, r, "/trainers", middleware.FlashSuccess, msg)
}

// handleTrainerDelete handles POST /trainers/{id}/delete; their classes become unassigned.
func (s *Server) handleTrainerDelete(w http.ResponseWriter, r *http.Request) {
	t, err := orchestrators.ExecuteDeleteTrainer(r.Context(), r.PathValue("id"), s.trainerDeps())
	if err != nil {
		s.failForm(w, r, err, "/trainers")
		return
	}
	s.recordActivity(r, audit.CategoryTrainer, audit.ActionDelete, t.ID, "Deleted "+t.Name)
	s.redirectWithFlash(w, r, "/trainers", middleware.FlashSuccess, "Trainer "+t.Name+" deleted successfully!")
}
