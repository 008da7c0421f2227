package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/trainer"
)

// ClassStore defines the interface for class persistence.
type ClassStore interface {
	GetByID(ctx context.Context, id string) (gymclass.GymClass, error)
	Save(ctx context.Context, c gymclass.GymClass) error
	Delete(ctx context.Context, id string) error
}

// TrainerLookupStore resolves the trainer a class is assigned to.
type TrainerLookupStore interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
}

// SaveClassInput carries the class form. ID is empty for a new class.
type SaveClassInput struct {
	ID        string
	Name      string
	TrainerID string // empty for unassigned
	Date      string // YYYY-MM-DD
	Time      string // HH:MM, optional
	Capacity  string // whole number, optional
}

// SaveClassDeps holds dependencies for class use cases.
type SaveClassDeps struct {
	ClassStore   ClassStore
	TrainerStore TrainerLookupStore
	GenerateID   IDGenerator
}

// ExecuteSaveClass adds a class or edits an existing one.
// PRE: Date is YYYY-MM-DD; TrainerID, when set, names a trainer on the roster
// POST: Class persisted; the time string is stored as entered
// INVARIANT: Nothing is written when validation fails
func ExecuteSaveClass(ctx context.Context, input SaveClassInput, deps SaveClassDeps) (gymclass.GymClass, error) {
	c := gymclass.GymClass{ID: input.ID}
	if input.ID != "" {
		existing, err := deps.ClassStore.GetByID(ctx, input.ID)
		if err != nil {
			return gymclass.GymClass{}, lookupErr(err, ErrClassNotFound)
		}
		c = existing
	} else {
		c.ID = deps.GenerateID.next()
	}

	c.Name = strings.TrimSpace(input.Name)
	c.Time = strings.TrimSpace(input.Time)
	c.TrainerID = strings.TrimSpace(input.TrainerID)

	date, err := parseFormDate(input.Date)
	if err != nil {
		return gymclass.GymClass{}, gymclass.ErrMissingDate
	}
	c.Date = date

	if c.Capacity, err = gymclass.ParseCapacity(input.Capacity); err != nil {
		return gymclass.GymClass{}, err
	}
	if err := c.Validate(); err != nil {
		return gymclass.GymClass{}, err
	}

	if c.HasTrainer() {
		if _, err := deps.TrainerStore.GetByID(ctx, c.TrainerID); err != nil {
			return gymclass.GymClass{}, lookupErr(err, ErrTrainerNotFound)
		}
	}

	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return gymclass.GymClass{}, err
	}

	event := "class_added"
	if input.ID != "" {
		event = "class_updated"
	}
	slog.Info("class_event", "event", event, "class_id", c.ID, "trainer_id", c.TrainerID, "date", input.Date)
	return c, nil
}

// ExecuteDeleteClass removes a class.
// PRE: id refers to an existing class
// POST: Class removed
func ExecuteDeleteClass(ctx context.Context, id string, deps SaveClassDeps) (gymclass.GymClass, error) {
	c, err := deps.ClassStore.GetByID(ctx, id)
	if err != nil {
		return gymclass.GymClass{}, lookupErr(err, ErrClassNotFound)
	}
	if err := deps.ClassStore.Delete(ctx, id); err != nil {
		return gymclass.GymClass{}, err
	}
	slog.Info("class_event", "event", "class_deleted", "class_id", id)
	return c, nil
}
