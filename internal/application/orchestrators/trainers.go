package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/trainer"
)

// TrainerStore defines the interface for trainer persistence.
type TrainerStore interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
	Save(ctx context.Context, t trainer.Trainer) error
	Delete(ctx context.Context, id string) error
}

// SaveTrainerInput carries the trainer form. ID is empty for a new trainer.
type SaveTrainerInput struct {
	ID        string
	Name      string
	Specialty string
	Contact   string
	Bio       string
}

// SaveTrainerDeps holds dependencies for trainer use cases.
type SaveTrainerDeps struct {
	TrainerStore TrainerStore
	GenerateID   IDGenerator
}

// ExecuteSaveTrainer adds a trainer or edits an existing one.
// PRE: Name is non-empty
// POST: Trainer persisted
func ExecuteSaveTrainer(ctx context.Context, input SaveTrainerInput, deps SaveTrainerDeps) (trainer.Trainer, error) {
	t := trainer.Trainer{ID: input.ID}
	if input.ID != "" {
		if _, err := deps.TrainerStore.GetByID(ctx, input.ID); err != nil {
			return trainer.Trainer{}, lookupErr(err, ErrTrainerNotFound)
		}
	} else {
		t.ID = deps.GenerateID.next()
	}

	t.Name = strings.TrimSpace(input.Name)
	t.Specialty = strings.TrimSpace(input.Specialty)
	t.Contact = strings.TrimSpace(input.Contact)
	t.Bio = strings.TrimSpace(input.Bio)
	if err := t.Validate(); err != nil {
		return trainer.Trainer{}, err
	}
	if err := deps.TrainerStore.Save(ctx, t); err != nil {
		return trainer.Trainer{}, err
	}

	event := "trainer_added"
	if input.ID != "" {
		event = "trainer_updated"
	}
	slog.Info("trainer_event", "event", event, "trainer_id", t.ID)
	return t, nil
}

// ExecuteDeleteTrainer removes a trainer. Their classes become unassigned.
// PRE: id refers to an existing trainer
// POST: Trainer removed
func ExecuteDeleteTrainer(ctx context.Context, id string, deps SaveTrainerDeps) (trainer.Trainer, error) {
	t, err := deps.TrainerStore.GetByID(ctx, id)
	if err != nil {
		return trainer.Trainer{}, lookupErr(err, ErrTrainerNotFound)
	}
	if err := deps.TrainerStore.Delete(ctx, id); err != nil {
		return trainer.Trainer{}, err
	}
	slog.Info("trainer_event", "event", "trainer_deleted", "trainer_id", id)
	return t, nil
}
