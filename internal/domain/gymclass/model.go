package gymclass

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the free-text time-of-day format entered on the class form.
const TimeLayout = "15:04"

// MaxNameLength bounds the class name.
const MaxNameLength = 100

// Unassigned is the TrainerID of a class with no trainer.
const Unassigned = ""

// Domain errors
var (
	ErrEmptyName       = errors.New("class name is required")
	ErrNameTooLong     = errors.New("class name cannot exceed 100 characters")
	ErrMissingDate     = errors.New("invalid date format. Please use YYYY-MM-DD")
	ErrInvalidCapacity = errors.New("capacity must be a whole number")
)

// GymClass is one scheduled session on the class board.
type GymClass struct {
	ID        string
	Name      string
	TrainerID string // foreign key to trainer, Unassigned when empty
	Date      time.Time
	Time      string // "HH:MM", optional
	Capacity  *int   // optional
}

// Validate checks if the GymClass has valid data.
// PRE: GymClass struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *GymClass) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if c.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// HasTrainer reports whether a trainer is assigned.
func (c *GymClass) HasTrainer() bool {
	return c.TrainerID != Unassigned
}

// TimeOfDay parses the class start time. ok is false when the time is absent or not HH:MM.
func (c *GymClass) TimeOfDay() (hour, minute int, ok bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(c.Time))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// ParseCapacity converts the free-form capacity field; an empty value means no limit.
func ParseCapacity(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrInvalidCapacity
	}
	return &n, nil
}
