package trainer

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength      = 150
	MaxSpecialtyLength = 100
	MaxContactLength   = 50
)

// Domain errors
var (
	ErrEmptyName        = errors.New("trainer name is required")
	ErrNameTooLong      = errors.New("trainer name cannot exceed 150 characters")
	ErrSpecialtyTooLong = errors.New("specialty cannot exceed 100 characters")
	ErrContactTooLong   = errors.New("contact cannot exceed 50 characters")
)

// Trainer is a member of the coaching roster.
type Trainer struct {
	ID        string
	Name      string
	Specialty string
	Contact   string
	Bio       string // markdown, optional
}

// Validate checks if the Trainer has valid data.
// PRE: Trainer struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Trainer) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(t.Specialty) > MaxSpecialtyLength {
		return ErrSpecialtyTooLong
	}
	if len(t.Contact) > MaxContactLength {
		return ErrContactTooLong
	}
	return nil
}
