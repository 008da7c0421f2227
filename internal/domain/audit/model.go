// Package audit models the activity log of changes made at the front desk.
package audit

import (
	"errors"
	"time"
)

// Category groups events by the record they touched.
type Category string

const (
	CategoryMember   Category = "member"
	CategoryCheckin  Category = "checkin"
	CategoryClass    Category = "class"
	CategoryTrainer  Category = "trainer"
	CategoryPayment  Category = "payment"
	CategoryReminder Category = "reminder"
	CategoryAccount  Category = "account"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMember, CategoryCheckin, CategoryClass, CategoryTrainer,
	CategoryPayment, CategoryReminder, CategoryAccount,
}

// Action names what happened.
type Action string

const (
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionCheckIn        Action = "check_in"
	ActionCleanup        Action = "cleanup"
	ActionSend           Action = "send"
	ActionSeed           Action = "seed"
	ActionLoginFailed    Action = "login_failed"
	ActionPasswordChange Action = "password_change"
)

// Domain errors
var (
	ErrUnknownCategory = errors.New("audit category is not recognised")
	ErrEmptyAction     = errors.New("audit action is required")
)

// Event is one activity log entry. Actor and resource are copied by value.
type Event struct {
	ID          string
	OccurredAt  time.Time
	Category    Category
	Action      Action
	ActorID     string
	ActorName   string
	ResourceID  string
	Description string
	IPAddress   string
}

// NewEvent starts an event at the given instant.
// PRE: at is the current UTC time from the caller's clock
// POST: Returns an Event without ID; the recorder assigns one
func NewEvent(category Category, action Action, at time.Time) Event {
	return Event{
		OccurredAt: at.UTC(),
		Category:   category,
		Action:     action,
	}
}

// WithActor sets who performed the action.
func (e Event) WithActor(id, name string) Event {
	e.ActorID = id
	e.ActorName = name
	return e
}

// WithResource sets the ID of the record acted upon.
func (e Event) WithResource(id string) Event {
	e.ResourceID = id
	return e
}

// WithDescription sets the human readable summary.
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}

// WithRequest sets the client address the action came from.
func (e Event) WithRequest(ipAddress string) Event {
	e.IPAddress = ipAddress
	return e
}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks the event can be stored.
// PRE: none
// POST: Returns nil when category is known and action is set
func (e Event) Validate() error {
	if !ValidCategory(e.Category) {
		return ErrUnknownCategory
	}
	if e.Action == "" {
		return ErrEmptyAction
	}
	return nil
}
