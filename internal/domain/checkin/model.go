package checkin

import (
	"errors"
	"time"
)

// Checkin records one member arriving at the gym.
// MemberID may dangle once the member is deleted; the cleanup sweep removes such rows.
type Checkin struct {
	ID          string
	MemberID    string
	CheckinTime time.Time // UTC
}

// Validate checks if the Checkin has valid data.
// PRE: Checkin struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must not be empty, CheckinTime must be set
func (c *Checkin) Validate() error {
	if c.MemberID == "" {
		return errors.New("check-in must be associated with a member")
	}
	if c.CheckinTime.IsZero() {
		return errors.New("check-in time must be set")
	}
	return nil
}

// IsOrphaned reports whether the check-in no longer points at a member.
func (c *Checkin) IsOrphaned(memberExists bool) bool {
	return c.MemberID == "" || !memberExists
}
