package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
)

// Check-in outcomes reported to the recorder.
const (
	CheckInOutcomeCheckedIn = "checked_in"
	CheckInOutcomeDuplicate = "already_checked_in"
	CheckInOutcomeExpired   = "expired"
	CheckInOutcomeNotFound  = "not_found"
)

// MemberLookupStore defines the member store interface needed to resolve a member.
type MemberLookupStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// CheckinStore defines the interface for check-in persistence.
type CheckinStore interface {
	Save(ctx context.Context, c checkin.Checkin) error
	ListByMemberID(ctx context.Context, memberID string) ([]checkin.Checkin, error)
}

// CheckInRecorder counts check-in attempts by outcome.
type CheckInRecorder interface {
	CheckIn(outcome string)
}

// MembershipExpiredError rejects a check-in for a member whose expiry is before today.
type MembershipExpiredError struct {
	Name       string
	ExpiryDate time.Time
}

func (e *MembershipExpiredError) Error() string {
	return fmt.Sprintf("%s cannot check in - membership expired on %s!", e.Name, clock.FormatDate(e.ExpiryDate))
}

// AlreadyCheckedInError rejects a second check-in on the same local day.
// At is the earlier check-in, expressed at the local offset.
type AlreadyCheckedInError struct {
	Name string
	At   time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("%s already checked in today at %s", e.Name, e.At.Format("15:04"))
}

// CheckInMemberInput carries input for the check-in orchestrator.
type CheckInMemberInput struct {
	MemberID string
}

// CheckInMemberResult describes the stored check-in.
type CheckInMemberResult struct {
	CheckinID  string
	MemberName string
	LocalTime  time.Time
}

// Message is the confirmation shown at the front desk.
func (r CheckInMemberResult) Message() string {
	return fmt.Sprintf("%s checked in at %s", r.MemberName, r.LocalTime.Format("15:04:05"))
}

// CheckInMemberDeps holds dependencies for CheckInMember.
type CheckInMemberDeps struct {
	MemberStore  MemberLookupStore
	CheckinStore CheckinStore
	Clock        clock.Clock
	GenerateID   IDGenerator
	Recorder     CheckInRecorder // optional
}

func (d CheckInMemberDeps) record(outcome string) {
	if d.Recorder != nil {
		d.Recorder.CheckIn(outcome)
	}
}

// ExecuteCheckInMember records a member's arrival.
// PRE: MemberID is non-empty
// POST: Exactly one check-in stored for an active member not yet checked in today (local date)
// INVARIANT: Read-then-write without a uniqueness constraint; two concurrent requests can both pass
func ExecuteCheckInMember(ctx context.Context, input CheckInMemberInput, deps CheckInMemberDeps) (CheckInMemberResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		if isNotFound(err) {
			deps.record(CheckInOutcomeNotFound)
			return CheckInMemberResult{}, ErrMemberNotFound
		}
		return CheckInMemberResult{}, err
	}

	today := deps.Clock.LocalToday()
	if !m.IsActive(today) {
		deps.record(CheckInOutcomeExpired)
		slog.Info("checkin_event", "event", "checkin_rejected", "member_id", m.ID, "reason", "expired", "expiry", clock.FormatDate(m.ExpiryDate))
		return CheckInMemberResult{}, &MembershipExpiredError{Name: m.Name, ExpiryDate: m.ExpiryDate}
	}

	existing, err := deps.CheckinStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return CheckInMemberResult{}, err
	}
	// A racing pair can leave two rows for today; report the first one.
	var first *checkin.Checkin
	for i, c := range existing {
		if !deps.Clock.LocalDateOf(c.CheckinTime).Equal(today) {
			continue
		}
		if first == nil || c.CheckinTime.Before(first.CheckinTime) {
			first = &existing[i]
		}
	}
	if first != nil {
		deps.record(CheckInOutcomeDuplicate)
		return CheckInMemberResult{}, &AlreadyCheckedInError{Name: m.Name, At: deps.Clock.ToLocal(first.CheckinTime)}
	}

	c := checkin.Checkin{
		ID:          deps.GenerateID.next(),
		MemberID:    m.ID,
		CheckinTime: deps.Clock.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return CheckInMemberResult{}, err
	}
	if err := deps.CheckinStore.Save(ctx, c); err != nil {
		return CheckInMemberResult{}, err
	}

	deps.record(CheckInOutcomeCheckedIn)
	slog.Info("checkin_event", "event", "member_checked_in", "member_id", m.ID, "name", m.Name, "checkin_id", c.ID)

	return CheckInMemberResult{
		CheckinID:  c.ID,
		MemberName: m.Name,
		LocalTime:  deps.Clock.ToLocal(c.CheckinTime),
	}, nil
}

// IsCheckInRejection reports whether err is an expected front-desk refusal rather than a failure.
func IsCheckInRejection(err error) bool {
	var expired *MembershipExpiredError
	var dup *AlreadyCheckedInError
	return errors.As(err, &expired) || errors.As(err, &dup) || errors.Is(err, ErrMemberNotFound)
}
