package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	Save(ctx context.Context, m member.Member) error
	GetByID(ctx context.Context, id string) (member.Member, error)
	Delete(ctx context.Context, id string) error
}

// RegisterMemberInput carries the add-member form.
type RegisterMemberInput struct {
	Name           string
	MembershipType string
	Phone          string
	Expiry         string // YYYY-MM-DD, optional except for Custom
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	MemberStore MemberStore
	Clock       clock.Clock
	GenerateID  IDGenerator
}

// ExecuteRegisterMember coordinates member registration.
// PRE: none (input comes straight from the form)
// POST: Member created with an expiry chosen from the membership type
// INVARIANT: Nothing is written when validation fails
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	m := member.Member{
		ID:             deps.GenerateID.next(),
		Name:           strings.TrimSpace(input.Name),
		MembershipType: strings.TrimSpace(input.MembershipType),
		Phone:          strings.TrimSpace(input.Phone),
		CreatedAt:      deps.Clock.Now().UTC(),
	}
	if m.Name == "" || m.MembershipType == "" {
		return member.Member{}, member.ErrEmptyName
	}
	if err := member.ValidatePhone(m.Phone); err != nil {
		return member.Member{}, err
	}

	expiry, err := member.ExpiryForNew(m.MembershipType, deps.Clock.LocalToday(), strings.TrimSpace(input.Expiry))
	if err != nil {
		return member.Member{}, err
	}
	m.ExpiryDate = expiry

	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_registered", "member_id", m.ID, "type", m.MembershipType, "expiry", clock.FormatDate(m.ExpiryDate), "has_phone", m.HasPhone())
	return m, nil
}

// EditMemberInput carries the edit-member form.
type EditMemberInput struct {
	ID             string
	Name           string
	MembershipType string
	Phone          string
	Expiry         string // YYYY-MM-DD, optional
}

// ExecuteEditMember updates a member's details.
// PRE: ID refers to an existing member
// POST: Name, type, phone and expiry updated; an empty expiry restarts fixed terms from today
func ExecuteEditMember(ctx context.Context, input EditMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.ID)
	if err != nil {
		return member.Member{}, lookupErr(err, ErrMemberNotFound)
	}

	name := strings.TrimSpace(input.Name)
	membershipType := strings.TrimSpace(input.MembershipType)
	if name == "" || membershipType == "" {
		return member.Member{}, member.ErrEmptyName
	}
	expiry, err := member.ExpiryForEdit(membershipType, deps.Clock.LocalToday(), m.ExpiryDate, strings.TrimSpace(input.Expiry))
	if err != nil {
		return member.Member{}, err
	}

	m.Name = name
	m.MembershipType = membershipType
	m.Phone = strings.TrimSpace(input.Phone)
	m.ExpiryDate = expiry
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID, "expiry", clock.FormatDate(m.ExpiryDate))
	return m, nil
}

// ExecuteDeleteMember removes a member. Payments and reminders go with them; check-ins stay until swept.
// PRE: ID refers to an existing member
// POST: Member removed; returns the deleted member for confirmation messages
func ExecuteDeleteMember(ctx context.Context, id string, deps RegisterMemberDeps) (member.Member, error) {
	m, err := deps.MemberStore.GetByID(ctx, id)
	if err != nil {
		return member.Member{}, lookupErr(err, ErrMemberNotFound)
	}
	if err := deps.MemberStore.Delete(ctx, id); err != nil {
		return member.Member{}, err
	}
	slog.Info("member_event", "event", "member_deleted", "member_id", id)
	return m, nil
}
