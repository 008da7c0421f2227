package projections

import (
	"context"
	"strings"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/domain/clock"
)

const (
	searchLimit        = 10
	phoneContactsLimit = 5
	reminderDueDays    = 3
)

// MemberMatch is one search hit for the front-desk lookup box.
type MemberMatch struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MembershipType string `json:"membership_type"`
	ExpiryDate     string `json:"expiry_date"`
}

// ReminderCandidate is a member with a phone whose membership ends within three days or already has.
type ReminderCandidate struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MembershipType  string `json:"membership_type"`
	Phone           string `json:"phone"`
	ExpiryDate      string `json:"expiry_date"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// PhoneContact is a member that can receive SMS.
type PhoneContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// MemberLookupDeps holds dependencies for the member lookup queries.
type MemberLookupDeps struct {
	MemberStore MemberStore
	SearchStore MemberSearchStore
	Clock       clock.Clock
}

// QuerySearchMembers matches member names case-insensitively.
// PRE: none
// POST: At most ten matches; an empty query yields an empty list
func QuerySearchMembers(ctx context.Context, query string, deps MemberLookupDeps) ([]MemberMatch, error) {
	out := []MemberMatch{}
	query = strings.TrimSpace(query)
	if query == "" {
		return out, nil
	}
	found, err := deps.SearchStore.SearchByName(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	for _, m := range found {
		out = append(out, MemberMatch{
			ID:             m.ID,
			Name:           m.Name,
			MembershipType: m.MembershipType,
			ExpiryDate:     clock.FormatDate(m.ExpiryDate),
		})
	}
	return out, nil
}

// QueryMembersNeedingReminders lists members with a phone and expiry on or before today+3, expired included.
// POST: Results are in registration order
func QueryMembersNeedingReminders(ctx context.Context, deps MemberLookupDeps) ([]ReminderCandidate, error) {
	members, err := deps.MemberStore.List(ctx, member.ListFilter{WithPhone: true, Order: member.OrderInserted})
	if err != nil {
		return nil, err
	}
	today := deps.Clock.LocalToday()
	limit := clock.AddDays(today, reminderDueDays)

	out := []ReminderCandidate{}
	for _, m := range members {
		if m.ExpiryDate.After(limit) {
			continue
		}
		out = append(out, ReminderCandidate{
			ID:              m.ID,
			Name:            m.Name,
			MembershipType:  m.MembershipType,
			Phone:           m.Phone,
			ExpiryDate:      clock.FormatDate(m.ExpiryDate),
			DaysUntilExpiry: m.DaysUntilExpiry(today),
		})
	}
	return out, nil
}

// QueryMembersWithPhones returns the first five registered members that have a phone.
func QueryMembersWithPhones(ctx context.Context, deps MemberLookupDeps) ([]PhoneContact, error) {
	members, err := deps.MemberStore.List(ctx, member.ListFilter{WithPhone: true, Order: member.OrderInserted, Limit: phoneContactsLimit})
	if err != nil {
		return nil, err
	}
	out := make([]PhoneContact, 0, len(members))
	for _, m := range members {
		out = append(out, PhoneContact{ID: m.ID, Name: m.Name, Phone: m.Phone})
	}
	return out, nil
}
