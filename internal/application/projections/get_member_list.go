package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/domain/clock"
	domainMember "gymdesk/internal/domain/member"
	"gymdesk/internal/domain/reminder"
)

// MemberRow is one line of the members page.
type MemberRow struct {
	domainMember.Member
	Active          bool
	DaysUntilExpiry int
	Price           float64
	Category        reminder.Category
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Today   string
	Members []MemberRow
	Active  int
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
	Clock       clock.Clock
}

// QueryGetMemberList retrieves all members ordered by name with their membership status.
// PRE: none
// POST: Every member appears once; status is evaluated against the local day
func QueryGetMemberList(ctx context.Context, deps GetMemberListDeps) (GetMemberListResult, error) {
	members, err := deps.MemberStore.List(ctx, member.ListFilter{Order: member.OrderByName})
	if err != nil {
		return GetMemberListResult{}, err
	}

	today := deps.Clock.LocalToday()
	res := GetMemberListResult{Today: clock.FormatDate(today)}
	for _, m := range members {
		row := MemberRow{
			Member:          m,
			Active:          m.IsActive(today),
			DaysUntilExpiry: m.DaysUntilExpiry(today),
			Price:           m.Price(),
			Category:        reminder.Classify(m.ExpiryDate, today),
		}
		if row.Active {
			res.Active++
		}
		res.Members = append(res.Members, row)
	}
	return res, nil
}
