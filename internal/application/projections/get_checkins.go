package projections

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/clock"
	domainMember "gymdesk/internal/domain/member"
)

const (
	checkinWeekSpan  = 7 * 24 * time.Hour
	checkinMonthSpan = 30 * 24 * time.Hour
)

// GetCheckinsDeps holds dependencies for the check-ins page.
type GetCheckinsDeps struct {
	CheckinStore CheckinStore
	MemberStore  MemberStore
	Clock        clock.Clock
}

// CheckinWithMember is one of today's arrivals.
type CheckinWithMember struct {
	Checkin   checkin.Checkin
	Member    domainMember.Member
	LocalTime time.Time
}

// GetCheckinsResult carries the check-ins page.
type GetCheckinsResult struct {
	Today      time.Time
	Checkins   []CheckinWithMember // newest first
	WeekCount  int
	MonthCount int
}

// QueryGetCheckins lists today's check-ins of active members and the trailing week/month counts.
// PRE: CheckinStore.ListAll returns newest first
// POST: Orphaned check-ins and check-ins of expired members are left out of today's list but
// still counted in the trailing windows
func QueryGetCheckins(ctx context.Context, deps GetCheckinsDeps) (GetCheckinsResult, error) {
	all, err := deps.CheckinStore.ListAll(ctx)
	if err != nil {
		return GetCheckinsResult{}, err
	}

	now := deps.Clock.Now()
	today := deps.Clock.LocalToday()
	res := GetCheckinsResult{Today: today}
	weekStart := now.Add(-checkinWeekSpan)
	monthStart := now.Add(-checkinMonthSpan)

	members := make(map[string]*domainMember.Member)
	for _, c := range all {
		if !c.CheckinTime.Before(weekStart) {
			res.WeekCount++
		}
		if !c.CheckinTime.Before(monthStart) {
			res.MonthCount++
		}
		if !deps.Clock.LocalDateOf(c.CheckinTime).Equal(today) {
			continue
		}

		m, seen := members[c.MemberID]
		if !seen {
			found, err := deps.MemberStore.GetByID(ctx, c.MemberID)
			switch {
			case err == nil:
				m = &found
			case errors.Is(err, sql.ErrNoRows):
			default:
				return GetCheckinsResult{}, err
			}
			members[c.MemberID] = m
		}
		if m == nil || !m.IsActive(today) {
			continue
		}
		res.Checkins = append(res.Checkins, CheckinWithMember{
			Checkin:   c,
			Member:    *m,
			LocalTime: deps.Clock.ToLocal(c.CheckinTime),
		})
	}
	return res, nil
}
