package projections

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/clock"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// 2026-05-10 09:30 local (+02:00).
var deskNow = time.Date(2026, 5, 10, 7, 30, 0, 0, time.UTC)

func deskClock() clock.Clock { return clock.Fixed(clock.DefaultOffset, deskNow) }

func day(s string) time.Time {
	d, err := clock.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stubMembers holds members in registration order.
type stubMembers []domainMember.Member

func (s stubMembers) GetByID(_ context.Context, id string) (domainMember.Member, error) {
	for _, m := range s {
		if m.ID == id {
			return m, nil
		}
	}
	return domainMember.Member{}, fmt.Errorf("member not found: %w", sql.ErrNoRows)
}

func (s stubMembers) List(_ context.Context, filter member.ListFilter) ([]domainMember.Member, error) {
	var out []domainMember.Member
	for _, m := range s {
		if filter.WithPhone && !m.HasPhone() {
			continue
		}
		out = append(out, m)
	}
	switch filter.Order {
	case member.OrderRecent:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case member.OrderByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s stubMembers) SearchByName(_ context.Context, query string, limit int) ([]domainMember.Member, error) {
	var out []domainMember.Member
	for _, m := range s {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubClasses []domainClass.GymClass

func (s stubClasses) List(_ context.Context, _ gymclass.ListFilter) ([]domainClass.GymClass, error) {
	return s, nil
}

type stubTrainers []domainTrainer.Trainer

func (s stubTrainers) List(context.Context) ([]domainTrainer.Trainer, error) { return s, nil }

type stubPayments []domainPayment.Payment

func (s stubPayments) List(_ context.Context, _ payment.ListFilter) ([]domainPayment.Payment, error) {
	return s, nil
}

type stubCheckins []checkin.Checkin

func (s stubCheckins) ListAll(context.Context) ([]checkin.Checkin, error) { return s, nil }

// stubReminders records the window start it was asked about.
type stubReminders struct {
	count int
	since time.Time
}

func (s *stubReminders) CountSince(_ context.Context, since time.Time) (int, error) {
	s.since = since
	return s.count, nil
}
