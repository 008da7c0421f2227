package projections

import (
	"context"
	"fmt"
	"testing"
	"time"

	auditStore "gymdesk/internal/adapters/storage/audit"
	"gymdesk/internal/application/paging"
	"gymdesk/internal/domain/audit"
)

// stubAudit holds events newest first.
type stubAudit []audit.Event

func (s stubAudit) matching(filter auditStore.Filter) []audit.Event {
	var out []audit.Event
	for _, e := range s {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s stubAudit) List(_ context.Context, filter auditStore.Filter) ([]audit.Event, error) {
	out := s.matching(filter)
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s stubAudit) Count(_ context.Context, filter auditStore.Filter) (int, error) {
	return len(s.matching(filter)), nil
}

func auditLog(n int) stubAudit {
	var out stubAudit
	for i := range n {
		category := audit.CategoryMember
		if i%2 == 1 {
			category = audit.CategoryPayment
		}
		e := audit.NewEvent(category, audit.ActionCreate, deskNow.Add(-time.Duration(i)*time.Minute))
		e.ID = fmt.Sprintf("e%d", i)
		out = append(out, e)
	}
	return out
}

func TestQueryGetActivityLog_Pages(t *testing.T) {
	deps := GetActivityLogDeps{AuditStore: auditLog(30), Clock: deskClock()}

	res, err := QueryGetActivityLog(context.Background(), GetActivityLogQuery{
		Page: paging.Request{Page: 2, PerPage: 25},
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetActivityLog: %v", err)
	}
	if res.Page.Pages != 2 || len(res.Events) != 5 || res.Events[0].ID != "e25" {
		t.Fatalf("page 2 = %+v (%d events)", res.Page, len(res.Events))
	}
	if got := res.Events[0].LocalTime.Format("15:04"); got != "09:05" {
		t.Errorf("local time = %s, want 09:05", got)
	}
	if len(res.Categories) != len(audit.Categories) {
		t.Errorf("categories = %v", res.Categories)
	}
}

func TestQueryGetActivityLog_CategoryFilter(t *testing.T) {
	deps := GetActivityLogDeps{AuditStore: auditLog(30), Clock: deskClock()}

	res, err := QueryGetActivityLog(context.Background(), GetActivityLogQuery{
		Category: audit.CategoryPayment,
		Page:     paging.Request{Page: 9, PerPage: 25},
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetActivityLog: %v", err)
	}
	if res.Page.Total != 15 || res.Page.Page != 1 || len(res.Events) != 15 {
		t.Fatalf("filtered page = %+v (%d events)", res.Page, len(res.Events))
	}
	for _, e := range res.Events {
		if e.Category != audit.CategoryPayment {
			t.Errorf("event %s has category %s", e.ID, e.Category)
		}
	}

	res, err = QueryGetActivityLog(context.Background(), GetActivityLogQuery{Category: "billing"}, deps)
	if err != nil {
		t.Fatalf("QueryGetActivityLog: %v", err)
	}
	if res.Category != "" || res.Page.Total != 30 {
		t.Errorf("unknown category should show everything, got %q total %d", res.Category, res.Page.Total)
	}
}
