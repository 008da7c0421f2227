package projections

import (
	"context"
	"math"
	"time"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/domain/clock"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// Dashboard sentinels and windows.
const (
	NoClasses  = "No classes"
	NoTrainers = "No trainers"

	expiringSoonDays    = 7
	reminderWindowDays  = 3
	recentReminderSpan  = 7 * 24 * time.Hour
	revenueBuckets      = 6
	revenueBucketDays   = 30
	recentMembersShown  = 5
	satisfactionWeight  = 8
	satisfactionMinimum = 1.0
	satisfactionMaximum = 5.0
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore   MemberStore
	ClassStore    ClassStore
	TrainerStore  TrainerStore
	PaymentStore  PaymentStore
	CheckinStore  CheckinStore
	ReminderStore ReminderCounter
	Clock         clock.Clock
}

// RevenueBucket is one point of the six-month revenue series.
type RevenueBucket struct {
	Key   string // YYYY-MM
	Label string // Jan, Feb, ...
	Total float64
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Today time.Time

	TotalMembers   int
	ActiveMembers  int
	ExpiredMembers int
	TrainerCount   int

	ClassesToday    int
	UpcomingClasses int
	PopularClass    string
	BusiestTrainer  string

	TotalRevenue float64
	Revenue      []RevenueBucket

	TodaysCheckins int
	ExpiringSoon   int
	PaymentsDue    int

	// Satisfaction is a heuristic derived from today's check-ins, not a survey value.
	Satisfaction float64

	MembersWithPhones       int
	MembersNeedingReminders int
	RecentReminders         int

	RecentMembers []domainMember.Member
}

// QueryGetDashboard computes the front-desk summary for the current local day.
// PRE: deps are wired to the same database; Clock carries the gym's fixed offset
// POST: Every count reflects a full read of its collection at call time
// INVARIANT: Revenue always has exactly six buckets ordered oldest first
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	today := deps.Clock.LocalToday()
	res := DashboardResult{Today: today}

	members, err := deps.MemberStore.List(ctx, member.ListFilter{Order: member.OrderInserted})
	if err != nil {
		return DashboardResult{}, err
	}
	res.TotalMembers = len(members)
	soonLimit := clock.AddDays(today, expiringSoonDays)
	reminderLimit := clock.AddDays(today, reminderWindowDays)
	for _, m := range members {
		if m.IsActive(today) {
			res.ActiveMembers++
		}
		if !m.ExpiryDate.Before(today) && !m.ExpiryDate.After(soonLimit) {
			res.ExpiringSoon++
		}
		if m.HasPhone() {
			res.MembersWithPhones++
			if !m.ExpiryDate.After(reminderLimit) {
				res.MembersNeedingReminders++
			}
		}
	}
	res.ExpiredMembers = res.TotalMembers - res.ActiveMembers
	res.PaymentsDue = res.ExpiringSoon

	trainers, err := deps.TrainerStore.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	res.TrainerCount = len(trainers)

	classes, err := deps.ClassStore.List(ctx, gymclass.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	now := deps.Clock.LocalNow()
	for _, c := range classes {
		if c.Date.Equal(today) {
			res.ClassesToday++
		}
		if isUpcoming(c, today, now, deps.Clock) {
			res.UpcomingClasses++
		}
	}
	res.PopularClass = popularClass(classes)
	res.BusiestTrainer = busiestTrainer(classes, trainers)

	payments, err := deps.PaymentStore.List(ctx, payment.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	for _, p := range payments {
		res.TotalRevenue += p.Amount
	}
	res.Revenue = revenueSeries(today, payments)

	checkins, err := deps.CheckinStore.ListAll(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	for _, c := range checkins {
		if deps.Clock.LocalDateOf(c.CheckinTime).Equal(today) {
			res.TodaysCheckins++
		}
	}
	res.Satisfaction = satisfactionScore(res.TodaysCheckins, res.ActiveMembers)

	// The reminder window is measured from UTC now, not the local day start.
	res.RecentReminders, err = deps.ReminderStore.CountSince(ctx, deps.Clock.Now().UTC().Add(-recentReminderSpan))
	if err != nil {
		return DashboardResult{}, err
	}

	res.RecentMembers, err = deps.MemberStore.List(ctx, member.ListFilter{Order: member.OrderRecent, Limit: recentMembersShown})
	if err != nil {
		return DashboardResult{}, err
	}
	return res, nil
}

// isUpcoming reports whether a class starts strictly after the local now.
// Classes without a usable HH:MM time are compared by date only.
func isUpcoming(c domainClass.GymClass, today, now time.Time, clk clock.Clock) bool {
	hour, minute, ok := c.TimeOfDay()
	if !ok {
		return c.Date.After(today)
	}
	return clk.At(c.Date, hour, minute).After(now)
}

// popularClass returns the most frequent class name, first maximum in class order.
func popularClass(classes []domainClass.GymClass) string {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	if top, ok := mostCommon(names); ok {
		return top
	}
	return NoClasses
}

// busiestTrainer returns the roster name of the trainer assigned to the most classes.
// Unassigned classes and trainer IDs missing from the roster are not counted.
func busiestTrainer(classes []domainClass.GymClass, trainers []domainTrainer.Trainer) string {
	roster := make(map[string]string, len(trainers))
	for _, t := range trainers {
		roster[t.ID] = t.Name
	}
	var assigned []string
	for _, c := range classes {
		if !c.HasTrainer() {
			continue
		}
		if _, ok := roster[c.TrainerID]; ok {
			assigned = append(assigned, c.TrainerID)
		}
	}
	if top, ok := mostCommon(assigned); ok {
		return roster[top]
	}
	return NoTrainers
}

// mostCommon counts values and returns the first one, in input order, that reaches the maximum.
func mostCommon(values []string) (string, bool) {
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, bestCount > 0
}

// satisfactionScore maps today's engagement rate onto a 1..5 scale.
// It is exactly 0 when nobody holds an active membership.
func satisfactionScore(todaysCheckins, activeMembers int) float64 {
	if activeMembers == 0 {
		return 0.0
	}
	engagement := float64(todaysCheckins) / float64(activeMembers)
	score := math.Round((engagement*satisfactionWeight+1)*10) / 10
	return math.Max(satisfactionMinimum, math.Min(satisfactionMaximum, score))
}

// revenueSeries buckets payments by YYYY-MM into six points spaced 30 days apart, oldest first.
// Buckets are not calendar months: two points can share a key, and only the first one
// with a matching key receives the amount.
func revenueSeries(today time.Time, payments []domainPayment.Payment) []RevenueBucket {
	buckets := make([]RevenueBucket, 0, revenueBuckets)
	for i := revenueBuckets - 1; i >= 0; i-- {
		d := clock.AddDays(today, -revenueBucketDays*i)
		buckets = append(buckets, RevenueBucket{Key: d.Format("2006-01"), Label: d.Format("Jan")})
	}
	for _, p := range payments {
		key := p.MonthKey()
		for i := range buckets {
			if buckets[i].Key == key {
				buckets[i].Total += p.Amount
				break
			}
		}
	}
	return buckets
}
