package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"gymdesk/internal/adapters/sms"
	memberStore "gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/checkin"
	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/payment"
	"gymdesk/internal/domain/reminder"
	"gymdesk/internal/domain/trainer"
)

// 2026-05-10 09:30 local (+02:00).
var deskNow = time.Date(2026, 5, 10, 7, 30, 0, 0, time.UTC)

func deskClock() clock.Clock { return clock.Fixed(clock.DefaultOffset, deskNow) }

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s not found: %w", kind, id, sql.ErrNoRows)
}

func mustDate(s string) time.Time {
	d, err := clock.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeMemberStore keeps members in insertion order.
type fakeMemberStore struct {
	order   []string
	members map[string]member.Member
	saves   int
}

func newFakeMemberStore(ms ...member.Member) *fakeMemberStore {
	s := &fakeMemberStore{members: make(map[string]member.Member)}
	for _, m := range ms {
		s.put(m)
	}
	return s
}

func (s *fakeMemberStore) put(m member.Member) {
	if _, ok := s.members[m.ID]; !ok {
		s.order = append(s.order, m.ID)
	}
	s.members[m.ID] = m
}

func (s *fakeMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return member.Member{}, notFound("member", id)
	}
	return m, nil
}

func (s *fakeMemberStore) Save(_ context.Context, m member.Member) error {
	s.saves++
	s.put(m)
	return nil
}

func (s *fakeMemberStore) Delete(_ context.Context, id string) error {
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeMemberStore) List(_ context.Context, filter memberStore.ListFilter) ([]member.Member, error) {
	var out []member.Member
	for _, id := range s.order {
		out = append(out, s.members[id])
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeCheckinStore struct {
	checkins []checkin.Checkin
	deleted  []string
}

func (s *fakeCheckinStore) Save(_ context.Context, c checkin.Checkin) error {
	s.checkins = append(s.checkins, c)
	return nil
}

func (s *fakeCheckinStore) ListByMemberID(_ context.Context, memberID string) ([]checkin.Checkin, error) {
	var out []checkin.Checkin
	for _, c := range s.checkins {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCheckinStore) ListAll(_ context.Context) ([]checkin.Checkin, error) {
	out := append([]checkin.Checkin(nil), s.checkins...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckinTime.After(out[j].CheckinTime) })
	return out, nil
}

func (s *fakeCheckinStore) Delete(_ context.Context, id string) error {
	for i, c := range s.checkins {
		if c.ID == id {
			s.checkins = append(s.checkins[:i], s.checkins[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return nil
}

type fakeReminderStore struct {
	saved []reminder.PaymentReminder
}

func (s *fakeReminderStore) Save(_ context.Context, r reminder.PaymentReminder) error {
	s.saved = append(s.saved, r)
	return nil
}

type fakeSender struct {
	status string
	err    error
	sent   []string
}

func (f *fakeSender) Send(_ context.Context, phone, message string) (sms.Result, error) {
	if f.err != nil {
		return sms.Result{}, f.err
	}
	f.sent = append(f.sent, phone+": "+message)
	return sms.Result{Status: f.status, MessageID: "msg-1"}, nil
}

func (f *fakeSender) Name() string { return "fake" }

type fakeClassStore struct {
	classes map[string]gymclass.GymClass
}

func (s *fakeClassStore) GetByID(_ context.Context, id string) (gymclass.GymClass, error) {
	c, ok := s.classes[id]
	if !ok {
		return gymclass.GymClass{}, notFound("gym_class", id)
	}
	return c, nil
}

func (s *fakeClassStore) Save(_ context.Context, c gymclass.GymClass) error {
	s.classes[c.ID] = c
	return nil
}

func (s *fakeClassStore) Delete(_ context.Context, id string) error {
	delete(s.classes, id)
	return nil
}

type fakeTrainerStore struct {
	trainers map[string]trainer.Trainer
}

func (s *fakeTrainerStore) GetByID(_ context.Context, id string) (trainer.Trainer, error) {
	t, ok := s.trainers[id]
	if !ok {
		return trainer.Trainer{}, notFound("trainer", id)
	}
	return t, nil
}

func (s *fakeTrainerStore) Save(_ context.Context, t trainer.Trainer) error {
	s.trainers[t.ID] = t
	return nil
}

func (s *fakeTrainerStore) Delete(_ context.Context, id string) error {
	delete(s.trainers, id)
	return nil
}

type fakePaymentStore struct {
	order    []string
	payments map[string]payment.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]payment.Payment)}
}

func (s *fakePaymentStore) GetByID(_ context.Context, id string) (payment.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return payment.Payment{}, notFound("payment", id)
	}
	return p, nil
}

func (s *fakePaymentStore) Save(_ context.Context, p payment.Payment) error {
	if _, ok := s.payments[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.payments[p.ID] = p
	return nil
}

func (s *fakePaymentStore) Delete(_ context.Context, id string) error {
	delete(s.payments, id)
	return nil
}

func (s *fakePaymentStore) DeleteAll(_ context.Context) (int, error) {
	n := len(s.payments)
	s.order = nil
	s.payments = make(map[string]payment.Payment)
	return n, nil
}

func (s *fakePaymentStore) inOrder() []payment.Payment {
	var out []payment.Payment
	for _, id := range s.order {
		out = append(out, s.payments[id])
	}
	return out
}

type fakeAccountStore struct {
	accounts map[string]account.Account // by username
	saveErr  error
}

func (s *fakeAccountStore) GetByUsername(_ context.Context, username string) (account.Account, error) {
	a, ok := s.accounts[username]
	if !ok {
		return account.Account{}, notFound("account", username)
	}
	return a, nil
}

func (s *fakeAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return account.Account{}, notFound("account", id)
}

func (s *fakeAccountStore) Save(_ context.Context, a account.Account) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.accounts[a.Username] = a
	return nil
}

func (s *fakeAccountStore) Count(_ context.Context) (int, error) {
	return len(s.accounts), nil
}

type countingRecorder struct {
	checkins  map[string]int
	reminders map[string]int
	removed   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{checkins: map[string]int{}, reminders: map[string]int{}}
}

func (r *countingRecorder) CheckIn(outcome string) { r.checkins[outcome]++ }
func (r *countingRecorder) Reminder(category, status string) { r.reminders[category+"/"+status]++ }
func (r *countingRecorder) CleanupRemoved(n int) { r.removed += n }

var errDatabaseLocked = errors.New("database is locked")
