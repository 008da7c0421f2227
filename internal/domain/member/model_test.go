package member_test

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/clock"
	"gymdesk/internal/domain/member"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := clock.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	expiry := date(t, "2026-06-01")
	tests := []struct {
		name    string
		member  member.Member
		wantErr error
	}{
		{
			name:   "valid member without phone",
			member: member.Member{Name: "Thandi", MembershipType: member.TypeMonthly, ExpiryDate: expiry},
		},
		{
			name:   "valid member with phone",
			member: member.Member{Name: "Thandi", MembershipType: member.TypeYearly, Phone: "0821234567", ExpiryDate: expiry},
		},
		{
			name:    "empty name",
			member:  member.Member{Name: "  ", MembershipType: member.TypeMonthly, ExpiryDate: expiry},
			wantErr: member.ErrEmptyName,
		},
		{
			name:    "empty membership type",
			member:  member.Member{Name: "Thandi", ExpiryDate: expiry},
			wantErr: member.ErrEmptyName,
		},
		{
			name:    "phone without leading zero",
			member:  member.Member{Name: "Thandi", MembershipType: member.TypeMonthly, Phone: "8212345678", ExpiryDate: expiry},
			wantErr: member.ErrInvalidPhone,
		},
		{
			name:    "phone too short",
			member:  member.Member{Name: "Thandi", MembershipType: member.TypeMonthly, Phone: "082123", ExpiryDate: expiry},
			wantErr: member.ErrInvalidPhone,
		},
		{
			name:    "phone with letters",
			member:  member.Member{Name: "Thandi", MembershipType: member.TypeMonthly, Phone: "08212345ab", ExpiryDate: expiry},
			wantErr: member.ErrInvalidPhone,
		},
		{
			name:    "missing expiry",
			member:  member.Member{Name: "Thandi", MembershipType: member.TypeMonthly},
			wantErr: member.ErrMissingExpiry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Member.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMemberIsActive checks the boundary: the expiry day itself is active.
func TestMemberIsActive(t *testing.T) {
	today := date(t, "2026-05-10")
	tests := []struct {
		name   string
		expiry string
		want   bool
	}{
		{"expires tomorrow", "2026-05-11", true},
		{"expires today", "2026-05-10", true},
		{"expired yesterday", "2026-05-09", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member.Member{ExpiryDate: date(t, tt.expiry)}
			if got := m.IsActive(today); got != tt.want {
				t.Errorf("Member.IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestPrice covers the fixed table and the unknown-type gap.
func TestPrice(t *testing.T) {
	tests := map[string]float64{
		member.TypeMonthly:   300,
		member.TypeQuarterly: 800,
		member.TypeYearly:    3000,
		member.TypeCustom:    0,
		"Student":            0,
		"":                   0,
	}
	for typ, want := range tests {
		if got := member.Price(typ); got != want {
			t.Errorf("Price(%q) = %v, want %v", typ, got, want)
		}
	}
}

// TestExpiryForNew covers the default term per membership type.
func TestExpiryForNew(t *testing.T) {
	today := date(t, "2026-01-31")
	tests := []struct {
		name     string
		typ      string
		explicit string
		want     string
		wantErr  error
	}{
		{"monthly", "Monthly", "", "2026-03-02", nil},
		{"quarterly lower case", "quarterly", "", "2026-05-01", nil},
		{"yearly ignores explicit", "Yearly", "2030-01-01", "2027-01-31", nil},
		{"custom with date", "Custom", "2026-02-14", "2026-02-14", nil},
		{"custom without date", "Custom", "", "", member.ErrCustomNeedsExpiry},
		{"custom bad date", "Custom", "14/02/2026", "", member.ErrInvalidExpiryValue},
		{"other without date", "Student", "", "2026-03-02", nil},
		{"other with date", "Student", "2026-12-01", "2026-12-01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := member.ExpiryForNew(tt.typ, today, tt.explicit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && clock.FormatDate(got) != tt.want {
				t.Errorf("expiry = %s, want %s", clock.FormatDate(got), tt.want)
			}
		})
	}
}

// TestExpiryForEdit verifies custom types keep their current expiry when none is supplied.
func TestExpiryForEdit(t *testing.T) {
	today := date(t, "2026-04-01")
	current := date(t, "2026-09-09")

	got, err := member.ExpiryForEdit("Custom", today, current, "")
	if err != nil || !got.Equal(current) {
		t.Errorf("custom edit = %v, %v; want current expiry", got, err)
	}
	got, err = member.ExpiryForEdit("Monthly", today, current, "")
	if err != nil || clock.FormatDate(got) != "2026-05-01" {
		t.Errorf("monthly edit = %v, %v; want 2026-05-01", got, err)
	}
	got, err = member.ExpiryForEdit("Monthly", today, current, "2026-04-20")
	if err != nil || clock.FormatDate(got) != "2026-04-20" {
		t.Errorf("explicit edit = %v, %v; want 2026-04-20", got, err)
	}
}
