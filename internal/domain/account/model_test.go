package account_test

import (
	"testing"
	"time"

	"gymdesk/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr error
	}{
		{"valid admin", account.Account{Username: "admin", Role: account.RoleAdmin}, nil},
		{"valid member", account.Account{Username: "desk", Role: account.RoleMember}, nil},
		{"empty username", account.Account{Username: " ", Role: account.RoleAdmin}, account.ErrEmptyUsername},
		{"unknown role", account.Account{Username: "coach", Role: "coach"}, account.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.account.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_Password round-trips a bcrypt hash.
func TestAccount_Password(t *testing.T) {
	var a account.Account
	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Fatalf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword() unexpected error: %v", err)
	}
	if a.PasswordHash == "admin123" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := a.CheckPassword("admin123"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("admin124"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout locks after five failures and unlocks after the window.
func TestAccount_Lockout(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	var a account.Account
	for i := 0; i < 4; i++ {
		a.RecordFailedLogin(now)
	}
	if a.IsLocked(now) {
		t.Fatal("account locked after 4 failures")
	}
	a.RecordFailedLogin(now)
	if !a.IsLocked(now) {
		t.Fatal("account not locked after 5 failures")
	}
	if a.IsLocked(now.Add(16 * time.Minute)) {
		t.Error("account still locked after lockout window")
	}
	a.ResetFailedLogins()
	if a.FailedLogins != 0 || a.IsLocked(now) {
		t.Error("ResetFailedLogins() did not clear state")
	}
}
