package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles. Only admins may change data; every other desk login is read-only.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	MaxUsernameLength = 100
	MinPasswordLength = 8

	// MaxFailedLogins wrong passwords in a row lock the account for LockoutDuration.
	MaxFailedLogins = 5
	LockoutDuration = 15 * time.Minute
)

var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooLong  = errors.New("username cannot exceed 100 characters")
	ErrInvalidRole      = errors.New("role must be one of: admin, member")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Account is a front-desk login. The password is only ever held as a bcrypt hash.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time // zero when not locked
}

// Validate checks the username and role.
func (a *Account) Validate() error {
	switch {
	case strings.TrimSpace(a.Username) == "":
		return ErrEmptyUsername
	case len(a.Username) > MaxUsernameLength:
		return ErrUsernameTooLong
	case a.Role != RoleAdmin && a.Role != RoleMember:
		return ErrInvalidRole
	}
	return nil
}

// SetPassword replaces the stored hash.
// PRE: len(plaintext) >= MinPasswordLength
// POST: PasswordHash holds a bcrypt hash of plaintext
func (a *Account) SetPassword(plaintext string) error {
	switch {
	case plaintext == "":
		return ErrEmptyPassword
	case len(plaintext) < MinPasswordLength:
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword returns ErrWrongPassword unless plaintext matches the stored hash.
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked reports whether now falls inside the lockout window.
func (a *Account) IsLocked(now time.Time) bool {
	return !a.LockedUntil.IsZero() && now.Before(a.LockedUntil)
}

// RecordFailedLogin counts a wrong password and starts the lockout window
// once MaxFailedLogins is reached.
func (a *Account) RecordFailedLogin(now time.Time) {
	a.FailedLogins++
	if a.FailedLogins >= MaxFailedLogins {
		a.LockedUntil = now.Add(LockoutDuration)
	}
}

// ResetFailedLogins clears the counter and any lock.
func (a *Account) ResetFailedLogins() {
	a.FailedLogins, a.LockedUntil = 0, time.Time{}
}

// IsAdmin reports whether the account may change data.
func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }
