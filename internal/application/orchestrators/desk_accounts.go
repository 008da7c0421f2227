package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/account"
	"gymdesk/internal/domain/clock"
)

// DeskAccountStore is what the login, seed and password flows read and write.
type DeskAccountStore interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrAccountLocked          = errors.New("account is locked due to too many failed attempts")
	ErrUsernameTaken          = errors.New("an account with this username already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrPasswordFieldsRequired = errors.New("all fields are required")
	ErrCurrentPasswordWrong   = errors.New("current password is incorrect")
	ErrNewPasswordSame        = errors.New("new password must be different from current password")
)

// CreateAccountInput is a new desk login.
type CreateAccountInput struct {
	Username string
	Password string
	Role     string
}

// CreateAccountDeps holds dependencies for account creation and the admin seed.
type CreateAccountDeps struct {
	AccountStore DeskAccountStore
	Clock        clock.Clock
	GenerateID   IDGenerator
}

// ExecuteCreateAccount adds a desk login with a bcrypt-hashed password.
// PRE: password >= account.MinPasswordLength
// POST: Returns the new account ID
// INVARIANT: usernames are unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	acct := account.Account{
		Username: strings.TrimSpace(input.Username),
		Role:     input.Role,
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}

	switch _, err := deps.AccountStore.GetByUsername(ctx, acct.Username); {
	case err == nil:
		return "", ErrUsernameTaken
	case !isNotFound(err):
		return "", err
	}

	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}
	acct.ID = deps.GenerateID.next()
	acct.CreatedAt = deps.Clock.Now().UTC()
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "account_created", "username", acct.Username, "role", acct.Role)
	return acct.ID, nil
}

// ExecuteSeedAdmin creates the first admin on an empty account table and does
// nothing once any account exists.
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, username, password string) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	input := CreateAccountInput{Username: username, Password: password, Role: account.RoleAdmin}
	if _, err := ExecuteCreateAccount(ctx, input, deps); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "admin_seeded", "username", username)
	return nil
}

// LoginInput is a submitted login form.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is what the session needs to remember about the desk user.
type LoginResult struct {
	AccountID string
	Username  string
	Role      string
}

// LoginDeps holds dependencies for ExecuteLogin.
type LoginDeps struct {
	AccountStore DeskAccountStore
	Clock        clock.Clock
}

// ExecuteLogin checks credentials and maintains the lockout counter.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
// PRE: none
// POST: a success clears any failure count; a wrong password adds one
// INVARIANT: a locked account is refused before its password is checked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByUsername(ctx, username)
	if isNotFound(err) {
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	now := deps.Clock.Now()
	if acct.IsLocked(now) {
		slog.Info("auth_event", "event", "login_blocked", "username", username, "locked_until", acct.LockedUntil)
		return LoginResult{}, ErrAccountLocked
	}

	if acct.CheckPassword(input.Password) != nil {
		acct.RecordFailedLogin(now)
		saveLoginState(ctx, deps.AccountStore, acct)
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.FailedLogins > 0 || !acct.LockedUntil.IsZero() {
		acct.ResetFailedLogins()
		saveLoginState(ctx, deps.AccountStore, acct)
	}

	slog.Info("auth_event", "event", "login_success", "username", username, "role", acct.Role)
	return LoginResult{AccountID: acct.ID, Username: acct.Username, Role: acct.Role}, nil
}

// saveLoginState persists lockout bookkeeping. A failure here must not change
// the login outcome, so it is only logged.
func saveLoginState(ctx context.Context, store DeskAccountStore, acct account.Account) {
	if err := store.Save(ctx, acct); err != nil {
		slog.Warn("auth_event", "event", "lockout_save_failed", "username", acct.Username, "error", err)
	}
}

// ChangePasswordInput is the change-password form for the logged-in account.
type ChangePasswordInput struct {
	AccountID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ExecuteChangePassword.
type ChangePasswordDeps struct {
	AccountStore DeskAccountStore
}

// ExecuteChangePassword swaps the password hash after re-checking the current one.
// POST: lockout counters are left as they were
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if input.AccountID == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		return ErrPasswordFieldsRequired
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return lookupErr(err, ErrAccountNotFound)
	}
	if acct.CheckPassword(input.CurrentPassword) != nil {
		return ErrCurrentPasswordWrong
	}
	if input.NewPassword == input.CurrentPassword {
		return ErrNewPasswordSame
	}
	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "account_id", acct.ID, "username", acct.Username)
	return nil
}
