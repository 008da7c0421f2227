package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/account"
)

const (
	selectColumns = "SELECT id, username, password_hash, role, created_at, failed_logins, locked_until FROM account"

	upsertAccount = `INSERT INTO account (id, username, password_hash, role, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password_hash = excluded.password_hash,
			role = excluded.role,
			failed_logins = excluded.failed_logins,
			locked_until = excluded.locked_until`
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account
	var created string
	var locked sql.NullString
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &created, &a.FailedLogins, &locked); err != nil {
		return domain.Account{}, err
	}

	var err error
	if a.CreatedAt, err = storage.ParseTime(created); err != nil {
		return domain.Account{}, fmt.Errorf("account %s: bad created_at: %w", a.ID, err)
	}
	if locked.String != "" {
		if a.LockedUntil, err = storage.ParseTime(locked.String); err != nil {
			return domain.Account{}, fmt.Errorf("account %s: bad locked_until: %w", a.ID, err)
		}
	}
	return a, nil
}

func (s *SQLiteStore) getOne(ctx context.Context, where string, arg string) (domain.Account, error) {
	a, err := scanAccount(s.db.QueryRowContext(ctx, selectColumns+" WHERE "+where+" = ?", arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("account %q not found: %w", arg, err)
	}
	return a, err
}

// GetByID retrieves an Account by its ID.
// POST: Returns the account or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return s.getOne(ctx, "id", id)
}

// GetByUsername retrieves an Account by its exact login name.
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return s.getOne(ctx, "username", username)
}

// Save inserts or updates an account, lockout state included.
// PRE: entity has been validated
// POST: created_at is never overwritten
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var locked any
	if !entity.LockedUntil.IsZero() {
		locked = storage.FormatTime(entity.LockedUntil)
	}
	_, err := s.db.ExecContext(ctx, upsertAccount,
		entity.ID,
		entity.Username,
		entity.PasswordHash,
		entity.Role,
		storage.FormatTime(entity.CreatedAt),
		entity.FailedLogins,
		locked,
	)
	return err
}

// Count returns the number of accounts. Zero means the admin seed has not run.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}
