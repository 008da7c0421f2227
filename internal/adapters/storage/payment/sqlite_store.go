package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/clock"
	domain "gymdesk/internal/domain/payment"
)

const selectColumns = "SELECT id, member_id, amount, payment_date, method FROM payment"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(row scanner) (domain.Payment, error) {
	var entity domain.Payment
	var date string
	if err := row.Scan(&entity.ID, &entity.MemberID, &entity.Amount, &date, &entity.Method); err != nil {
		return domain.Payment{}, err
	}
	d, err := clock.ParseDate(date)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("payment %s: bad payment_date: %w", entity.ID, err)
	}
	entity.Date = d
	return entity, nil
}

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	entity, err := scanPayment(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a Payment to the database.
// PRE: entity has been validated and its member exists
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "member_id", "amount", "payment_date", "method"}
	placeholders := []string{"?", "?", "?", "?", "?"}
	updates := []string{"member_id=excluded.member_id", "amount=excluded.amount", "payment_date=excluded.payment_date", "method=excluded.method"}

	query := fmt.Sprintf(
		"INSERT INTO payment (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.Amount,
		clock.FormatDate(entity.Date),
		entity.Method,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Payment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM payment WHERE id = ?", id)
	return err
}

// DeleteAll removes every payment and returns how many were deleted.
func (s *SQLiteStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payment")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves Payments based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Payment, error) {
	query := selectColumns
	var args []any
	if filter.MemberID != "" {
		query += " WHERE member_id = ?"
		args = append(args, filter.MemberID)
	}
	if filter.Newest {
		query += " ORDER BY payment_date DESC, rowid DESC"
	} else {
		query += " ORDER BY rowid ASC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
