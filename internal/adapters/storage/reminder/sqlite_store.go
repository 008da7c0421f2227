package reminder

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/reminder"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new reminder store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save records a reminder.
// PRE: entity has been validated and its member exists
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.PaymentReminder) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payment_reminder (id, member_id, reminder_type, sent_date, status, provider_ref) VALUES (?, ?, ?, ?, ?, ?)",
		entity.ID, entity.MemberID, string(entity.Category), storage.FormatTime(entity.SentAt), entity.Status, entity.ProviderRef,
	)
	return err
}

// ListByMemberID returns a member's reminders, newest first.
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.PaymentReminder, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, member_id, reminder_type, sent_date, status, provider_ref FROM payment_reminder WHERE member_id = ? ORDER BY sent_date DESC",
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PaymentReminder
	for rows.Next() {
		var entity domain.PaymentReminder
		var category, sent string
		if err := rows.Scan(&entity.ID, &entity.MemberID, &category, &sent, &entity.Status, &entity.ProviderRef); err != nil {
			return nil, err
		}
		entity.Category = domain.Category(category)
		if entity.SentAt, err = storage.ParseTime(sent); err != nil {
			return nil, fmt.Errorf("reminder %s: %w", entity.ID, err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountSince counts reminders sent at or after the given instant.
// PRE: since is compared as a UTC instant
func (s *SQLiteStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payment_reminder WHERE sent_date >= ?", storage.FormatTime(since),
	).Scan(&count)
	return count, err
}
