package checkin

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/checkin"
)

const selectColumns = "SELECT id, member_id, checkin_time FROM checkin"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new check-in store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Checkin to the database.
// PRE: entity has been validated
// POST: Entity is persisted; no uniqueness is enforced per member and day
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Checkin) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO checkin (id, member_id, checkin_time) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET member_id=excluded.member_id, checkin_time=excluded.checkin_time",
		entity.ID, entity.MemberID, storage.FormatTime(entity.CheckinTime),
	)
	return err
}

// Delete removes a Checkin from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM checkin WHERE id = ?", id)
	return err
}

// ListAll returns every check-in, newest first.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Checkin, error) {
	return s.query(ctx, selectColumns+" ORDER BY checkin_time DESC")
}

// ListByMemberID returns a member's check-ins, newest first.
// PRE: memberID is non-empty
func (s *SQLiteStore) ListByMemberID(ctx context.Context, memberID string) ([]domain.Checkin, error) {
	return s.query(ctx, selectColumns+" WHERE member_id = ? ORDER BY checkin_time DESC", memberID)
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]domain.Checkin, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Checkin
	for rows.Next() {
		var entity domain.Checkin
		var memberID sql.NullString
		var at string
		if err := rows.Scan(&entity.ID, &memberID, &at); err != nil {
			return nil, err
		}
		entity.MemberID = memberID.String
		if entity.CheckinTime, err = storage.ParseTime(at); err != nil {
			return nil, fmt.Errorf("checkin %s: %w", entity.ID, err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
