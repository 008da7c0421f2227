package audit

import (
	"context"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/audit"
)

const selectColumns = "SELECT id, occurred_at, category, action, actor_id, actor_name, resource_id, description, ip_address FROM audit_event"

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an audit event.
// PRE: event is valid
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, occurred_at, category, action, actor_id, actor_name, resource_id, description, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, storage.FormatTime(event.OccurredAt), string(event.Category), string(event.Action),
		event.ActorID, event.ActorName, event.ResourceID, event.Description, event.IPAddress)
	return err
}

// where builds the WHERE clause shared by List and Count.
func where(filter Filter) (string, []any) {
	var clauses []string
	var args []any
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.ActorID != "" {
		clauses = append(clauses, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List returns audit events matching the filter.
// PRE: none; Limit <= 0 means no limit
// POST: Returns events ordered by occurred_at desc, ties by insertion desc
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]domain.Event, error) {
	clause, args := where(filter)
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, selectColumns+clause+" ORDER BY occurred_at DESC, rowid DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var occurred, category, action string
		if err := rows.Scan(&e.ID, &occurred, &category, &action, &e.ActorID, &e.ActorName, &e.ResourceID, &e.Description, &e.IPAddress); err != nil {
			return nil, err
		}
		e.Category = domain.Category(category)
		e.Action = domain.Action(action)
		if e.OccurredAt, err = storage.ParseTime(occurred); err != nil {
			return nil, fmt.Errorf("audit event %s: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of events matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int, error) {
	clause, args := where(filter)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_event"+clause, args...).Scan(&n)
	return n, err
}
