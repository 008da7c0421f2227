package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/clock"
	domain "gymdesk/internal/domain/member"
)

const selectColumns = "SELECT id, name, membership_type, phone, expiry_date, created_at FROM member"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMember(row scanner) (domain.Member, error) {
	var entity domain.Member
	var phone sql.NullString
	var expiry, created string
	if err := row.Scan(&entity.ID, &entity.Name, &entity.MembershipType, &phone, &expiry, &created); err != nil {
		return domain.Member{}, err
	}
	entity.Phone = phone.String

	var err error
	if entity.ExpiryDate, err = clock.ParseDate(expiry); err != nil {
		return domain.Member{}, fmt.Errorf("member %s: bad expiry_date: %w", entity.ID, err)
	}
	if entity.CreatedAt, err = storage.ParseTime(created); err != nil {
		return domain.Member{}, fmt.Errorf("member %s: bad created_at: %w", entity.ID, err)
	}
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	entity, err := scanMember(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); created_at is never overwritten
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "membership_type", "phone", "expiry_date", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "membership_type=excluded.membership_type", "phone=excluded.phone", "expiry_date=excluded.expiry_date"}

	query := fmt.Sprintf(
		"INSERT INTO member (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var phone any
	if entity.Phone != "" {
		phone = entity.Phone
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.MembershipType,
		phone,
		clock.FormatDate(entity.ExpiryDate),
		storage.FormatTime(entity.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Member from the database.
// Payments and reminders cascade; check-ins are left for the cleanup sweep.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	return err
}

// Count returns the number of members.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM member").Scan(&count)
	return count, err
}

// SearchByName finds members whose name contains the query, ignoring case.
// SQLite's LIKE and lower() only fold ASCII, so names are matched here with
// Unicode case folding and the query is taken literally ('%' and '_' included).
// PRE: limit > 0
// POST: Returns at most limit matching members ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := strings.ToLower(query)
	var results []domain.Member
	for len(results) < limit && rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(entity.Name), needle) {
			results = append(results, entity)
		}
	}
	return results, rows.Err()
}

// List retrieves Members based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities in the order filter.Order selects
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	query := selectColumns
	if filter.WithPhone {
		query += " WHERE phone IS NOT NULL AND phone != ''"
	}
	switch filter.Order {
	case OrderRecent:
		query += " ORDER BY rowid DESC"
	case OrderInserted:
		query += " ORDER BY rowid ASC"
	default:
		query += " ORDER BY name ASC"
	}

	// sqlite treats a negative LIMIT as no limit.
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	return s.query(ctx, query+" LIMIT ? OFFSET ?", limit, filter.Offset)
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
