package gymclass

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/domain/clock"
	domain "gymdesk/internal/domain/gymclass"
)

const selectColumns = "SELECT id, name, trainer_id, class_date, class_time, capacity FROM gym_class"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClass(row scanner) (domain.GymClass, error) {
	var entity domain.GymClass
	var trainerID sql.NullString
	var date string
	var capacity sql.NullInt64
	if err := row.Scan(&entity.ID, &entity.Name, &trainerID, &date, &entity.Time, &capacity); err != nil {
		return domain.GymClass{}, err
	}
	entity.TrainerID = trainerID.String
	if capacity.Valid {
		c := int(capacity.Int64)
		entity.Capacity = &c
	}
	d, err := clock.ParseDate(date)
	if err != nil {
		return domain.GymClass{}, fmt.Errorf("class %s: bad class_date: %w", entity.ID, err)
	}
	entity.Date = d
	return entity, nil
}

// GetByID retrieves a GymClass by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.GymClass, error) {
	entity, err := scanClass(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GymClass{}, fmt.Errorf("class not found: %w", err)
	}
	return entity, err
}

// Save persists a GymClass to the database.
// PRE: entity has been validated; TrainerID is Unassigned or an existing trainer
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.GymClass) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "trainer_id", "class_date", "class_time", "capacity"}
	placeholders := []string{"?", "?", "?", "?", "?", "?"}
	updates := []string{"name=excluded.name", "trainer_id=excluded.trainer_id", "class_date=excluded.class_date", "class_time=excluded.class_time", "capacity=excluded.capacity"}

	query := fmt.Sprintf(
		"INSERT INTO gym_class (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var trainerID, capacity any
	if entity.HasTrainer() {
		trainerID = entity.TrainerID
	}
	if entity.Capacity != nil {
		capacity = *entity.Capacity
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		trainerID,
		clock.FormatDate(entity.Date),
		entity.Time,
		capacity,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a GymClass from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM gym_class WHERE id = ?", id)
	return err
}

// List retrieves GymClasses based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.GymClass, error) {
	query := selectColumns
	if filter.Chronological {
		query += " ORDER BY class_date ASC, class_time ASC"
	} else {
		query += " ORDER BY rowid ASC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, query+" LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.GymClass
	for rows.Next() {
		entity, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
