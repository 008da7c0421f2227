package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/trainer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Trainer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Trainer, error) {
	var entity domain.Trainer
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, specialty, contact, bio FROM trainer WHERE id = ?", id,
	).Scan(&entity.ID, &entity.Name, &entity.Specialty, &entity.Contact, &entity.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trainer{}, fmt.Errorf("trainer not found: %w", err)
	}
	return entity, err
}

// Save persists a Trainer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Trainer) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO trainer (id, name, specialty, contact, bio) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, specialty=excluded.specialty, contact=excluded.contact, bio=excluded.bio`,
		entity.ID, entity.Name, entity.Specialty, entity.Contact, entity.Bio,
	)
	return err
}

// Delete removes a Trainer from the database. Their classes become unassigned.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM trainer WHERE id = ?", id)
	return err
}

// List returns the roster in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Trainer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, specialty, contact, bio FROM trainer ORDER BY rowid ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Trainer
	for rows.Next() {
		var entity domain.Trainer
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Specialty, &entity.Contact, &entity.Bio); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the roster size.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trainer").Scan(&count)
	return count, err
}
