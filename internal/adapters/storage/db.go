package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations is the ordered migration chain. Append only: never edit an applied step.
var migrations = []migration{
	{
		version: 1,
		name:    "baseline",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS account (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT 'member',
				created_at TEXT NOT NULL,
				failed_logins INTEGER NOT NULL DEFAULT 0,
				locked_until TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS member (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				membership_type TEXT NOT NULL,
				phone TEXT,
				expiry_date TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS trainer (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				specialty TEXT NOT NULL DEFAULT '',
				contact TEXT NOT NULL DEFAULT '',
				bio TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS gym_class (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				trainer_id TEXT,
				class_date TEXT NOT NULL,
				class_time TEXT NOT NULL DEFAULT '',
				capacity INTEGER,
				FOREIGN KEY (trainer_id) REFERENCES trainer(id) ON DELETE SET NULL
			)`,
			`CREATE TABLE IF NOT EXISTS payment (
				id TEXT PRIMARY KEY,
				member_id TEXT NOT NULL,
				amount REAL NOT NULL,
				payment_date TEXT NOT NULL,
				method TEXT NOT NULL DEFAULT '',
				FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE
			)`,
			// member_id deliberately has no foreign key: check-ins outlive their member until swept.
			`CREATE TABLE IF NOT EXISTS checkin (
				id TEXT PRIMARY KEY,
				member_id TEXT,
				checkin_time TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS payment_reminder (
				id TEXT PRIMARY KEY,
				member_id TEXT NOT NULL,
				reminder_type TEXT NOT NULL,
				sent_date TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'sent',
				provider_ref TEXT NOT NULL DEFAULT '',
				FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_checkin_member ON checkin(member_id)`,
			`CREATE INDEX IF NOT EXISTS idx_payment_member ON payment(member_id)`,
			`CREATE INDEX IF NOT EXISTS idx_gym_class_date ON gym_class(class_date)`,
		},
	},
	{
		version: 2,
		name:    "audit_event",
		stmts: []string{
			// actor and resource are copied by value: the log outlives deleted members and accounts.
			`CREATE TABLE IF NOT EXISTS audit_event (
				id TEXT PRIMARY KEY,
				occurred_at TEXT NOT NULL,
				category TEXT NOT NULL,
				action TEXT NOT NULL,
				actor_id TEXT NOT NULL DEFAULT '',
				actor_name TEXT NOT NULL DEFAULT '',
				resource_id TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				ip_address TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_audit_event_occurred ON audit_event(occurred_at)`,
		},
	},
}

// LatestSchemaVersion returns the version the migration chain ends at.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, or 0 for a fresh database.
// PRE: db is a valid database connection
// POST: Returns current version >= 0
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema_version: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema_version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB brings the schema up to LatestSchemaVersion.
// PRE: db is a valid database connection; dbPath is used for logging only
// POST: All pending migrations applied in order, each in its own transaction
// INVARIANT: Already-applied migrations are never re-run
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		slog.Info("schema_event", "event", "migration_applied", "version", m.version, "name", m.name, "db", dbPath)
	}
	return nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)`,
		m.version, m.name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}
