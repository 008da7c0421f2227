package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func migrated(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, MigrateDB(db, ":memory:"))
	return db
}

func queryStrings(t *testing.T, db *sql.DB, query string) []string {
	t.Helper()
	rows, err := db.Query(query)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	v, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Zero(t, v, "fresh database")

	require.NoError(t, MigrateDB(db, ":memory:"))

	v, err = SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, LatestSchemaVersion(), v)

	tables := queryStrings(t, db, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	assert.Equal(t, []string{
		"account",
		"audit_event",
		"checkin",
		"gym_class",
		"member",
		"payment",
		"payment_reminder",
		"schema_version",
		"trainer",
	}, tables)
}

func TestMigrateDB_RerunKeepsData(t *testing.T) {
	db := migrated(t)

	_, err := db.Exec(`INSERT INTO member (id, name, membership_type, phone, expiry_date, created_at)
		VALUES ('m1', 'Lindiwe', 'Monthly', '0821234567', '2026-02-01', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO checkin (id, member_id, checkin_time) VALUES ('c1', 'm1', '2026-01-01T10:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, MigrateDB(db, ":memory:"))

	assert.Equal(t, LatestSchemaVersion(), count(t, db, "SELECT MAX(version) FROM schema_version"))
	assert.Equal(t, LatestSchemaVersion(), count(t, db, "SELECT COUNT(*) FROM schema_version"), "each step recorded once")
	assert.Equal(t, []string{"Lindiwe"}, queryStrings(t, db, "SELECT name FROM member"))
	assert.Equal(t, []string{"2026-01-01T10:00:00Z"}, queryStrings(t, db, "SELECT checkin_time FROM checkin"))
}

// TestMigrateDB_UntrackedTables adopts a database whose tables predate schema_version.
func TestMigrateDB_UntrackedTables(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE account (id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL DEFAULT '', role TEXT NOT NULL, created_at TEXT NOT NULL, failed_logins INTEGER NOT NULL DEFAULT 0, locked_until TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO account (id, username, role, created_at) VALUES ('a1', 'admin', 'admin', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, MigrateDB(db, ":memory:"))

	assert.Equal(t, []string{"admin"}, queryStrings(t, db, "SELECT username FROM account"))
	v, _ := SchemaVersion(db)
	assert.Equal(t, LatestSchemaVersion(), v)
}

func TestMigrateDB_UpgradeFromBaseline(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE schema_version (version INTEGER PRIMARY KEY, name TEXT NOT NULL, applied_at TEXT NOT NULL)`)
	require.NoError(t, err)
	require.NoError(t, apply(db, migrations[0]))
	v, _ := SchemaVersion(db)
	require.Equal(t, 1, v)

	require.NoError(t, MigrateDB(db, ":memory:"))

	_, err = db.Exec(`INSERT INTO audit_event (id, occurred_at, category, action) VALUES ('e1', '2026-01-01T00:00:00Z', 'member', 'delete')`)
	assert.NoError(t, err, "audit_event exists after upgrade")
	v, _ = SchemaVersion(db)
	assert.Equal(t, 2, v)
}

// TestMigrateDB_ForeignKeyActions checks what deleting a member or trainer leaves behind.
// Payments and reminders cascade; classes lose their trainer; check-ins stay for the cleanup sweep.
func TestMigrateDB_ForeignKeyActions(t *testing.T) {
	db := migrated(t)

	for _, stmt := range []string{
		`INSERT INTO member (id, name, membership_type, expiry_date, created_at) VALUES ('m1', 'A', 'Monthly', '2026-02-01', '2026-01-01T00:00:00Z')`,
		`INSERT INTO trainer (id, name) VALUES ('t1', 'Coach')`,
		`INSERT INTO gym_class (id, name, trainer_id, class_date, class_time) VALUES ('g1', 'Spin', 't1', '2026-01-05', '09:00')`,
		`INSERT INTO payment (id, member_id, amount, payment_date, method) VALUES ('p1', 'm1', 300, '2026-01-01', 'Card')`,
		`INSERT INTO payment_reminder (id, member_id, reminder_type, sent_date, status) VALUES ('r1', 'm1', 'general', '2026-01-01T00:00:00Z', 'simulated')`,
		`INSERT INTO checkin (id, member_id, checkin_time) VALUES ('c1', 'm1', '2026-01-01T10:00:00Z')`,
		`DELETE FROM member WHERE id = 'm1'`,
		`DELETE FROM trainer WHERE id = 't1'`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM payment"))
	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM payment_reminder"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM checkin"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM gym_class WHERE trainer_id IS NULL"))
}
