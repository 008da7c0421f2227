package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// pragmas every connection in the pool is opened with.
const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// Open opens and pings the sqlite database at path.
// PRE: path is a file path or ":memory:"
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(8)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// storedTime is fixed width UTC, so comparing the text compares the instants.
const storedTime = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTime)
}

// legacyTimes are layouts rows written by hand or by older builds may carry.
var legacyTimes = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseTime reads a stored timestamp back as UTC.
func ParseTime(value string) (time.Time, error) {
	// time.Time.String() appends the monotonic reading.
	value, _, _ = strings.Cut(value, " m=")
	for _, layout := range legacyTimes {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}
