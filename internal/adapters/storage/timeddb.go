package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"
)

// SQLDB is what every store is written against. *sql.DB and *TimedDB both satisfy it.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ SQLDB = (*sql.DB)(nil)
	_ SQLDB = (*TimedDB)(nil)
)

// DefaultSlowQueryMs is used when NewTimedDB is given no threshold.
const DefaultSlowQueryMs = 50

// QueryObserver receives the duration of every statement run through a TimedDB.
type QueryObserver interface {
	ObserveQuery(op, table string, d time.Duration)
}

// TimedDB times every statement, warns about slow ones and reports all of them
// to an optional observer.
type TimedDB struct {
	db       *sql.DB
	observer QueryObserver
	slow     time.Duration
}

// NewTimedDB wraps db. observer may be nil; slowMs <= 0 selects DefaultSlowQueryMs.
func NewTimedDB(db *sql.DB, observer QueryObserver, slowMs int) *TimedDB {
	if slowMs <= 0 {
		slowMs = DefaultSlowQueryMs
	}
	return &TimedDB{db: db, observer: observer, slow: time.Duration(slowMs) * time.Millisecond}
}

// since is deferred by each wrapper with the time the statement started.
func (t *TimedDB) since(op, table string, start time.Time) {
	d := time.Since(start)
	level := slog.LevelDebug
	if d >= t.slow {
		level = slog.LevelWarn
	}
	slog.Log(context.Background(), level, "db_event",
		"event", "query", "op", op, "table", table,
		"slow", d >= t.slow, "duration_ms", float64(d.Microseconds())/1000)
	if t.observer != nil {
		t.observer.ObserveQuery(op, table, d)
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer t.since("exec", tableOf(query), time.Now())
	return t.db.ExecContext(ctx, query, args...)
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer t.since("query", tableOf(query), time.Now())
	return t.db.QueryContext(ctx, query, args...)
}

func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer t.since("query_row", tableOf(query), time.Now())
	return t.db.QueryRowContext(ctx, query, args...)
}

// BeginTx is timed under the "tx" table label; statements inside the
// transaction go straight to the driver.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	defer t.since("begin", "tx", time.Now())
	return t.db.BeginTx(ctx, opts)
}

// tableOf labels a statement with the first name after FROM, INTO or UPDATE.
func tableOf(query string) string {
	fields := strings.Fields(query)
	for i := 0; i+1 < len(fields); i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			return strings.Trim(fields[i+1], "(),;")
		}
	}
	return "unknown"
}
