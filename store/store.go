// Package store persists the privacy-conscious visitor log and the contact
// submission log. It runs on SQLite for single-box deployments and on
// PostgreSQL when DATABASE_TYPE=postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	SQLite   = "sqlite"
	Postgres = "postgres"

	// VisitorRetention is how long visitor rows are kept.
	VisitorRetention = 12 * 30 * 24 * time.Hour
)

var ErrUnknownDriver = errors.New("unknown database type")

type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != SQLite && driver != Postgres {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == SQLite {
		// One writer; in-memory databases are per connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return New(db, driver), nil
}

// New wraps an open connection.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver, now: time.Now}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Driver() string { return s.driver }

// CreateSchema creates all tables. Safe to call multiple times.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
    id TEXT PRIMARY KEY,
    hashed_ip TEXT NOT NULL,
    user_agent TEXT,
    path TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE INDEX IF NOT EXISTS idx_visitors_hashed_ip ON visitors(hashed_ip);

CREATE TABLE IF NOT EXISTS contact_messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('sent', 'rejected', 'failed')),
    detail TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at);
`

// rebind rewrites ? placeholders as $N for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func newID() string {
	return uuid.NewString()
}
