package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the people table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS people (
    name_key   TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL DEFAULT '',
    role       TEXT NOT NULL DEFAULT '',
    first_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_seen  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database. Names are keyed
// by their lowercased form so matching is case-insensitive across meetings.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] that uses the given database
// connection or pool. The caller is responsible for calling
// [PostgresStore.Migrate] to ensure the schema exists before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database, creating the people
// table if it does not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	if err != nil {
		return fmt.Errorf("directory: migrate: %w", err)
	}
	return nil
}

// Lookup implements [Store].
func (s *PostgresStore) Lookup(ctx context.Context, name string) (*Person, error) {
	const query = `
		SELECT name, email, role, first_seen, last_seen
		FROM people
		WHERE name_key = $1`

	var p Person
	err := s.db.QueryRow(ctx, query, nameKey(name)).Scan(
		&p.Name, &p.Email, &p.Role, &p.FirstSeen, &p.LastSeen,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("directory: lookup %q: %w", name, err)
	}
	return &p, nil
}

// List implements [Store].
func (s *PostgresStore) List(ctx context.Context) ([]Person, error) {
	const query = `
		SELECT name, email, role, first_seen, last_seen
		FROM people
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.Name, &p.Email, &p.Role, &p.FirstSeen, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("directory: list scan: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	return people, nil
}

// Upsert implements [Store]. Empty incoming Email/Role never overwrite
// existing values; last_seen is always refreshed.
func (s *PostgresStore) Upsert(ctx context.Context, p Person) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.New("directory: person name must not be empty")
	}

	const query = `
		INSERT INTO people (name_key, name, email, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name_key) DO UPDATE SET
			email = CASE WHEN people.email = '' THEN EXCLUDED.email ELSE people.email END,
			role = CASE WHEN people.role = '' THEN EXCLUDED.role ELSE people.role END,
			last_seen = now()
		RETURNING first_seen, last_seen`

	err := s.db.QueryRow(ctx, query, nameKey(name), name, p.Email, p.Role).
		Scan(&p.FirstSeen, &p.LastSeen)
	if err != nil {
		return fmt.Errorf("directory: upsert %q: %w", name, err)
	}
	return nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
