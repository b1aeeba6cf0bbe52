package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/i474232898/travel-genie/internal/travel"
)

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	trip_id    TEXT NOT NULL,
	route_key  TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	body       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_plans_route_created ON plans(route_key, created_at);
`

// SQLiteStore implements travel.PlanStore on SQLite (pure Go driver
// modernc.org/sqlite). Plans are stored as JSON documents.
type SQLiteStore struct {
	db         *sql.DB
	maxHistory int
	maxAge     time.Duration
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string, maxHistory int, maxAge time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	s, err := newSQLiteStore(db, maxHistory, maxAge)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newSQLiteStore(db *sql.DB, maxHistory int, maxAge time.Duration) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db, maxHistory: maxHistory, maxAge: maxAge}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SavePlan inserts a plan and enforces retention for its route.
func (s *SQLiteStore) SavePlan(plan travel.Plan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	key := plan.Trip.RouteKey()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO plans(trip_id, route_key, created_at, body) VALUES(?,?,?,?)`,
		plan.TripID, key, plan.CreatedAt.UnixNano(), string(body),
	); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	if s.maxHistory > 0 {
		if _, err := tx.Exec(
			`DELETE FROM plans WHERE route_key = ? AND id NOT IN
			 (SELECT id FROM plans WHERE route_key = ? ORDER BY created_at DESC, id DESC LIMIT ?)`,
			key, key, s.maxHistory,
		); err != nil {
			return fmt.Errorf("enforce history limit: %w", err)
		}
	}
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge).UnixNano()
		if _, err := tx.Exec(
			`DELETE FROM plans WHERE route_key = ? AND created_at < ? AND id <>
			 (SELECT id FROM plans WHERE route_key = ? ORDER BY created_at DESC, id DESC LIMIT 1)`,
			key, cutoff, key,
		); err != nil {
			return fmt.Errorf("enforce max age: %w", err)
		}
	}

	return tx.Commit()
}

// GetLatest returns the most recent plan for a route.
func (s *SQLiteStore) GetLatest(source, destination string) (travel.Plan, error) {
	var body string
	err := s.db.QueryRow(
		`SELECT body FROM plans WHERE route_key = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		travel.RouteKey(source, destination),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return travel.Plan{}, ErrNotFound
	}
	if err != nil {
		return travel.Plan{}, err
	}
	return decodePlan(body)
}

// GetRange returns all plans for a route created between from and to (inclusive).
func (s *SQLiteStore) GetRange(source, destination string, from, to time.Time) ([]travel.Plan, error) {
	rows, err := s.db.Query(
		`SELECT body FROM plans WHERE route_key = ? AND created_at >= ? AND created_at <= ?
		 ORDER BY created_at, id`,
		travel.RouteKey(source, destination), from.UnixNano(), to.UnixNano(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []travel.Plan
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		p, err := decodePlan(body)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func decodePlan(body string) (travel.Plan, error) {
	var p travel.Plan
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return travel.Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	return p, nil
}
