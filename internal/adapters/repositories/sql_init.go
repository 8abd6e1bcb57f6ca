package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

// Dialect selects placeholder syntax. Queries are written with "?" and
// rebound for Postgres.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
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

// Initialize the database schema. The DDL is valid for both Postgres and
// SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLoadsQuery := `
	CREATE TABLE IF NOT EXISTS loads (
		load_id BIGINT PRIMARY KEY,
		origin_city TEXT NOT NULL DEFAULT '',
		origin_state TEXT NOT NULL DEFAULT '',
		origin_latitude DOUBLE PRECISION NOT NULL,
		origin_longitude DOUBLE PRECISION NOT NULL,
		destination_city TEXT NOT NULL DEFAULT '',
		destination_state TEXT NOT NULL DEFAULT '',
		destination_latitude DOUBLE PRECISION NOT NULL,
		destination_longitude DOUBLE PRECISION NOT NULL,
		amount BIGINT NOT NULL,
		pickup_date_time TEXT NOT NULL
	);
	`

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS route_results (
		trip_id BIGINT PRIMARY KEY,
		load_ids TEXT NOT NULL,
		money_earned DOUBLE PRECISION NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		fuel_cost DOUBLE PRECISION NOT NULL,
		net_profit DOUBLE PRECISION NOT NULL,
		arrive_at TEXT NOT NULL,
		expansions INTEGER NOT NULL,
		truncated INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		planned_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_loads_origin
    ON loads(origin_latitude, origin_longitude);
	`

	statements := []string{
		createLoadsQuery,
		createResultsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// InsertLoads upserts loads by load_id in a single transaction.
func InsertLoads(ctx context.Context, db *sql.DB, dialect Dialect, loads []domain.Load) error {
	if db == nil {
		return errors.New("insert loads: DB is nil")
	}
	if err := domain.ValidateLoads(loads); err != nil {
		return fmt.Errorf("insert loads: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert loads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, dialect.rebind(`
	INSERT INTO loads (
		load_id,
		origin_city,
		origin_state,
		origin_latitude,
		origin_longitude,
		destination_city,
		destination_state,
		destination_latitude,
		destination_longitude,
		amount,
		pickup_date_time
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (load_id) DO UPDATE
	SET origin_city = EXCLUDED.origin_city,
		origin_state = EXCLUDED.origin_state,
		origin_latitude = EXCLUDED.origin_latitude,
		origin_longitude = EXCLUDED.origin_longitude,
		destination_city = EXCLUDED.destination_city,
		destination_state = EXCLUDED.destination_state,
		destination_latitude = EXCLUDED.destination_latitude,
		destination_longitude = EXCLUDED.destination_longitude,
		amount = EXCLUDED.amount,
		pickup_date_time = EXCLUDED.pickup_date_time;
	`))
	if err != nil {
		return fmt.Errorf("insert loads: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range loads {
		if _, err := stmt.ExecContext(ctx,
			l.LoadID,
			l.OriginCity,
			l.OriginState,
			l.Origin.Lat,
			l.Origin.Lon,
			l.DestinationCity,
			l.DestinationState,
			l.Destination.Lat,
			l.Destination.Lon,
			l.Amount,
			l.PickupAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert loads: load_id=%d: %w", l.LoadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert loads: commit tx: %w", err)
	}

	return nil
}

// Populate the loads table from a JSON dataset.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) error {
	loads, err := ReadLoadsJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("seed loads: %w", err)
	}

	if err := InsertLoads(ctx, db, dialect, loads); err != nil {
		return fmt.Errorf("seed loads: %w", err)
	}

	return nil
}
