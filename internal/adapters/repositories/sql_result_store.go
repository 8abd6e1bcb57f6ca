package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"load-route-service/internal/ports"
	"time"
)

// SQLResultStore persists planned routes in the route_results table.
type SQLResultStore struct {
	DB      *sql.DB
	Dialect Dialect
	now     func() time.Time
}

func NewSQLResultStore(db *sql.DB, dialect Dialect) *SQLResultStore {
	return &SQLResultStore{DB: db, Dialect: dialect, now: time.Now}
}

// Insert or replace results keyed by trip id.
func (s *SQLResultStore) SaveResults(ctx context.Context, results []domain.RouteResult) (err error) {
	defer obs.Time(ctx, "results.store.SaveResults")(&err)

	if s.DB == nil {
		return errors.New("result store: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save results: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO route_results (
		trip_id,
		load_ids,
		money_earned,
		distance_miles,
		fuel_cost,
		net_profit,
		arrive_at,
		expansions,
		truncated,
		error,
		planned_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (trip_id) DO UPDATE
	SET load_ids = EXCLUDED.load_ids,
		money_earned = EXCLUDED.money_earned,
		distance_miles = EXCLUDED.distance_miles,
		fuel_cost = EXCLUDED.fuel_cost,
		net_profit = EXCLUDED.net_profit,
		arrive_at = EXCLUDED.arrive_at,
		expansions = EXCLUDED.expansions,
		truncated = EXCLUDED.truncated,
		error = EXCLUDED.error,
		planned_at = EXCLUDED.planned_at;
	`))
	if err != nil {
		return fmt.Errorf("save results: db prepare: %w", err)
	}
	defer stmt.Close()

	plannedAt := s.now().UTC().Format(time.RFC3339Nano)

	for _, r := range results {
		ids := r.LoadIDs
		if ids == nil {
			ids = []int64{}
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("save results: trip_id=%d: encode load ids: %w", r.TripID, err)
		}

		truncated := 0
		if r.Truncated {
			truncated = 1
		}

		if _, err := stmt.ExecContext(ctx,
			r.TripID,
			string(encoded),
			r.MoneyEarned,
			r.DistanceMiles,
			r.FuelCost,
			r.NetProfit,
			r.ArriveAt.UTC().Format(time.RFC3339Nano),
			r.Expansions,
			truncated,
			r.Error,
			plannedAt,
		); err != nil {
			return fmt.Errorf("save results: trip_id=%d: %w", r.TripID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save results: commit: %w", err)
	}

	return nil
}

// Return the stored result for a trip, or ports.ErrResultNotFound.
func (s *SQLResultStore) GetResult(ctx context.Context, tripID int64) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "results.store.GetResult")(&err)

	if s.DB == nil {
		return domain.RouteResult{}, errors.New("result store: db is nil")
	}

	q := s.Dialect.rebind(`
	SELECT
		trip_id,
		load_ids,
		money_earned,
		distance_miles,
		fuel_cost,
		net_profit,
		arrive_at,
		expansions,
		truncated,
		error
	FROM route_results
	WHERE trip_id = ?;
	`)

	var (
		r         domain.RouteResult
		ids       string
		arriveAt  string
		truncated int
	)
	err = s.DB.QueryRowContext(ctx, q, tripID).Scan(
		&r.TripID,
		&ids,
		&r.MoneyEarned,
		&r.DistanceMiles,
		&r.FuelCost,
		&r.NetProfit,
		&arriveAt,
		&r.Expansions,
		&truncated,
		&r.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteResult{}, fmt.Errorf("get result: trip_id=%d: %w", tripID, ports.ErrResultNotFound)
	}
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("get result: trip_id=%d: %w", tripID, err)
	}

	if err := json.Unmarshal([]byte(ids), &r.LoadIDs); err != nil {
		return domain.RouteResult{}, fmt.Errorf("get result: trip_id=%d: decode load ids: %w", tripID, err)
	}
	if r.ArriveAt, err = time.Parse(time.RFC3339Nano, arriveAt); err != nil {
		return domain.RouteResult{}, fmt.Errorf("get result: trip_id=%d: parse arrive_at: %w", tripID, err)
	}
	r.Truncated = truncated != 0

	return r, nil
}
