package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"time"
)

// SQL-backed implementation of the LoadRepository port.
type SQLLoadRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLLoadRepository(db *sql.DB, dialect Dialect) *SQLLoadRepository {
	return &SQLLoadRepository{DB: db, Dialect: dialect}
}

// Return all loads stored in the database, ordered by id.
func (s *SQLLoadRepository) ListLoads(ctx context.Context) (_ []domain.Load, err error) {
	defer obs.Time(ctx, "loads.repo.ListLoads")(&err)

	if s.DB == nil {
		return nil, errors.New("sql load repository: DB is nil")
	}

	query := `
	SELECT
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
	FROM loads
	ORDER BY load_id;
	`
	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("list loads: query loads table: %w", err)
	}
	defer rows.Close()

	loads := make([]domain.Load, 0, 256)
	for rows.Next() {
		var (
			l      domain.Load
			pickup string
		)
		err := rows.Scan(
			&l.LoadID,
			&l.OriginCity,
			&l.OriginState,
			&l.Origin.Lat,
			&l.Origin.Lon,
			&l.DestinationCity,
			&l.DestinationState,
			&l.Destination.Lat,
			&l.Destination.Lon,
			&l.Amount,
			&pickup,
		)
		if err != nil {
			return nil, fmt.Errorf("list loads: scan row: %w", err)
		}

		l.PickupAt, err = time.Parse(time.RFC3339Nano, pickup)
		if err != nil {
			return nil, fmt.Errorf("list loads: load_id=%d: parse pickup_date_time %q: %w", l.LoadID, pickup, err)
		}
		loads = append(loads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loads: row iteration: %w", err)
	}

	return loads, nil
}
