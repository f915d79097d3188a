package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"road-snap-service/internal/domain"
	"road-snap-service/internal/platform/obs"
)

// SQLSpeedLimitCache is a Postgres-backed cache mapping place IDs to posted
// speed limits. Place IDs are opaque and stored verbatim.
type SQLSpeedLimitCache struct {
	DB *sql.DB
}

func NewSQLSpeedLimitCache(db *sql.DB) *SQLSpeedLimitCache {
	return &SQLSpeedLimitCache{DB: db}
}

// Fetch cached speed limits for the given place IDs.
func (s *SQLSpeedLimitCache) GetMany(
	ctx context.Context,
	placeIDs []domain.PlaceID,
) (_ map[domain.PlaceID]domain.SpeedLimit, err error) {
	defer obs.Time(ctx, "speedlimit.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("speed limit cache: db is nil")
	}

	if len(placeIDs) == 0 {
		return map[domain.PlaceID]domain.SpeedLimit{}, nil
	}

	seen := map[domain.PlaceID]struct{}{}
	uniq := make([]string, 0, len(placeIDs))
	for _, id := range placeIDs {
		id = domain.PlaceID(strings.TrimSpace(string(id)))
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, string(id))
	}

	if len(uniq) == 0 {
		return map[domain.PlaceID]domain.SpeedLimit{}, nil
	}

	q := `
	SELECT place_id, speed_limit, units
    FROM speed_limit_cache
    WHERE place_id = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get speed limit cache: query speed_limit_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.PlaceID]domain.SpeedLimit, len(uniq))
	for rows.Next() {
		var id, units string
		var limit float64
		if err := rows.Scan(&id, &limit, &units); err != nil {
			return nil, fmt.Errorf("get speed limit cache: scan rows: %w", err)
		}
		out[domain.PlaceID(id)] = domain.SpeedLimit{
			PlaceID: domain.PlaceID(id),
			Limit:   limit,
			Units:   domain.SpeedUnit(units),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get speed limit cache: row iteration: %w", err)
	}

	return out, nil
}

// Store place ID -> speed limit mappings in the cache.
func (s *SQLSpeedLimitCache) PutMany(ctx context.Context, limits []domain.SpeedLimit) error {
	if s.DB == nil {
		return errors.New("speed limit cache: db is nil")
	}

	if len(limits) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert speed limit cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO speed_limit_cache (place_id, speed_limit, units)
    VALUES ($1, $2, $3)
	ON CONFLICT (place_id) DO UPDATE
	SET speed_limit = EXCLUDED.speed_limit,
		units = EXCLUDED.units,
		fetched_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert speed limit cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, l := range limits {
		if strings.TrimSpace(string(l.PlaceID)) == "" {
			return fmt.Errorf("insert speed limit cache: empty place ID key")
		}

		if _, err := stmt.ExecContext(ctx, string(l.PlaceID), l.Limit, string(l.Units)); err != nil {
			return fmt.Errorf("insert speed limit cache place_id=%q: %w", l.PlaceID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert speed limit cache commit: %w", err)
	}

	return nil
}
