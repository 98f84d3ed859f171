package storage

import (
	"context"

	"github.com/vitorhrds/schedly/internal/model"
	"github.com/vitorhrds/schedly/libs/db"
)

type IntervalRepository struct {
	pool *db.Pool
}

func NewIntervalRepository(pool *db.Pool) *IntervalRepository {
	return &IntervalRepository{pool: pool}
}

// Replace swaps the host's entire week configuration in one transaction, so readers
// never observe a partially written plan.
func (r *IntervalRepository) Replace(ctx context.Context, hostID string, intervals []model.TimeInterval) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM host_time_intervals
		WHERE host_id = $1
	`, hostID); err != nil {
		return err
	}

	for _, iv := range intervals {
		if _, err := tx.Exec(ctx, `
			INSERT INTO host_time_intervals (host_id, weekday, start_minute, end_minute)
			VALUES ($1, $2, $3, $4)
		`, hostID, iv.Weekday, iv.StartMinute, iv.EndMinute); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *IntervalRepository) ListByHost(ctx context.Context, hostID string) ([]model.TimeInterval, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT host_id::text, weekday, start_minute, end_minute
		FROM host_time_intervals
		WHERE host_id = $1
		ORDER BY weekday ASC
	`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []model.TimeInterval
	for rows.Next() {
		var iv model.TimeInterval
		if err := rows.Scan(&iv.HostID, &iv.Weekday, &iv.StartMinute, &iv.EndMinute); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return intervals, nil
}
