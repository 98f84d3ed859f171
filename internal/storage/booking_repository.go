package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vitorhrds/schedly/internal/model"
	"github.com/vitorhrds/schedly/libs/db"
)

type BookingRepository struct {
	pool *db.Pool
}

func NewBookingRepository(pool *db.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts under the UNIQUE (host_id, start_time) constraint. Two concurrent
// requests racing for the same slot serialize here; the loser surfaces IsConflict.
func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO bookings (host_id, observer_name, observer_email, observations, start_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text
	`, booking.HostID, booking.ObserverName, booking.ObserverEmail, booking.Observations,
		booking.StartTime).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListAt returns the start instants the host already has booked at exactly the given
// instant, scoped to the transaction. Advisory only: the unique constraint in Create
// remains the authoritative check.
func (r *BookingRepository) ListAt(ctx context.Context, tx pgx.Tx, hostID string, at time.Time) ([]time.Time, error) {
	rows, err := tx.Query(ctx, `
		SELECT start_time
		FROM bookings
		WHERE host_id = $1 AND start_time = $2
	`, hostID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instants []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		instants = append(instants, at)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return instants, nil
}

// ListBetween returns the host's bookings with start_time in [from, to], both bounds
// inclusive, ordered chronologically.
func (r *BookingRepository) ListBetween(ctx context.Context, hostID string, from, to time.Time) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, host_id::text, observer_name, observer_email, observations, start_time, created_at
		FROM bookings
		WHERE host_id = $1
			AND start_time >= $2
			AND start_time <= $3
		ORDER BY start_time ASC
	`, hostID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListForMonth returns every booking of the host whose start_time falls inside the
// month starting at monthStart (half-open, one calendar month wide).
func (r *BookingRepository) ListForMonth(ctx context.Context, hostID string, monthStart time.Time) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, host_id::text, observer_name, observer_email, observations, start_time, created_at
		FROM bookings
		WHERE host_id = $1
			AND start_time >= $2
			AND start_time < $3
		ORDER BY start_time ASC
	`, hostID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID,
			&b.HostID,
			&b.ObserverName,
			&b.ObserverEmail,
			&b.Observations,
			&b.StartTime,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}
