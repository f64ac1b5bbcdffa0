package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-transport/internal/fleet/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, created_at, updated_at, schedule_id, trip_date, status,
	live_lon, live_lat, driver_status, started_at, ended_at`

func scanTrip(row pgx.Row) (*model.Trip, error) {
	var t model.Trip
	var lon, lat *float64
	err := row.Scan(
		&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.ScheduleID, &t.TripDate, &t.Status,
		&lon, &lat, &t.DriverStatus, &t.StartedAt, &t.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	if lon != nil && lat != nil {
		t.LiveLocation = &model.GeoPoint{Lon: *lon, Lat: *lat}
	}
	return &t, nil
}

// FindOrCreate materializes the trip for (schedule, day). The unique index on
// (schedule_id, trip_date) makes concurrent resolution safe: the insert is
// ON CONFLICT DO NOTHING and losers fall through to the select.
func (r *TripRepository) FindOrCreate(ctx context.Context, scheduleID string, day time.Time) (*model.Trip, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO trips (id, schedule_id, trip_date, status)
		VALUES ($1, $2, $3::date, 'PENDING')
		ON CONFLICT (schedule_id, trip_date) DO NOTHING
		RETURNING `+tripColumns,
		uuid.NewString(), scheduleID, day)

	trip, err := scanTrip(row)
	if err == nil {
		return trip, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Somebody else created it first.
	return r.FindBySchedule(ctx, scheduleID, day)
}

func (r *TripRepository) FindBySchedule(ctx context.Context, scheduleID string, day time.Time) (*model.Trip, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE schedule_id = $1 AND trip_date = $2::date
	`, scheduleID, day)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no trip for schedule %s on %s", model.ErrNotFound, scheduleID, day.Format("2006-01-02"))
		}
		return nil, err
	}
	return trip, nil
}

func (r *TripRepository) GetByID(ctx context.Context, id string) (*model.Trip, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: trip %s", model.ErrNotFound, id)
		}
		return nil, err
	}
	return trip, nil
}

// FindActiveByVehicle resolves "the active trip for vehicle V" by joining
// through schedules. When stale rows leave more than one candidate, the newest
// trip wins.
func (r *TripRepository) FindActiveByVehicle(ctx context.Context, vehicleID string, statuses []model.TripStatus) (*model.Trip, error) {
	row := r.db.QueryRow(ctx, `
		SELECT t.id, t.created_at, t.updated_at, t.schedule_id, t.trip_date, t.status,
			t.live_lon, t.live_lat, t.driver_status, t.started_at, t.ended_at
		FROM trips t
		JOIN schedules s ON s.id = t.schedule_id
		WHERE s.vehicle_id = $1 AND t.status = ANY($2)
		ORDER BY t.created_at DESC
		LIMIT 1
	`, vehicleID, statuses)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active trip for vehicle %s", model.ErrNotFound, vehicleID)
		}
		return nil, err
	}
	return trip, nil
}

// Save writes the trip's mutable fields. Last writer wins under concurrent
// mutation of the same trip.
func (r *TripRepository) Save(ctx context.Context, trip *model.Trip) error {
	var lon, lat *float64
	if trip.LiveLocation != nil {
		lon, lat = &trip.LiveLocation.Lon, &trip.LiveLocation.Lat
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE trips
		SET status = $2, live_lon = $3, live_lat = $4, driver_status = $5,
			started_at = $6, ended_at = $7, updated_at = now()
		WHERE id = $1
	`, trip.ID, trip.Status, lon, lat, trip.DriverStatus, trip.StartedAt, trip.EndedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: trip %s", model.ErrNotFound, trip.ID)
	}
	return nil
}

func (r *TripRepository) CountOngoing(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE status = 'ONGOING'`).Scan(&n)
	return n, err
}
