package repository

import (
	"context"
	"errors"
	"fmt"

	"campus-transport/internal/fleet/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindForVehicleDay returns the active schedule for the vehicle that recurs on
// the given weekday (0=Sunday..6=Saturday). Earliest departure wins when a
// vehicle carries several schedules for the same day.
func (r *ScheduleRepository) FindForVehicleDay(ctx context.Context, vehicleID string, weekday int) (*model.Schedule, error) {
	var s model.Schedule
	err := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, route_id, vehicle_id, departure_time, days, active
		FROM schedules
		WHERE vehicle_id = $1 AND active AND $2 = ANY(days)
		ORDER BY departure_time
		LIMIT 1
	`, vehicleID, weekday).Scan(
		&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.RouteID, &s.VehicleID,
		&s.DepartureTime, &s.Days, &s.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no schedule for vehicle %s on weekday %d", model.ErrNotFound, vehicleID, weekday)
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var s model.Schedule
	err := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, route_id, vehicle_id, departure_time, days, active
		FROM schedules
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.RouteID, &s.VehicleID,
		&s.DepartureTime, &s.Days, &s.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: schedule %s", model.ErrNotFound, id)
		}
		return nil, err
	}
	return &s, nil
}
