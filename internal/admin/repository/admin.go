package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-transport/internal/fleet/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

const uniqueViolation = "23505"

func mapPgError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s already exists", model.ErrInvalidInput, what)
	}
	return err
}

// SystemOverview is the admin dashboard summary.
type SystemOverview struct {
	Timestamp           time.Time      `json:"timestamp"`
	ActiveVehicles      int            `json:"active_vehicles"`
	OngoingTrips        int            `json:"ongoing_trips"`
	TripsToday          int            `json:"trips_today"`
	CancelledTripsToday int            `json:"cancelled_trips_today"`
	VehicleDistribution map[string]int `json:"vehicle_distribution"`
}

func (r *AdminRepository) GetSystemOverview(ctx context.Context) (*SystemOverview, error) {
	overview := &SystemOverview{
		Timestamp: time.Now().UTC(),
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM vehicles WHERE active
	`).Scan(&overview.ActiveVehicles)
	if err != nil {
		return nil, fmt.Errorf("failed to get active vehicles count: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM trips WHERE status = 'ONGOING'
	`).Scan(&overview.OngoingTrips)
	if err != nil {
		return nil, fmt.Errorf("failed to get ongoing trips count: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM trips WHERE trip_date = $1::date
	`, today).Scan(&overview.TripsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's trips count: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM trips WHERE trip_date = $1::date AND status = 'CANCELLED'
	`, today).Scan(&overview.CancelledTripsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to get cancelled trips count: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT type, COUNT(*) FROM vehicles WHERE active GROUP BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle distribution: %w", err)
	}
	defer rows.Close()

	overview.VehicleDistribution = make(map[string]int)
	for rows.Next() {
		var vehicleType string
		var count int
		if err := rows.Scan(&vehicleType, &count); err != nil {
			return nil, err
		}
		overview.VehicleDistribution[vehicleType] = count
	}

	return overview, rows.Err()
}

func (r *AdminRepository) CreateVehicle(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	v.ID = uuid.NewString()
	err := r.db.QueryRow(ctx, `
		INSERT INTO vehicles (id, registration, name, capacity, type, driver_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, v.ID, v.Registration, v.Name, v.Capacity, v.Type, v.DriverID, v.Active).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "vehicle registration or assigned driver")
	}
	return v, nil
}

func (r *AdminRepository) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, updated_at, registration, name, capacity, type, driver_id, active
		FROM vehicles
		ORDER BY registration
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Registration,
			&v.Name, &v.Capacity, &v.Type, &v.DriverID, &v.Active); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *AdminRepository) GetVehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, registration, name, capacity, type, driver_id, active
		FROM vehicles
		WHERE id = $1
	`, id).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Registration,
		&v.Name, &v.Capacity, &v.Type, &v.DriverID, &v.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: vehicle %s", model.ErrNotFound, id)
		}
		return nil, err
	}
	return &v, nil
}

func (r *AdminRepository) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET registration = $2, name = $3, capacity = $4, type = $5,
			driver_id = $6, active = $7, updated_at = now()
		WHERE id = $1
	`, v.ID, v.Registration, v.Name, v.Capacity, v.Type, v.DriverID, v.Active)
	if err != nil {
		return mapPgError(err, "vehicle registration or assigned driver")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vehicle %s", model.ErrNotFound, v.ID)
	}
	return nil
}

func (r *AdminRepository) DeleteVehicle(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vehicle %s", model.ErrNotFound, id)
	}
	return nil
}
