package repository

import (
	"context"
	"time"

	"campus-transport/internal/fleet/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FleetRepository struct {
	db *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) *FleetRepository {
	return &FleetRepository{db: db}
}

// FleetRow is one vehicle joined with its current trip, before the service
// applies fallback location and offline status.
type FleetRow struct {
	VehicleID    string
	Registration string
	Name         string
	Type         model.VehicleType
	Location     *model.GeoPoint
	Status       *string
	RouteName    *string
	UpdatedAt    time.Time
}

// OngoingTrips returns one row per trip currently in ONGOING status.
func (r *FleetRepository) OngoingTrips(ctx context.Context) ([]FleetRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.registration, v.name, v.type,
			t.live_lon, t.live_lat, t.status, rt.name, t.updated_at
		FROM trips t
		JOIN schedules s ON s.id = t.schedule_id
		JOIN vehicles v ON v.id = s.vehicle_id
		JOIN routes rt ON rt.id = s.route_id
		WHERE t.status = 'ONGOING'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFleetRows(rows)
}

// ActiveVehicles returns every active vehicle, left-joined with its most
// recent ongoing trip when one exists.
func (r *FleetRepository) ActiveVehicles(ctx context.Context) ([]FleetRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.registration, v.name, v.type,
			t.live_lon, t.live_lat, t.status, rt.name, COALESCE(t.updated_at, v.updated_at)
		FROM vehicles v
		LEFT JOIN LATERAL (
			SELECT tr.live_lon, tr.live_lat, tr.status, tr.updated_at, s.route_id
			FROM trips tr
			JOIN schedules s ON s.id = tr.schedule_id
			WHERE s.vehicle_id = v.id AND tr.status = 'ONGOING'
			ORDER BY tr.created_at DESC
			LIMIT 1
		) t ON true
		LEFT JOIN routes rt ON rt.id = t.route_id
		WHERE v.active
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFleetRows(rows)
}

func collectFleetRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]FleetRow, error) {
	var out []FleetRow
	for rows.Next() {
		var row FleetRow
		var lon, lat *float64
		if err := rows.Scan(
			&row.VehicleID, &row.Registration, &row.Name, &row.Type,
			&lon, &lat, &row.Status, &row.RouteName, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if lon != nil && lat != nil {
			row.Location = &model.GeoPoint{Lon: *lon, Lat: *lat}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
