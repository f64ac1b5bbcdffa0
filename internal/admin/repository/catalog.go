package repository

import (
	"context"
	"fmt"

	"campus-transport/internal/fleet/model"

	"github.com/google/uuid"
)

func (r *AdminRepository) CreateStop(ctx context.Context, s *model.Stop) (*model.Stop, error) {
	s.ID = uuid.NewString()
	err := r.db.QueryRow(ctx, `
		INSERT INTO stops (id, name, lon, lat, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, s.ID, s.Name, s.Location.Lon, s.Location.Lat, s.Description).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "stop name")
	}
	return s, nil
}

func (r *AdminRepository) ListStops(ctx context.Context) ([]model.Stop, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, updated_at, name, lon, lat, description
		FROM stops
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Stop
	for rows.Next() {
		var s model.Stop
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.Name,
			&s.Location.Lon, &s.Location.Lat, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AdminRepository) DeleteStop(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stops WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stop %s", model.ErrNotFound, id)
	}
	return nil
}

// CreateRoute inserts the route and its ordered stop sequence in one
// transaction. Positions are assigned densely 1..N from the given order.
func (r *AdminRepository) CreateRoute(ctx context.Context, name string, stopIDs []string) (*model.Route, error) {
	if len(stopIDs) == 0 {
		return nil, fmt.Errorf("%w: route needs at least one stop", model.ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	route := &model.Route{ID: uuid.NewString(), Name: name}
	err = tx.QueryRow(ctx, `
		INSERT INTO routes (id, name)
		VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, route.ID, route.Name).Scan(&route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err, "route name")
	}

	for i, stopID := range stopIDs {
		var stopName string
		err := tx.QueryRow(ctx, `
			INSERT INTO route_stops (route_id, stop_id, position)
			VALUES ($1, $2, $3)
			RETURNING (SELECT name FROM stops WHERE id = $2)
		`, route.ID, stopID, i+1).Scan(&stopName)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown stop %s", model.ErrInvalidInput, stopID)
		}
		route.Stops = append(route.Stops, model.RouteStop{
			StopID:   stopID,
			StopName: stopName,
			Position: i + 1,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return route, nil
}

func (r *AdminRepository) ListRoutes(ctx context.Context) ([]model.Route, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.created_at, r.updated_at, r.name, rs.stop_id, s.name, rs.position
		FROM routes r
		LEFT JOIN route_stops rs ON rs.route_id = r.id
		LEFT JOIN stops s ON s.id = rs.stop_id
		ORDER BY r.name, rs.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Route
	index := make(map[string]int)
	for rows.Next() {
		var route model.Route
		var stopID, stopName *string
		var position *int
		if err := rows.Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt, &route.Name,
			&stopID, &stopName, &position); err != nil {
			return nil, err
		}

		i, seen := index[route.ID]
		if !seen {
			out = append(out, route)
			i = len(out) - 1
			index[route.ID] = i
		}
		if stopID != nil {
			out[i].Stops = append(out[i].Stops, model.RouteStop{
				StopID:   *stopID,
				StopName: *stopName,
				Position: *position,
			})
		}
	}
	return out, rows.Err()
}

func (r *AdminRepository) DeleteRoute(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: route %s", model.ErrNotFound, id)
	}
	return nil
}

func (r *AdminRepository) CreateSchedule(ctx context.Context, s *model.Schedule) (*model.Schedule, error) {
	for _, d := range s.Days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range", model.ErrInvalidInput, d)
		}
	}

	s.ID = uuid.NewString()
	err := r.db.QueryRow(ctx, `
		INSERT INTO schedules (id, route_id, vehicle_id, departure_time, days, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, s.ID, s.RouteID, s.VehicleID, s.DepartureTime, s.Days, s.Active).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: route and vehicle must exist", model.ErrInvalidInput)
	}
	return s, nil
}

func (r *AdminRepository) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, updated_at, route_id, vehicle_id, departure_time, days, active
		FROM schedules
		ORDER BY departure_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Schedule
	for rows.Next() {
		var s model.Schedule
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.RouteID,
			&s.VehicleID, &s.DepartureTime, &s.Days, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AdminRepository) UpdateSchedule(ctx context.Context, s *model.Schedule) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE schedules
		SET route_id = $2, vehicle_id = $3, departure_time = $4, days = $5,
			active = $6, updated_at = now()
		WHERE id = $1
	`, s.ID, s.RouteID, s.VehicleID, s.DepartureTime, s.Days, s.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: schedule %s", model.ErrNotFound, s.ID)
	}
	return nil
}

func (r *AdminRepository) DeleteSchedule(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: schedule %s", model.ErrNotFound, id)
	}
	return nil
}
