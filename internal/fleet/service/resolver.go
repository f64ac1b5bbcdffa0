package service

import (
	"context"
	"fmt"
	"time"

	"campus-transport/internal/common/logger"
	"campus-transport/internal/fleet/model"
)

// Resolver maps a (vehicle, date) pair to the trip representing that vehicle's
// service on that date, materializing it as PENDING when it does not exist.
type Resolver struct {
	schedules ScheduleStore
	trips     TripStore
}

func NewResolver(schedules ScheduleStore, trips TripStore) *Resolver {
	return &Resolver{schedules: schedules, trips: trips}
}

// ResolveTrip finds the active schedule whose day set contains the date's
// weekday (0=Sunday..6=Saturday) and returns the trip keyed by (schedule,
// calendar day). "No schedule today" surfaces as ErrNotFound; that is a
// legitimate day off, not a fault.
func (r *Resolver) ResolveTrip(ctx context.Context, vehicleID string, date time.Time) (*model.Trip, error) {
	weekday := int(date.Weekday())

	schedule, err := r.schedules.FindForVehicleDay(ctx, vehicleID, weekday)
	if err != nil {
		return nil, err
	}

	day := truncateToDay(date)
	trip, err := r.trips.FindOrCreate(ctx, schedule.ID, day)
	if err != nil {
		logger.Error("resolve_trip_failed", fmt.Sprintf("Failed to materialize trip for schedule %s", schedule.ID), "", "", err.Error())
		return nil, err
	}
	return trip, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
