package service

import (
	"context"
	"time"

	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/repository"
	"campus-transport/internal/fleet/rmq"
)

type ScheduleStore interface {
	FindForVehicleDay(ctx context.Context, vehicleID string, weekday int) (*model.Schedule, error)
}

type TripStore interface {
	FindOrCreate(ctx context.Context, scheduleID string, day time.Time) (*model.Trip, error)
	GetByID(ctx context.Context, id string) (*model.Trip, error)
	FindActiveByVehicle(ctx context.Context, vehicleID string, statuses []model.TripStatus) (*model.Trip, error)
	Save(ctx context.Context, trip *model.Trip) error
	CountOngoing(ctx context.Context) (int, error)
}

type FleetStore interface {
	OngoingTrips(ctx context.Context) ([]repository.FleetRow, error)
	ActiveVehicles(ctx context.Context) ([]repository.FleetRow, error)
}

type EventPublisher interface {
	PublishTripStatus(ctx context.Context, msg rmq.TripStatusMessage) error
	PublishLocation(ctx context.Context, msg rmq.LocationMessage) error
}
