package service

import (
	"context"
	"fmt"
	"time"

	"campus-transport/internal/common/logger"
	"campus-transport/internal/common/metrics"
	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/rmq"
)

// TripService enforces the trip lifecycle: PENDING -> ONGOING -> COMPLETED,
// with cancellation allowed from PENDING and ONGOING.
type TripService struct {
	resolver  *Resolver
	trips     TripStore
	publisher EventPublisher
	collector *metrics.Collector
}

func NewTripService(resolver *Resolver, trips TripStore, publisher EventPublisher, collector *metrics.Collector) *TripService {
	return &TripService{
		resolver:  resolver,
		trips:     trips,
		publisher: publisher,
		collector: collector,
	}
}

type StartResult struct {
	TripID    string           `json:"trip_id"`
	VehicleID string           `json:"vehicle_id"`
	Status    model.TripStatus `json:"status"`
	StartTime time.Time        `json:"start_time"`
}

type EndResult struct {
	TripID  string           `json:"trip_id"`
	Status  model.TripStatus `json:"status"`
	EndTime time.Time        `json:"end_time"`
}

type UpdateTripRequest struct {
	Status       *model.TripStatus `json:"status,omitempty"`
	DriverStatus *string           `json:"driver_status,omitempty"`
	StartTime    *time.Time        `json:"start_time,omitempty"`
	EndTime      *time.Time        `json:"end_time,omitempty"`
}

type UpdateTripResult struct {
	TripID       string           `json:"trip_id"`
	Status       model.TripStatus `json:"status"`
	DriverStatus *string          `json:"driver_status,omitempty"`
	StartTime    *time.Time       `json:"start_time,omitempty"`
	EndTime      *time.Time       `json:"end_time,omitempty"`
}

// Start resolves today's trip for the vehicle (creating it when absent) and
// transitions it to ONGOING. Re-starting an already ONGOING trip is idempotent
// and only resets the start time.
func (s *TripService) Start(ctx context.Context, vehicleID string) (*StartResult, error) {
	trip, err := s.resolver.ResolveTrip(ctx, vehicleID, time.Now())
	if err != nil {
		return nil, err
	}

	switch trip.Status {
	case model.TripPending, model.TripOngoing:
	default:
		return nil, fmt.Errorf("%w: trip %s is already %s", model.ErrInvalidTransition, trip.ID, trip.Status)
	}

	now := time.Now()
	trip.Status = model.TripOngoing
	trip.StartedAt = &now

	if err := s.trips.Save(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("trip_started", fmt.Sprintf("Vehicle %s started its trip", vehicleID), "", trip.ID)
	if s.collector != nil {
		s.collector.TripsStarted.Inc()
	}
	s.refreshOngoingGauge(ctx)
	s.publishStatus(ctx, trip.ID, vehicleID, trip.Status)

	return &StartResult{
		TripID:    trip.ID,
		VehicleID: vehicleID,
		Status:    trip.Status,
		StartTime: now,
	}, nil
}

// End completes the vehicle's ONGOING trip.
func (s *TripService) End(ctx context.Context, vehicleID string) (*EndResult, error) {
	trip, err := s.trips.FindActiveByVehicle(ctx, vehicleID, []model.TripStatus{model.TripOngoing})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trip.Status = model.TripCompleted
	trip.EndedAt = &now

	if err := s.trips.Save(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("trip_completed", fmt.Sprintf("Vehicle %s completed its trip", vehicleID), "", trip.ID)
	if s.collector != nil {
		s.collector.TripsCompleted.Inc()
	}
	s.refreshOngoingGauge(ctx)
	s.publishStatus(ctx, trip.ID, vehicleID, trip.Status)

	return &EndResult{TripID: trip.ID, Status: trip.Status, EndTime: now}, nil
}

// Cancel aborts the vehicle's PENDING or ONGOING trip.
func (s *TripService) Cancel(ctx context.Context, vehicleID string) (*EndResult, error) {
	trip, err := s.trips.FindActiveByVehicle(ctx, vehicleID,
		[]model.TripStatus{model.TripPending, model.TripOngoing})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trip.Status = model.TripCancelled
	trip.EndedAt = &now

	if err := s.trips.Save(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("trip_cancelled", fmt.Sprintf("Trip for vehicle %s cancelled", vehicleID), "", trip.ID)
	if s.collector != nil {
		s.collector.TripsCancelled.Inc()
	}
	s.refreshOngoingGauge(ctx)
	s.publishStatus(ctx, trip.ID, vehicleID, trip.Status)

	return &EndResult{TripID: trip.ID, Status: trip.Status, EndTime: now}, nil
}

// Update writes auxiliary fields (driver status, timestamps) verbatim. A
// status change, when present, is routed through the state machine instead of
// being written blind.
func (s *TripService) Update(ctx context.Context, tripID string, req UpdateTripRequest) (*UpdateTripResult, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != trip.Status {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", model.ErrInvalidInput, *req.Status)
		}
		if !model.CanTransition(trip.Status, *req.Status) {
			return nil, fmt.Errorf("%w: cannot move from %s to %s", model.ErrInvalidTransition, trip.Status, *req.Status)
		}
		trip.Status = *req.Status
	}
	if req.DriverStatus != nil {
		trip.DriverStatus = req.DriverStatus
	}
	if req.StartTime != nil {
		trip.StartedAt = req.StartTime
	}
	if req.EndTime != nil {
		trip.EndedAt = req.EndTime
	}

	if err := s.trips.Save(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("trip_updated", "Trip fields updated", "", trip.ID)
	s.refreshOngoingGauge(ctx)

	return &UpdateTripResult{
		TripID:       trip.ID,
		Status:       trip.Status,
		DriverStatus: trip.DriverStatus,
		StartTime:    trip.StartedAt,
		EndTime:      trip.EndedAt,
	}, nil
}

func (s *TripService) publishStatus(ctx context.Context, tripID, vehicleID string, status model.TripStatus) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishTripStatus(ctx, rmq.TripStatusMessage{
		Type:      "trip_status",
		TripID:    tripID,
		VehicleID: vehicleID,
		Status:    string(status),
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Warn("publish_trip_status_failed", "Failed to publish trip status event", "", tripID, err.Error())
	}
}

func (s *TripService) refreshOngoingGauge(ctx context.Context) {
	if s.collector == nil {
		return
	}
	if n, err := s.trips.CountOngoing(ctx); err == nil {
		s.collector.OngoingTrips.Set(float64(n))
	}
}
