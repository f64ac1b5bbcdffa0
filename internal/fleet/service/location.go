package service

import (
	"context"
	"encoding/json"
	"time"

	"campus-transport/internal/common/logger"
	"campus-transport/internal/common/metrics"
	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/repository"
	"campus-transport/internal/fleet/rmq"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotCacheKey = "fleet:snapshot"
	geoSetKey        = "fleet:locations"
)

// LocationService attaches coordinate samples to the active trip of a vehicle
// and serves the fleet-wide read views.
type LocationService struct {
	trips       TripStore
	fleet       FleetStore
	cache       *redis.Client
	publisher   EventPublisher
	collector   *metrics.Collector
	fallback    model.GeoPoint
	snapshotTTL time.Duration
}

func NewLocationService(trips TripStore, fleet FleetStore, cache *redis.Client,
	publisher EventPublisher, collector *metrics.Collector,
	fallback model.GeoPoint, snapshotTTL time.Duration) *LocationService {
	return &LocationService{
		trips:       trips,
		fleet:       fleet,
		cache:       cache,
		publisher:   publisher,
		collector:   collector,
		fallback:    fallback,
		snapshotTTL: snapshotTTL,
	}
}

type ReportResult struct {
	TripID       string       `json:"trip_id"`
	Location     model.LatLng `json:"location"`
	DriverStatus *string      `json:"status,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Report validates the [lon, lat] pair, overwrites the live location of the
// vehicle's ONGOING trip and fans the update out to cache, broker and metrics.
func (s *LocationService) Report(ctx context.Context, vehicleID string, pair []float64, driverStatus *string) (*ReportResult, error) {
	point, err := model.PointFromPair(pair)
	if err != nil {
		if s.collector != nil {
			s.collector.LocationUpdateErrs.Inc()
		}
		return nil, err
	}

	trip, err := s.trips.FindActiveByVehicle(ctx, vehicleID, []model.TripStatus{model.TripOngoing})
	if err != nil {
		if s.collector != nil {
			s.collector.LocationUpdateErrs.Inc()
		}
		return nil, err
	}

	trip.LiveLocation = &point
	if driverStatus != nil {
		trip.DriverStatus = driverStatus
	}

	if err := s.trips.Save(ctx, trip); err != nil {
		return nil, err
	}

	now := time.Now()
	s.mirrorToCache(ctx, vehicleID, point)
	if s.collector != nil {
		s.collector.LocationUpdates.Inc()
	}

	if s.publisher != nil {
		err := s.publisher.PublishLocation(ctx, rmq.LocationMessage{
			Type:         "location_update",
			TripID:       trip.ID,
			VehicleID:    vehicleID,
			Location:     point.LatLng(),
			DriverStatus: trip.DriverStatus,
			Timestamp:    now,
		})
		if err != nil {
			logger.Warn("publish_location_failed", "Failed to publish location update", "", trip.ID, err.Error())
		}
	}

	return &ReportResult{
		TripID:       trip.ID,
		Location:     point.LatLng(),
		DriverStatus: trip.DriverStatus,
		Timestamp:    now,
	}, nil
}

// Snapshot returns one entry per ONGOING trip. Students poll this every few
// seconds, so the result is cached briefly.
func (s *LocationService) Snapshot(ctx context.Context) ([]model.FleetEntry, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, snapshotCacheKey).Bytes(); err == nil {
			var cached []model.FleetEntry
			if json.Unmarshal(data, &cached) == nil {
				if s.collector != nil {
					s.collector.SnapshotRequests.WithLabelValues("cache").Inc()
				}
				return cached, nil
			}
		}
	}

	rows, err := s.fleet.OngoingTrips(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.toEntries(rows)
	if s.collector != nil {
		s.collector.SnapshotRequests.WithLabelValues("db").Inc()
		s.collector.OngoingTrips.Set(float64(len(entries)))
	}

	if s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.cache.Set(ctx, snapshotCacheKey, data, s.snapshotTTL)
		}
	}

	return entries, nil
}

// ActiveFleet starts from all active vehicles instead of ongoing trips, so
// idle vehicles still show up as OFFLINE at the fallback point.
func (s *LocationService) ActiveFleet(ctx context.Context) ([]model.FleetEntry, error) {
	rows, err := s.fleet.ActiveVehicles(ctx)
	if err != nil {
		return nil, err
	}
	return s.toEntries(rows), nil
}

func (s *LocationService) toEntries(rows []repository.FleetRow) []model.FleetEntry {
	entries := make([]model.FleetEntry, 0, len(rows))
	for _, row := range rows {
		entry := model.FleetEntry{
			VehicleID:    row.VehicleID,
			Registration: row.Registration,
			BusName:      row.Name,
			Type:         row.Type,
			Location:     s.fallback.LatLng(),
			Status:       model.StatusOffline,
			RouteName:    "",
			LastUpdated:  row.UpdatedAt,
		}
		if row.Location != nil {
			entry.Location = row.Location.LatLng()
		}
		if row.Status != nil {
			entry.Status = *row.Status
		}
		if row.RouteName != nil {
			entry.RouteName = *row.RouteName
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *LocationService) mirrorToCache(ctx context.Context, vehicleID string, point model.GeoPoint) {
	if s.cache == nil {
		return
	}
	// Drop the cached snapshot so polls after this update see fresh data,
	// and keep the geo set in step for radius queries.
	s.cache.Del(ctx, snapshotCacheKey)
	err := s.cache.GeoAdd(ctx, geoSetKey, &redis.GeoLocation{
		Name:      vehicleID,
		Longitude: point.Lon,
		Latitude:  point.Lat,
	}).Err()
	if err != nil {
		logger.Warn("redis_geoadd_failed", "Failed to mirror location to Redis", "", "", err.Error())
	}
}
