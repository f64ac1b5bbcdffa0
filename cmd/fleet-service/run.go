package fleet_service

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"campus-transport/internal/common/config"
	"campus-transport/internal/common/logger"
	"campus-transport/internal/common/metrics"
	ws "campus-transport/internal/common/websocket"
	fleethttp "campus-transport/internal/fleet/http"
	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/repository"
	"campus-transport/internal/fleet/rmq"
	"campus-transport/internal/fleet/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Run wires the trip lifecycle and live-location service and blocks serving
// HTTP.
func Run(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, mqClient *rmq.Client, collector *metrics.Collector) {
	logger.SetServiceName("fleet-service")

	scheduleRepo := repository.NewScheduleRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	fleetRepo := repository.NewFleetRepository(pool)

	resolver := service.NewResolver(scheduleRepo, tripRepo)
	trips := service.NewTripService(resolver, tripRepo, mqClient, collector)
	locations := service.NewLocationService(
		tripRepo, fleetRepo, rdb, mqClient, collector,
		model.GeoPoint{Lon: cfg.Fleet.FallbackLon, Lat: cfg.Fleet.FallbackLat},
		time.Duration(cfg.Fleet.SnapshotTTLMs)*time.Millisecond,
	)

	hub := ws.NewHub()
	// Location updates flow through the broker back into the websocket feed,
	// so every fleet-service instance pushes the same stream.
	if err := mqClient.ConsumeLocationUpdates("fleet_feed", func(msg rmq.LocationMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			return
		}
		hub.Broadcast(data)
	}); err != nil {
		logger.Error("consume_location_failed", "Failed to start location consumer", "", "", err.Error())
	}

	handler := fleethttp.NewFleetHandler(trips, locations)
	router := fleethttp.NewRouter(handler, hub)

	addr := fmt.Sprintf(":%d", cfg.Services.FleetServicePort)
	log.Printf("🚌 Fleet Service running on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("fleet service error: %v", err)
	}
}
