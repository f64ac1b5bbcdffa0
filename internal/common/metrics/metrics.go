package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	OngoingTrips prometheus.Gauge

	TripsStarted   prometheus.Counter
	TripsCompleted prometheus.Counter
	TripsCancelled prometheus.Counter

	LocationUpdates    prometheus.Counter
	LocationUpdateErrs prometheus.Counter

	SnapshotRequests *prometheus.CounterVec // source label: cache|db
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		OngoingTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transport_ongoing_trips",
			Help: "Number of trips currently in ONGOING status.",
		}),
		TripsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transport_trips_started_total",
			Help: "Total trips started.",
		}),
		TripsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transport_trips_completed_total",
			Help: "Total trips completed.",
		}),
		TripsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transport_trips_cancelled_total",
			Help: "Total trips cancelled.",
		}),
		LocationUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transport_location_updates_total",
			Help: "Total accepted location reports.",
		}),
		LocationUpdateErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transport_location_update_errors_total",
			Help: "Total rejected location reports.",
		}),
		SnapshotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_snapshot_requests_total",
			Help: "Fleet snapshot reads, by source.",
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.OngoingTrips,
		c.TripsStarted, c.TripsCompleted, c.TripsCancelled,
		c.LocationUpdates, c.LocationUpdateErrs,
		c.SnapshotRequests,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
