package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-transport/internal/common/auth"
	ws "campus-transport/internal/common/websocket"
	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/repository"
	"campus-transport/internal/fleet/service"
)

// emptyStores satisfies the service ports with a fleet that has no schedules,
// trips or vehicles at all.
type emptyStores struct{}

func (emptyStores) FindForVehicleDay(context.Context, string, int) (*model.Schedule, error) {
	return nil, fmt.Errorf("%w: no schedule", model.ErrNotFound)
}

func (emptyStores) FindOrCreate(context.Context, string, time.Time) (*model.Trip, error) {
	return nil, fmt.Errorf("%w: no schedule", model.ErrNotFound)
}

func (emptyStores) GetByID(_ context.Context, id string) (*model.Trip, error) {
	return nil, fmt.Errorf("%w: trip %s", model.ErrNotFound, id)
}

func (emptyStores) FindActiveByVehicle(_ context.Context, vehicleID string, _ []model.TripStatus) (*model.Trip, error) {
	return nil, fmt.Errorf("%w: no active trip for vehicle %s", model.ErrNotFound, vehicleID)
}

func (emptyStores) Save(context.Context, *model.Trip) error { return nil }

func (emptyStores) CountOngoing(context.Context) (int, error) { return 0, nil }

func (emptyStores) OngoingTrips(context.Context) ([]repository.FleetRow, error) { return nil, nil }

func (emptyStores) ActiveVehicles(context.Context) ([]repository.FleetRow, error) { return nil, nil }

func newTestHandler() *FleetHandler {
	stores := emptyStores{}
	resolver := service.NewResolver(stores, stores)
	trips := service.NewTripService(resolver, stores, nil, nil)
	locations := service.NewLocationService(stores, stores, nil, nil, nil,
		model.GeoPoint{Lon: 92.1647, Lat: 22.6125}, time.Second)
	return NewFleetHandler(trips, locations)
}

func TestStartTripRejectsBadBody(t *testing.T) {
	handler := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing vehicle_id", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/start", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.StartTrip(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["error"] != "INVALID_INPUT" {
				t.Errorf("error kind = %q, want INVALID_INPUT", body["error"])
			}
		})
	}
}

func TestEndTripMapsNotFound(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/end", strings.NewReader(`{"vehicle_id":"veh-1"}`))
	rec := httptest.NewRecorder()

	handler.EndTrip(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "NOT_FOUND" {
		t.Errorf("error kind = %q, want NOT_FOUND", body["error"])
	}
}

func TestReportLocationMapsInvalidPoint(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/location",
		strings.NewReader(`{"vehicle_id":"veh-1","point":[200.0,22.5]}`))
	rec := httptest.NewRecorder()

	handler.ReportLocation(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetFleetSnapshotEmptyFleet(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fleet/snapshot", nil)
	rec := httptest.NewRecorder()

	handler.GetFleetSnapshot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []model.FleetEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("response is not a JSON list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty fleet returned %d entries", len(entries))
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	router := NewRouter(newTestHandler(), ws.NewHub())
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/fleet/snapshot")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("without token: status = %d, want 401", resp.StatusCode)
	}

	token, err := auth.GenerateToken("student-1", auth.RoleStudent)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/fleet/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("with token: status = %d, want 200", resp.StatusCode)
	}
}

func TestRouterEnforcesDriverRole(t *testing.T) {
	router := NewRouter(newTestHandler(), ws.NewHub())
	srv := httptest.NewServer(router)
	defer srv.Close()

	token, err := auth.GenerateToken("student-1", auth.RoleStudent)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/trips/start",
		strings.NewReader(`{"vehicle_id":"veh-1"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("student starting a trip: status = %d, want 403", resp.StatusCode)
	}
}
