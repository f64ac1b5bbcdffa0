package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-transport/internal/fleet/model"
)

func TestResolveTripCreatesPendingTrip(t *testing.T) {
	store := newMemStore()
	seedVehicleWithSchedule(store, "veh-1")
	resolver := NewResolver(store, store)

	trip, err := resolver.ResolveTrip(context.Background(), "veh-1", time.Now())
	if err != nil {
		t.Fatalf("ResolveTrip failed: %v", err)
	}

	if trip.Status != model.TripPending {
		t.Errorf("new trip status = %s, want PENDING", trip.Status)
	}
	if trip.ScheduleID != "sched-veh-1" {
		t.Errorf("trip schedule = %s, want sched-veh-1", trip.ScheduleID)
	}
	if h, m, s := trip.TripDate.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("trip date not truncated to day: %v", trip.TripDate)
	}
}

func TestResolveTripIsStable(t *testing.T) {
	store := newMemStore()
	seedVehicleWithSchedule(store, "veh-1")
	resolver := NewResolver(store, store)

	first, err := resolver.ResolveTrip(context.Background(), "veh-1", time.Now())
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := resolver.ResolveTrip(context.Background(), "veh-1", time.Now())
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("resolving twice created distinct trips: %s vs %s", first.ID, second.ID)
	}
	if len(store.trips) != 1 {
		t.Errorf("store holds %d trips, want 1", len(store.trips))
	}
}

func TestResolveTripNoScheduleIsDayOff(t *testing.T) {
	store := newMemStore()
	store.addVehicle(model.Vehicle{ID: "veh-2", Active: true})
	// Schedule never matches: empty day set.
	store.addSchedule(model.Schedule{
		ID:        "sched-empty",
		VehicleID: "veh-2",
		Days:      []int{},
		Active:    true,
	})
	resolver := NewResolver(store, store)

	_, err := resolver.ResolveTrip(context.Background(), "veh-2", time.Now())
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(store.trips) != 0 {
		t.Errorf("day off must not create a trip, store holds %d", len(store.trips))
	}
}

func TestResolveTripInactiveScheduleIgnored(t *testing.T) {
	store := newMemStore()
	seedVehicleWithSchedule(store, "veh-1")
	store.schedules[0].Active = false
	resolver := NewResolver(store, store)

	_, err := resolver.ResolveTrip(context.Background(), "veh-1", time.Now())
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for inactive schedule", err)
	}
}
