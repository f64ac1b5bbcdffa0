package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus-transport/internal/fleet/model"
	"campus-transport/internal/fleet/repository"
	"campus-transport/internal/fleet/rmq"
)

// memStore is an in-memory stand-in for the Postgres repositories, mirroring
// their query semantics closely enough for lifecycle tests.
type memStore struct {
	mu        sync.Mutex
	seq       int
	schedules []model.Schedule
	vehicles  map[string]model.Vehicle
	routes    map[string]string // route id -> name
	trips     map[string]*model.Trip
}

func newMemStore() *memStore {
	return &memStore{
		vehicles: make(map[string]model.Vehicle),
		routes:   make(map[string]string),
		trips:    make(map[string]*model.Trip),
	}
}

func (m *memStore) addVehicle(v model.Vehicle) { m.vehicles[v.ID] = v }

func (m *memStore) addRoute(id, name string) { m.routes[id] = name }

func (m *memStore) addSchedule(s model.Schedule) { m.schedules = append(m.schedules, s) }

func (m *memStore) FindForVehicleDay(_ context.Context, vehicleID string, weekday int) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.schedules {
		if s.VehicleID != vehicleID || !s.Active {
			continue
		}
		for _, d := range s.Days {
			if d == weekday {
				found := s
				return &found, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no schedule for vehicle %s on weekday %d", model.ErrNotFound, vehicleID, weekday)
}

func (m *memStore) FindOrCreate(_ context.Context, scheduleID string, day time.Time) (*model.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.ScheduleID == scheduleID && t.TripDate.Equal(day) {
			cp := *t
			return &cp, nil
		}
	}
	m.seq++
	trip := &model.Trip{
		ID:         fmt.Sprintf("trip-%d", m.seq),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		ScheduleID: scheduleID,
		TripDate:   day,
		Status:     model.TripPending,
	}
	m.trips[trip.ID] = trip
	cp := *trip
	return &cp, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*model.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, fmt.Errorf("%w: trip %s", model.ErrNotFound, id)
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) FindActiveByVehicle(_ context.Context, vehicleID string, statuses []model.TripStatus) (*model.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var candidates []*model.Trip
	for _, t := range m.trips {
		sched := m.scheduleByID(t.ScheduleID)
		if sched == nil || sched.VehicleID != vehicleID {
			continue
		}
		for _, st := range statuses {
			if t.Status == st {
				candidates = append(candidates, t)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no active trip for vehicle %s", model.ErrNotFound, vehicleID)
	}
	// Newest wins, matching the repository's ORDER BY created_at DESC.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID > candidates[j].ID
	})
	cp := *candidates[0]
	return &cp, nil
}

func (m *memStore) Save(_ context.Context, trip *model.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return fmt.Errorf("%w: trip %s", model.ErrNotFound, trip.ID)
	}
	cp := *trip
	cp.UpdatedAt = time.Now()
	m.trips[trip.ID] = &cp
	return nil
}

func (m *memStore) CountOngoing(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.trips {
		if t.Status == model.TripOngoing {
			n++
		}
	}
	return n, nil
}

func (m *memStore) OngoingTrips(_ context.Context) ([]repository.FleetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []repository.FleetRow
	for _, t := range m.trips {
		if t.Status != model.TripOngoing {
			continue
		}
		sched := m.scheduleByID(t.ScheduleID)
		if sched == nil {
			continue
		}
		rows = append(rows, m.fleetRow(t, sched))
	}
	return rows, nil
}

func (m *memStore) ActiveVehicles(_ context.Context) ([]repository.FleetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for id, v := range m.vehicles {
		if v.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var rows []repository.FleetRow
	for _, id := range ids {
		v := m.vehicles[id]
		var row *repository.FleetRow
		for _, t := range m.trips {
			sched := m.scheduleByID(t.ScheduleID)
			if sched == nil || sched.VehicleID != id || t.Status != model.TripOngoing {
				continue
			}
			r := m.fleetRow(t, sched)
			row = &r
			break
		}
		if row == nil {
			rows = append(rows, repository.FleetRow{
				VehicleID:    v.ID,
				Registration: v.Registration,
				Name:         v.Name,
				Type:         v.Type,
				UpdatedAt:    v.UpdatedAt,
			})
			continue
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (m *memStore) fleetRow(t *model.Trip, sched *model.Schedule) repository.FleetRow {
	v := m.vehicles[sched.VehicleID]
	status := string(t.Status)
	routeName := m.routes[sched.RouteID]
	return repository.FleetRow{
		VehicleID:    v.ID,
		Registration: v.Registration,
		Name:         v.Name,
		Type:         v.Type,
		Location:     t.LiveLocation,
		Status:       &status,
		RouteName:    &routeName,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *memStore) scheduleByID(id string) *model.Schedule {
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			return &m.schedules[i]
		}
	}
	return nil
}

type fakePublisher struct {
	mu         sync.Mutex
	statusMsgs []rmq.TripStatusMessage
	locMsgs    []rmq.LocationMessage
}

func (p *fakePublisher) PublishTripStatus(_ context.Context, msg rmq.TripStatusMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusMsgs = append(p.statusMsgs, msg)
	return nil
}

func (p *fakePublisher) PublishLocation(_ context.Context, msg rmq.LocationMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locMsgs = append(p.locMsgs, msg)
	return nil
}

// seedVehicleWithSchedule sets up a vehicle on a route with a schedule that
// recurs every day of the week, so tests are independent of the wall clock.
func seedVehicleWithSchedule(store *memStore, vehicleID string) {
	store.addVehicle(model.Vehicle{
		ID:           vehicleID,
		Registration: "CTG-HA-11-2233",
		Name:         "Shuttle 1",
		Capacity:     40,
		Type:         model.VehicleBus,
		Active:       true,
		UpdatedAt:    time.Now(),
	})
	store.addRoute("route-1", "Campus Loop")
	store.addSchedule(model.Schedule{
		ID:            "sched-" + vehicleID,
		RouteID:       "route-1",
		VehicleID:     vehicleID,
		DepartureTime: "08:00",
		Days:          []int{0, 1, 2, 3, 4, 5, 6},
		Active:        true,
	})
}
