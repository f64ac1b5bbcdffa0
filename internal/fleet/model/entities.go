package model

import "time"

type Vehicle struct {
	ID           string      `json:"id" db:"id"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	Registration string      `json:"registration" db:"registration"`
	Name         string      `json:"name" db:"name"`
	Capacity     int         `json:"capacity" db:"capacity"`
	Type         VehicleType `json:"type" db:"type"`
	DriverID     *string     `json:"driver_id,omitempty" db:"driver_id"`
	Active       bool        `json:"active" db:"active"`
}

type Route struct {
	ID        string      `json:"id" db:"id"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
	Name      string      `json:"name" db:"name"`
	Stops     []RouteStop `json:"stops,omitempty"`
}

type Stop struct {
	ID          string    `json:"id" db:"id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Name        string    `json:"name" db:"name"`
	Location    GeoPoint  `json:"location"`
	Description *string   `json:"description,omitempty" db:"description"`
}

// RouteStop binds a stop into a route's ordered sequence. Position is a dense
// 1..N integer.
type RouteStop struct {
	StopID   string `json:"stop_id" db:"stop_id"`
	StopName string `json:"stop_name" db:"stop_name"`
	Position int    `json:"position" db:"position"`
}

type Schedule struct {
	ID            string    `json:"id" db:"id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	RouteID       string    `json:"route_id" db:"route_id"`
	VehicleID     string    `json:"vehicle_id" db:"vehicle_id"`
	DepartureTime string    `json:"departure_time" db:"departure_time"` // HH:MM
	Days          []int     `json:"days" db:"days"`                     // 0=Sunday .. 6=Saturday
	Active        bool      `json:"active" db:"active"`
}

// AppliesOn reports whether the schedule recurs on the given calendar date.
func (s Schedule) AppliesOn(date time.Time) bool {
	if !s.Active {
		return false
	}
	weekday := int(date.Weekday())
	for _, d := range s.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

type Trip struct {
	ID           string     `json:"id" db:"id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	ScheduleID   string     `json:"schedule_id" db:"schedule_id"`
	TripDate     time.Time  `json:"trip_date" db:"trip_date"`
	Status       TripStatus `json:"status" db:"status"`
	LiveLocation *GeoPoint  `json:"live_location,omitempty"`
	DriverStatus *string    `json:"driver_status,omitempty" db:"driver_status"`
	StartedAt    *time.Time `json:"started_at,omitempty" db:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

// FleetEntry is one row of the fleet snapshot / active fleet views, already
// joined through schedule to vehicle and route.
type FleetEntry struct {
	VehicleID    string      `json:"vehicle_id"`
	Registration string      `json:"registration"`
	BusName      string      `json:"bus_name"`
	Type         VehicleType `json:"type"`
	Location     LatLng      `json:"location"`
	Status       string      `json:"status"`
	RouteName    string      `json:"route_name"`
	LastUpdated  time.Time   `json:"last_updated"`
}
