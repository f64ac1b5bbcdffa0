package rmq

import (
	"time"

	"campus-transport/internal/fleet/model"
)

type TripStatusMessage struct {
	Type      string    `json:"type"`
	TripID    string    `json:"trip_id"`
	VehicleID string    `json:"vehicle_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type LocationMessage struct {
	Type         string       `json:"type"`
	TripID       string       `json:"trip_id"`
	VehicleID    string       `json:"vehicle_id"`
	Location     model.LatLng `json:"location"`
	DriverStatus *string      `json:"driver_status,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}
