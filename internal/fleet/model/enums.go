package model

type TripStatus string

const (
	TripPending   TripStatus = "PENDING"
	TripOngoing   TripStatus = "ONGOING"
	TripCompleted TripStatus = "COMPLETED"
	TripCancelled TripStatus = "CANCELLED"
)

// StatusOffline is not a trip status; fleet views report it for active
// vehicles that have no ongoing trip.
const StatusOffline = "OFFLINE"

type VehicleType string

const (
	VehicleBus     VehicleType = "BUS"
	VehicleMinibus VehicleType = "MINIBUS"
)

var transitions = map[TripStatus][]TripStatus{
	TripPending: {TripOngoing, TripCancelled},
	TripOngoing: {TripCompleted, TripCancelled},
}

// CanTransition reports whether moving from one trip status to another is legal.
// COMPLETED and CANCELLED are terminal.
func CanTransition(from, to TripStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripPending, TripOngoing, TripCompleted, TripCancelled:
		return true
	}
	return false
}

func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}
