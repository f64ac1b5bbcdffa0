package model

import "testing"

func TestTripStatusTransitions(t *testing.T) {
	all := []TripStatus{TripPending, TripOngoing, TripCompleted, TripCancelled}

	legal := map[TripStatus][]TripStatus{
		TripPending: {TripOngoing, TripCancelled},
		TripOngoing: {TripCompleted, TripCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatusesAllowNoExit(t *testing.T) {
	for _, terminal := range []TripStatus{TripCompleted, TripCancelled} {
		if !terminal.Terminal() {
			t.Errorf("%s should be terminal", terminal)
		}
		for _, to := range []TripStatus{TripPending, TripOngoing, TripCompleted, TripCancelled} {
			if CanTransition(terminal, to) {
				t.Errorf("transition out of terminal %s to %s allowed", terminal, to)
			}
		}
	}
}

func TestTripStatusValid(t *testing.T) {
	for _, s := range []TripStatus{TripPending, TripOngoing, TripCompleted, TripCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TripStatus("PAUSED").Valid() {
		t.Error("PAUSED should not be a valid trip status")
	}
	if TripStatus(StatusOffline).Valid() {
		t.Error("OFFLINE is a fleet view status, not a trip status")
	}
}
