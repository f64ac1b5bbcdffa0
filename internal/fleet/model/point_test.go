package model

import (
	"errors"
	"testing"
	"time"
)

func TestPointFromPair(t *testing.T) {
	p, err := PointFromPair([]float64{92.1647, 22.6125})
	if err != nil {
		t.Fatalf("PointFromPair failed: %v", err)
	}
	if p.Lon != 92.1647 || p.Lat != 22.6125 {
		t.Errorf("point = %+v, want lon=92.1647 lat=22.6125", p)
	}

	ll := p.LatLng()
	if ll.Lat != 22.6125 || ll.Lng != 92.1647 {
		t.Errorf("LatLng() = %+v, axis order swapped", ll)
	}
}

func TestPointFromPairRejectsBadInput(t *testing.T) {
	bad := [][]float64{
		nil,
		{},
		{92.0},
		{92.0, 22.5, 0},
		{180.01, 0},
		{-180.01, 0},
		{0, 90.01},
		{0, -90.01},
	}
	for _, pair := range bad {
		if _, err := PointFromPair(pair); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("PointFromPair(%v) err = %v, want ErrInvalidInput", pair, err)
		}
	}
}

func TestPointFromPairAcceptsBoundaryValues(t *testing.T) {
	for _, pair := range [][]float64{{180, 90}, {-180, -90}, {0, 0}} {
		if _, err := PointFromPair(pair); err != nil {
			t.Errorf("PointFromPair(%v) failed: %v", pair, err)
		}
	}
}

func TestScheduleAppliesOn(t *testing.T) {
	// 2026-08-25 is a Tuesday.
	tuesday := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	sched := Schedule{Days: []int{2}, Active: true}
	if !sched.AppliesOn(tuesday) {
		t.Error("schedule for weekday 2 should apply on a Tuesday")
	}
	if sched.AppliesOn(tuesday.AddDate(0, 0, 1)) {
		t.Error("schedule for weekday 2 should not apply on a Wednesday")
	}

	sched.Active = false
	if sched.AppliesOn(tuesday) {
		t.Error("inactive schedule should never apply")
	}

	sunday := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	weekend := Schedule{Days: []int{0, 6}, Active: true}
	if !weekend.AppliesOn(sunday) {
		t.Error("weekday 0 must mean Sunday")
	}
}
