package model

import "fmt"

// GeoPoint is stored in [longitude, latitude] order throughout the service,
// matching the column layout. Reporting boundaries must go through LatLng so
// the axis order is translated exactly once.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PointFromPair validates a raw [lon, lat] pair from a request body.
func PointFromPair(pair []float64) (GeoPoint, error) {
	if len(pair) != 2 {
		return GeoPoint{}, fmt.Errorf("%w: point must be [longitude, latitude]", ErrInvalidInput)
	}
	p := GeoPoint{Lon: pair[0], Lat: pair[1]}
	if p.Lon < -180 || p.Lon > 180 {
		return GeoPoint{}, fmt.Errorf("%w: longitude %v out of range", ErrInvalidInput, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return GeoPoint{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidInput, p.Lat)
	}
	return p, nil
}

func (p GeoPoint) LatLng() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lon}
}
