package entity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a coordinate falls outside WGS84 bounds.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the coordinate is within [-90,90] x [-180,180].
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Offset returns a new coordinate shifted by the given deltas in degrees.
func (c Coordinate) Offset(dLat, dLon float64) Coordinate {
	return Coordinate{Latitude: c.Latitude + dLat, Longitude: c.Longitude + dLon}
}
