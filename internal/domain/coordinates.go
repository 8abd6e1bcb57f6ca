package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude) in degrees.
//
// Coordinate is comparable and is used directly as a graph key, so two
// coordinates name the same location only when both components compare
// equal. NaN components therefore never match anything, and +0 equals -0.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Report whether both components are finite and inside the WGS 84 ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Quantize rounds both components to the given number of decimal places.
// A non-positive precision returns c unchanged (exact-match keys).
func (c Coordinate) Quantize(places int) Coordinate {
	if places <= 0 {
		return c
	}
	scale := math.Pow10(places)
	return Coordinate{
		Lat: math.Round(c.Lat*scale) / scale,
		Lon: math.Round(c.Lon*scale) / scale,
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g,%g)", c.Lat, c.Lon)
}
