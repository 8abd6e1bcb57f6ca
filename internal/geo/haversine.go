package geo

import (
	"math"

	"load-route-service/internal/domain"
)

const (
	// Mean Earth radius of the spherical model.
	DefaultEarthRadiusMeters = 6371000.0

	metersPerMile    = 1609.344
	degreesToRadians = math.Pi / 180
)

// Haversine computes great-circle distances on a sphere of the given radius.
// The zero value uses DefaultEarthRadiusMeters.
type Haversine struct {
	RadiusMeters float64
}

// Miles returns the great-circle distance between a and b in statute miles.
func (h Haversine) Miles(a, b domain.Coordinate) float64 {
	radius := h.RadiusMeters
	if radius <= 0 {
		radius = DefaultEarthRadiusMeters
	}

	phi1 := a.Lat * degreesToRadians
	phi2 := b.Lat * degreesToRadians
	dPhi := (b.Lat - a.Lat) * degreesToRadians
	dLambda := (b.Lon - a.Lon) * degreesToRadians

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	x := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// Rounding can push x just outside [0, 1] near antipodes.
	x = min(1, max(0, x))
	c := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))

	return radius * c / metersPerMile
}

// DistanceMiles is Haversine.Miles on the default Earth radius.
func DistanceMiles(a, b domain.Coordinate) float64 {
	return Haversine{}.Miles(a, b)
}
