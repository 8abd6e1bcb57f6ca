package geo

import (
	"math"
	"testing"

	"load-route-service/internal/domain"
)

func TestHaversineOneDegreeOfLongitudeAtEquator(t *testing.T) {
	got := DistanceMiles(domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 0, Lon: 1})

	// 6371 km * pi / 180 = 111.195 km = 69.093 mi
	if math.Abs(got-69.0933) > 0.001 {
		t.Fatalf("distance = %.4f, want ~69.0933", got)
	}
}

func TestHaversineSymmetricAndZero(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 43.6532, Lon: -79.3832},
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: 34.0522, Lon: -118.2437},
		{Lat: -33.8688, Lon: 151.2093},
	}

	for _, a := range points {
		if d := DistanceMiles(a, a); d != 0 {
			t.Errorf("distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := DistanceMiles(a, b)
			ba := DistanceMiles(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric: %v->%v = %v, reverse = %v", a, b, ab, ba)
			}
		}
	}
}

func TestHaversineRadius(t *testing.T) {
	a := domain.Coordinate{Lat: 40.7128, Lon: -74.0060}
	b := domain.Coordinate{Lat: 34.0522, Lon: -118.2437}

	base := Haversine{}.Miles(a, b)
	doubled := Haversine{RadiusMeters: 2 * DefaultEarthRadiusMeters}.Miles(a, b)
	if math.Abs(doubled-2*base) > 1e-6 {
		t.Fatalf("doubling radius: got %v, want %v", doubled, 2*base)
	}

	// New York to Los Angeles is roughly 2,445 miles on the sphere.
	if base < 2440 || base > 2450 {
		t.Fatalf("NYC-LA = %.1f mi, want ~2445", base)
	}
}

func TestHaversineAntipodalIsHalfCircumference(t *testing.T) {
	want := math.Pi * DefaultEarthRadiusMeters / metersPerMile

	pairs := [][2]domain.Coordinate{
		{{Lat: -86.78, Lon: -179}, {Lat: 86.78, Lon: 1}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: 90, Lon: 0}, {Lat: -90, Lon: 0}},
		{{Lat: 12.5, Lon: -45.25}, {Lat: -12.5, Lon: 134.75}},
	}

	for _, p := range pairs {
		got := DistanceMiles(p[0], p[1])
		if math.IsNaN(got) {
			t.Fatalf("distance(%v, %v) is NaN", p[0], p[1])
		}
		if math.Abs(got-want) > 0.01 {
			t.Errorf("distance(%v, %v) = %.4f, want ~%.4f", p[0], p[1], got, want)
		}
	}

	for lat := -89.0; lat <= 89.0; lat += 0.37 {
		for lon := -179.0; lon < 0; lon += 7.3 {
			a := domain.Coordinate{Lat: lat, Lon: lon}
			b := domain.Coordinate{Lat: -lat, Lon: lon + 180}
			if d := DistanceMiles(a, b); math.IsNaN(d) || math.Abs(d-want) > 0.01 {
				t.Fatalf("distance(%v, %v) = %v, want ~%.4f", a, b, d, want)
			}
		}
	}
}
