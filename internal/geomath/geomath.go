// Package geomath provides great-circle distance and travel-time heuristics.
// All functions are pure; they back the deterministic fallbacks used when no
// live travel-time provider is configured.
package geomath

import "math"

const earthRadiusKm = 6371.0

// Average speeds for the heuristic travel-time estimates, in km/h. Transit
// includes transfer overhead.
const (
	walkingKmh = 4.5
	transitKmh = 18.0
	drivingKmh = 32.0
)

// drivingBaseMin covers parking, signals, and trip start/end overhead.
const drivingBaseMin = 5.0

// HaversineKm returns the great-circle distance in kilometers between two
// WGS84 coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DrivingMinutes estimates urban driving time for a distance in kilometers.
func DrivingMinutes(km float64) int {
	return int(math.Round(drivingBaseMin + km/drivingKmh*60))
}

// WalkingMinutes estimates walking time for a distance in kilometers.
func WalkingMinutes(km float64) int {
	return int(math.Round(km / walkingKmh * 60))
}

// TransitMinutes estimates public transport time for a distance in kilometers.
func TransitMinutes(km float64) int {
	return int(math.Round(km / transitKmh * 60))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
