// Package geo holds the pure geospatial and transport-cost functions used by
// the facility resolver and the routing stages. Everything here is
// deterministic and side-effect free.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm returns the great-circle distance between two points in
// kilometers. Symmetric in its arguments.
func DistanceKm(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

type TransportMode string

const (
	ModeWalking TransportMode = "WALKING"
	ModeTaxi    TransportMode = "TAXI"
	ModeDriving TransportMode = "DRIVING"
)

// TravelEstimate is a transport-mode choice with its time and cost estimate.
type TravelEstimate struct {
	DistanceKm      float64
	DurationMinutes int
	Mode            TransportMode

	// Cost is in rials. Walking is free.
	Cost int64
}

// Transport tier boundaries and rates.
const (
	walkingMaxKm = 3.0
	taxiMaxKm    = 10.0

	walkingMinPerKm = 12 // ~5 km/h
	taxiMinPerKm    = 3  // ~20 km/h in city traffic
	drivingMinPerKm = 2  // ~30 km/h average

	taxiBaseFare  = 100000
	taxiRialPerKm = 30000
	carRialPerKm  = 15000

	minDurationMinutes = 5
)

// EstimateTravel classifies transport by distance tier and derives duration
// and cost. Duration never drops below five minutes.
func EstimateTravel(distanceKm float64) TravelEstimate {
	est := TravelEstimate{DistanceKm: round2(distanceKm)}

	switch {
	case distanceKm <= walkingMaxKm:
		est.Mode = ModeWalking
		est.DurationMinutes = int(distanceKm * walkingMinPerKm)
		est.Cost = 0
	case distanceKm <= taxiMaxKm:
		est.Mode = ModeTaxi
		est.DurationMinutes = int(distanceKm * taxiMinPerKm)
		est.Cost = taxiBaseFare + int64(math.Round(distanceKm))*taxiRialPerKm
	default:
		est.Mode = ModeDriving
		est.DurationMinutes = int(distanceKm * drivingMinPerKm)
		est.Cost = int64(distanceKm * carRialPerKm)
	}

	if est.DurationMinutes < minDurationMinutes {
		est.DurationMinutes = minDurationMinutes
	}
	return est
}

// FallbackTravel is the estimate used when either endpoint of a leg is not in
// the catalog: a nominal taxi hop instead of a hard failure.
func FallbackTravel() TravelEstimate {
	return TravelEstimate{
		DistanceKm:      5.0,
		DurationMinutes: 15,
		Mode:            ModeTaxi,
		Cost:            200000,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
