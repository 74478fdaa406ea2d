package geo_test

import (
	"math"
	"testing"

	"github.com/safarino/trip-planner-core/internal/geo"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2]geo.Point{
		{{Latitude: 35.7796, Longitude: 51.4108}, {Latitude: 35.7219, Longitude: 51.3347}},
		{{Latitude: 32.6539, Longitude: 51.6660}, {Latitude: 29.6314, Longitude: 52.5279}},
		{{Latitude: 0, Longitude: 0}, {Latitude: -45.5, Longitude: 170.2}},
		{{Latitude: 89.9, Longitude: 10}, {Latitude: -89.9, Longitude: -170}},
	}
	for _, p := range pairs {
		ab := geo.DistanceKm(p[0], p[1])
		ba := geo.DistanceKm(p[1], p[0])
		if ab != ba {
			t.Fatalf("distance not symmetric: %v vs %v for %+v", ab, ba, p)
		}
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	p := geo.Point{Latitude: 35.6892, Longitude: 51.3890}
	if d := geo.DistanceKm(p, p); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

// Esteghlal hotel to Azadi hotel in Tehran is roughly 6-6.5 km and should be
// a taxi ride priced at base fare plus the per-km rate.
func TestDistanceKm_TehranHotels(t *testing.T) {
	t.Parallel()

	d := geo.DistanceKm(
		geo.Point{Latitude: 35.7796, Longitude: 51.4108},
		geo.Point{Latitude: 35.7219, Longitude: 51.3347},
	)
	if d < 6.0 || d > 6.5 {
		t.Fatalf("distance = %v, want within [6.0, 6.5]", d)
	}

	est := geo.EstimateTravel(d)
	if est.Mode != geo.ModeTaxi {
		t.Fatalf("mode = %s, want TAXI", est.Mode)
	}
	wantCost := int64(100000) + int64(math.Round(d))*30000
	if est.Cost != wantCost {
		t.Fatalf("cost = %d, want %d", est.Cost, wantCost)
	}
}

func TestEstimateTravel_Tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		km       float64
		mode     geo.TransportMode
		duration int
		cost     int64
	}{
		{"short walk floors duration", 0.2, geo.ModeWalking, 5, 0},
		{"walking", 2.5, geo.ModeWalking, 30, 0},
		{"walking boundary", 3.0, geo.ModeWalking, 36, 0},
		{"taxi", 8.0, geo.ModeTaxi, 24, 100000 + 8*30000},
		{"taxi boundary", 10.0, geo.ModeTaxi, 30, 100000 + 10*30000},
		{"taxi floors duration", 3.1, geo.ModeTaxi, 9, 100000 + 3*30000},
		{"taxi rounds distance up", 6.8, geo.ModeTaxi, 20, 100000 + 7*30000},
		{"taxi rounds distance down", 4.4, geo.ModeTaxi, 13, 100000 + 4*30000},
		{"driving", 20.0, geo.ModeDriving, 40, 20 * 15000},
		{"driving long", 150.0, geo.ModeDriving, 300, 150 * 15000},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			est := geo.EstimateTravel(tc.km)
			if est.Mode != tc.mode {
				t.Fatalf("mode = %s, want %s", est.Mode, tc.mode)
			}
			if est.DurationMinutes != tc.duration {
				t.Fatalf("duration = %d, want %d", est.DurationMinutes, tc.duration)
			}
			if est.Cost != tc.cost {
				t.Fatalf("cost = %d, want %d", est.Cost, tc.cost)
			}
		})
	}
}

func TestEstimateTravel_DurationNeverBelowFloor(t *testing.T) {
	t.Parallel()

	for km := 0.0; km < 25; km += 0.37 {
		if est := geo.EstimateTravel(km); est.DurationMinutes < 5 {
			t.Fatalf("duration %d below floor at %v km", est.DurationMinutes, km)
		}
	}
}

func TestEstimateTravel_MonotonicModeByDistance(t *testing.T) {
	t.Parallel()

	rank := map[geo.TransportMode]int{geo.ModeWalking: 0, geo.ModeTaxi: 1, geo.ModeDriving: 2}
	prev := 0
	for km := 0.5; km < 30; km += 0.5 {
		r := rank[geo.EstimateTravel(km).Mode]
		if r < prev {
			t.Fatalf("mode rank decreased at %v km", km)
		}
		prev = r
	}
}

func TestFallbackTravel(t *testing.T) {
	t.Parallel()

	fb := geo.FallbackTravel()
	if fb.Mode != geo.ModeTaxi || fb.DistanceKm != 5.0 || fb.DurationMinutes != 15 || fb.Cost != 200000 {
		t.Fatalf("fallback = %+v", fb)
	}
	if math.IsNaN(fb.DistanceKm) {
		t.Fatal("NaN distance")
	}
}
