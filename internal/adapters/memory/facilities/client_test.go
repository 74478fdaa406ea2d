package facilities_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memfacilities "github.com/safarino/trip-planner-core/internal/adapters/memory/facilities"
	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/geo"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

func TestResolveRegion_AliasesAndSubstring(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()

	tests := []struct {
		query string
		want  domain.RegionID
	}{
		{"esfahan", "2"},
		{"اصفهان", "2"},
		{"Isfahan", "2"},
		{"  Shiraz  ", "3"},
		{"TEHRAN", "1"},
		{"trip to yazd please", "6"},
		{"bandarabbas", "12"},
	}
	for _, tc := range tests {
		r, err := c.ResolveRegion(ctx, tc.query)
		if err != nil {
			t.Fatalf("ResolveRegion(%q): %v", tc.query, err)
		}
		if r.ID != tc.want {
			t.Fatalf("ResolveRegion(%q) = %s, want %s", tc.query, r.ID, tc.want)
		}
	}
}

// A query mentioning two cities must resolve to the same region on every
// call: the substring fallback walks the alias table in declaration order.
func TestResolveRegion_AmbiguousQueryIsDeterministic(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		r, err := c.ResolveRegion(ctx, "tehran or shiraz")
		if err != nil {
			t.Fatalf("ResolveRegion: %v", err)
		}
		if r.ID != "1" {
			t.Fatalf("run %d resolved to region %s, want 1 (earlier alias entry)", i, r.ID)
		}
	}
}

func TestResolveRegion_UnknownDestination(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	for _, q := range []string{"Paris", "", "   "} {
		_, err := c.ResolveRegion(context.Background(), q)
		if !errors.Is(err, portfacilities.ErrRegionNotFound) {
			t.Fatalf("ResolveRegion(%q) err = %v, want ErrRegionNotFound", q, err)
		}
	}
}

func TestCostEstimate_DaysAndUnknown(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()
	start := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	// Hotel 3001 costs 10,000,000 per night.
	est, err := c.CostEstimate(ctx, 3001, start, end)
	if err != nil {
		t.Fatalf("CostEstimate: %v", err)
	}
	if est.Amount != 30000000 {
		t.Fatalf("amount = %d, want 30000000", est.Amount)
	}

	// Sub-day range still charges one day.
	est, _ = c.CostEstimate(ctx, 3101, start, start.Add(2*time.Hour))
	if est.Amount != 700000 {
		t.Fatalf("sub-day amount = %d, want 700000", est.Amount)
	}

	// Unknown id: zero estimate, no error.
	est, err = c.CostEstimate(ctx, 999999, start, end)
	if err != nil || est.Amount != 0 {
		t.Fatalf("unknown facility: amount=%d err=%v", est.Amount, err)
	}
}

func TestTravelInfo_KnownAndFallback(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()

	info, err := c.TravelInfo(ctx, 1001, 1002)
	if err != nil {
		t.Fatalf("TravelInfo: %v", err)
	}
	if info.Mode != geo.ModeTaxi {
		t.Fatalf("mode = %s, want TAXI", info.Mode)
	}
	if info.DistanceKm < 6.0 || info.DistanceKm > 6.5 {
		t.Fatalf("distance = %v, want ~6.2", info.DistanceKm)
	}

	fb, err := c.TravelInfo(ctx, 1001, 424242)
	if err != nil {
		t.Fatalf("TravelInfo fallback: %v", err)
	}
	if fb.TravelEstimate != geo.FallbackTravel() {
		t.Fatalf("fallback = %+v", fb.TravelEstimate)
	}
}

func TestFindFacilitiesInArea_RadiusAndType(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()

	// Central Shiraz; Persepolis (3202) is ~45 km out and must be excluded.
	criteria := portfacilities.SearchCriteria{
		Center:   geo.Point{Latitude: 29.62, Longitude: 52.53},
		RadiusKm: 10,
	}
	fs, err := c.FindFacilitiesInArea(ctx, criteria)
	if err != nil {
		t.Fatalf("FindFacilitiesInArea: %v", err)
	}
	if len(fs) == 0 {
		t.Fatal("no facilities found in central Shiraz")
	}
	for _, f := range fs {
		if f.ID == 3202 {
			t.Fatal("Persepolis returned despite 10 km radius")
		}
		if f.RegionID != "3" {
			t.Fatalf("facility %d from region %s inside Shiraz radius", f.ID, f.RegionID)
		}
	}

	criteria.Type = domain.FacilityTypeHotel
	hotels, _ := c.FindFacilitiesInArea(ctx, criteria)
	for _, f := range hotels {
		if f.Type != domain.FacilityTypeHotel {
			t.Fatalf("type filter leaked %s", f.Type)
		}
	}
	if len(hotels) != 3 {
		t.Fatalf("hotels = %d, want 3", len(hotels))
	}
}

func TestHotelsAndRestaurantsInRegion(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	ctx := context.Background()

	hotels, _ := c.HotelsInRegion(ctx, "3")
	if len(hotels) != 3 {
		t.Fatalf("Shiraz hotels = %d, want 3", len(hotels))
	}
	rests, _ := c.RestaurantsInRegion(ctx, "3")
	if len(rests) != 2 {
		t.Fatalf("Shiraz restaurants = %d, want 2", len(rests))
	}
	none, _ := c.HotelsInRegion(ctx, "14")
	if len(none) != 0 {
		t.Fatalf("Qom hotels = %d, want 0", len(none))
	}
}

func TestFacilityByPlaceID(t *testing.T) {
	t.Parallel()

	c := memfacilities.NewClient()
	f, ok, err := c.FacilityByPlaceID(context.Background(), "حافظیه", "3")
	if err != nil || !ok {
		t.Fatalf("FacilityByPlaceID: ok=%v err=%v", ok, err)
	}
	if f.ID != 3201 {
		t.Fatalf("id = %d, want 3201", f.ID)
	}

	_, ok, _ = c.FacilityByPlaceID(context.Background(), "حافظیه", "1")
	if ok {
		t.Fatal("place resolved in wrong region")
	}
}
