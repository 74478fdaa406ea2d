package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	memfacilities "github.com/safarino/trip-planner-core/internal/adapters/memory/facilities"
	memrecommend "github.com/safarino/trip-planner-core/internal/adapters/memory/recommend"
	memtriprepo "github.com/safarino/trip-planner-core/internal/adapters/memory/triprepo"
	memweather "github.com/safarino/trip-planner-core/internal/adapters/memory/weather"
	memwiki "github.com/safarino/trip-planner-core/internal/adapters/memory/wiki"
	"github.com/safarino/trip-planner-core/internal/app/planner"
	"github.com/safarino/trip-planner-core/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestOrchestrator(t *testing.T) (*planner.Orchestrator, *memtriprepo.Repo, *memweather.Client) {
	t.Helper()
	weather := memweather.NewClient()
	trips := memtriprepo.NewRepo()
	o := planner.NewOrchestrator(
		memfacilities.NewClient(),
		weather,
		memwiki.NewClient(),
		memrecommend.NewClient(),
		trips,
		fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		zap.NewNop(),
	)
	return o, trips, weather
}

func springRequirements(budget *int64) domain.TripRequirements {
	return domain.TripRequirements{
		UserID:         "user-1",
		Destination:    "Shiraz",
		Start:          time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC),
		Budget:         budget,
		TravelersCount: 2,
		Preferences: []domain.PreferenceConstraint{
			{Tag: "history"},
			{Tag: "food"},
		},
	}
}

func rials(v int64) *int64 { return &v }

func TestPlanInitial_ShirazSpring(t *testing.T) {
	t.Parallel()
	o, trips, _ := newTestOrchestrator(t)

	res, err := o.PlanInitial(context.Background(), springRequirements(rials(40_000_000)))
	if err != nil {
		t.Fatalf("PlanInitial() error = %v", err)
	}
	trip := res.Trip

	if trip.Status != domain.TripStatusPlanned {
		t.Errorf("status = %s, want %s", trip.Status, domain.TripStatusPlanned)
	}
	if len(trip.DailyPlans) == 0 {
		t.Fatal("expected scheduled daily plans")
	}
	if trip.Hotel == nil {
		t.Fatal("expected a hotel schedule")
	}
	// Highest-rated hotel in the region fits a 40M budget.
	if trip.Hotel.FacilityID != 3001 {
		t.Errorf("hotel = %d, want 3001", trip.Hotel.FacilityID)
	}
	if trip.Hotel.RoomsCount != 1 {
		t.Errorf("rooms = %d, want 1 for two travelers", trip.Hotel.RoomsCount)
	}
	if got := trip.TotalCost(); got > 40_000_000 {
		t.Errorf("total cost %d exceeds budget", got)
	}
	for _, v := range res.Violations {
		if v.Kind == domain.ViolationBudget {
			t.Errorf("unexpected budget violation: %s", v.Message)
		}
	}
	assertWellFormedSchedule(t, trip)

	stored, err := trips.GetByID(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(stored.DailyPlans) != len(trip.DailyPlans) {
		t.Errorf("stored %d plans, result has %d", len(stored.DailyPlans), len(trip.DailyPlans))
	}
}

func TestPlanInitial_TightBudgetDowngradesHotel(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t)

	res, err := o.PlanInitial(context.Background(), springRequirements(rials(10_000_000)))
	if err != nil {
		t.Fatalf("PlanInitial() error = %v", err)
	}

	if res.Trip.Hotel == nil {
		t.Fatal("expected a hotel schedule")
	}
	// The 10M ceiling forces the economy hotel.
	if res.Trip.Hotel.FacilityID != 3003 {
		t.Errorf("hotel = %d, want economy hotel 3003", res.Trip.Hotel.FacilityID)
	}
	if got := res.Trip.TotalCost(); got > 10_000_000 {
		t.Errorf("total cost %d exceeds budget", got)
	}

	budgetViolations := 0
	for _, v := range res.Violations {
		if v.Kind == domain.ViolationBudget {
			budgetViolations++
		}
	}
	if budgetViolations == 0 {
		t.Error("expected budget violations recording the downgrades")
	}
}

func TestPlanInitial_UnresolvedDestination(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t)

	req := springRequirements(nil)
	req.Destination = "Paris"
	_, err := o.PlanInitial(context.Background(), req)
	if !errors.Is(err, planner.ErrUnresolvedDestination) {
		t.Fatalf("error = %v, want ErrUnresolvedDestination", err)
	}
}

func TestPlanInitial_NoFeasibleItineraryLeavesNoState(t *testing.T) {
	t.Parallel()
	o, trips, _ := newTestOrchestrator(t)

	// Yazd resolves to a region but the catalog has no facilities there.
	req := springRequirements(nil)
	req.Destination = "Yazd"
	_, err := o.PlanInitial(context.Background(), req)
	if !errors.Is(err, planner.ErrNoFeasibleItinerary) {
		t.Fatalf("error = %v, want ErrNoFeasibleItinerary", err)
	}

	stored, err := trips.ListByStatus(context.Background(), domain.TripStatusPlanned)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("failed run persisted %d trips, want 0", len(stored))
	}
}

func TestPlanInitial_InvalidRequirements(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t)

	req := springRequirements(nil)
	req.End = req.Start
	if _, err := o.PlanInitial(context.Background(), req); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("error = %v, want ErrInvalidDateRange", err)
	}

	req = springRequirements(nil)
	req.TravelersCount = 0
	if _, err := o.PlanInitial(context.Background(), req); !errors.Is(err, domain.ErrInvalidTravelers) {
		t.Errorf("error = %v, want ErrInvalidTravelers", err)
	}
}

func TestReplan_WeatherAlertPreservesLockedPlans(t *testing.T) {
	t.Parallel()
	o, trips, _ := newTestOrchestrator(t)
	ctx := context.Background()

	res, err := o.PlanInitial(ctx, springRequirements(nil))
	if err != nil {
		t.Fatalf("PlanInitial() error = %v", err)
	}
	trip := res.Trip

	// Pin the Karim Khan citadel visit (indoor, survives any weather).
	locked, ok := lockPlan(t, &trip, 3203)
	if !ok {
		t.Fatal("citadel visit not scheduled in initial plan")
	}
	if err := trips.Save(ctx, trip); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	replanned, err := o.Replan(ctx, trip.ID, domain.ChangeTrigger{
		Kind:   domain.TriggerWeatherAlert,
		Reason: "storm warning",
	})
	if err != nil {
		t.Fatalf("Replan() error = %v", err)
	}

	if replanned.Trip.Status != domain.TripStatusPlanned {
		t.Errorf("status = %s, want %s", replanned.Trip.Status, domain.TripStatusPlanned)
	}

	found := false
	for _, p := range replanned.Trip.DailyPlans {
		if p.FacilityID == locked.FacilityID {
			found = true
			if p != locked {
				t.Errorf("locked plan changed: got %+v, want %+v", p, locked)
			}
		}
	}
	if !found {
		t.Error("locked plan missing after replan")
	}

	// Outdoor attractions must be gone under a severe-weather alert.
	outdoor := map[domain.FacilityID]bool{3201: true, 3204: true, 3205: true}
	for _, p := range replanned.Trip.DailyPlans {
		if outdoor[p.FacilityID] {
			t.Errorf("outdoor facility %d scheduled during weather alert", p.FacilityID)
		}
	}

	seasonal := 0
	for _, v := range replanned.Violations {
		if v.Kind == domain.ViolationSeasonal {
			seasonal++
		}
	}
	if seasonal == 0 {
		t.Error("expected seasonal violations for removed outdoor activities")
	}

	// Hotel reservation is committed and must survive the replan untouched.
	if replanned.Trip.Hotel == nil || trip.Hotel == nil {
		t.Fatal("hotel schedule missing")
	}
	if replanned.Trip.Hotel.FacilityID != trip.Hotel.FacilityID || replanned.Trip.Hotel.Cost != trip.Hotel.Cost {
		t.Errorf("hotel changed across replan: got %+v, want %+v", replanned.Trip.Hotel, trip.Hotel)
	}

	assertWellFormedSchedule(t, replanned.Trip)
}

func TestReplan_FacilityClosedExcludesFacility(t *testing.T) {
	t.Parallel()
	o, _, _ := newTestOrchestrator(t)
	ctx := context.Background()

	res, err := o.PlanInitial(ctx, springRequirements(nil))
	if err != nil {
		t.Fatalf("PlanInitial() error = %v", err)
	}

	replanned, err := o.Replan(ctx, res.Trip.ID, domain.ChangeTrigger{
		Kind:       domain.TriggerFacilityClosed,
		FacilityID: 3202,
		Reason:     "site maintenance",
	})
	if err != nil {
		t.Fatalf("Replan() error = %v", err)
	}

	for _, p := range replanned.Trip.DailyPlans {
		if p.FacilityID == 3202 {
			t.Error("closed facility still scheduled after replan")
		}
	}
	assertWellFormedSchedule(t, replanned.Trip)
}

func TestReplan_ClosedLockedFacilityIsFatal(t *testing.T) {
	t.Parallel()
	o, trips, _ := newTestOrchestrator(t)
	ctx := context.Background()

	res, err := o.PlanInitial(ctx, springRequirements(nil))
	if err != nil {
		t.Fatalf("PlanInitial() error = %v", err)
	}
	trip := res.Trip

	if _, ok := lockPlan(t, &trip, 3202); !ok {
		t.Fatal("Persepolis visit not scheduled in initial plan")
	}
	if err := trips.Save(ctx, trip); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err = o.Replan(ctx, trip.ID, domain.ChangeTrigger{
		Kind:       domain.TriggerFacilityClosed,
		FacilityID: 3202,
	})
	if !errors.Is(err, planner.ErrLockedItemConflict) {
		t.Fatalf("error = %v, want ErrLockedItemConflict", err)
	}
}

// lockPlan marks the plan for the given facility as user-pinned and returns a
// copy of it.
func lockPlan(t *testing.T, trip *domain.Trip, id domain.FacilityID) (domain.DailyPlan, bool) {
	t.Helper()
	for i := range trip.DailyPlans {
		if trip.DailyPlans[i].FacilityID == id {
			trip.DailyPlans[i].Locked = true
			return trip.DailyPlans[i], true
		}
	}
	return domain.DailyPlan{}, false
}

// assertWellFormedSchedule checks the cross-cutting plan invariants: windows
// are ordered, fall inside the trip range, and never overlap within a day.
func assertWellFormedSchedule(t *testing.T, trip domain.Trip) {
	t.Helper()
	req := trip.Requirements

	byDay := make(map[string][]domain.DailyPlan)
	for _, p := range trip.DailyPlans {
		if !p.Start.Before(p.End) {
			t.Errorf("plan %d: start %v not before end %v", p.FacilityID, p.Start, p.End)
		}
		if p.Start.Before(req.Start) || p.End.After(req.End.AddDate(0, 0, 1)) {
			t.Errorf("plan %d: window %v-%v outside trip range", p.FacilityID, p.Start, p.End)
		}
		day := p.Start.Format("2006-01-02")
		byDay[day] = append(byDay[day], p)
	}

	for day, plans := range byDay {
		for i := 0; i < len(plans); i++ {
			for j := i + 1; j < len(plans); j++ {
				a, b := plans[i], plans[j]
				if a.Start.Before(b.End) && b.Start.Before(a.End) {
					t.Errorf("day %s: plans %d and %d overlap", day, a.FacilityID, b.FacilityID)
				}
			}
		}
	}

	var sum int64
	for _, p := range trip.DailyPlans {
		sum += p.Cost
	}
	if trip.Hotel != nil {
		sum += trip.Hotel.Cost
	}
	if got := trip.TotalCost(); got != sum {
		t.Errorf("TotalCost() = %d, want %d", got, sum)
	}
}
