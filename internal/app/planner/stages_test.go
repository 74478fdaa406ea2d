package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memfacilities "github.com/safarino/trip-planner-core/internal/adapters/memory/facilities"
	"github.com/safarino/trip-planner-core/internal/app/planner"
	"github.com/safarino/trip-planner-core/internal/domain"
)

func catalogFacility(t *testing.T, id domain.FacilityID) domain.Facility {
	t.Helper()
	f, ok, err := memfacilities.NewClient().FacilityByID(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("facility %d not in catalog", id)
	}
	return f
}

func TestSeasonalWeatherFilter_SevereWeatherRemovesOutdoor(t *testing.T) {
	t.Parallel()

	tc := planner.NewTripContext(springRequirements(nil))
	tc.Season = domain.SeasonSpring
	tc.Weather = domain.WeatherInfo{Condition: domain.WeatherStorm, Severe: true}
	tc.Candidates = []planner.Candidate{
		{Facility: catalogFacility(t, 3204)}, // garden, outdoor
		{Facility: catalogFacility(t, 3203)}, // citadel, indoor
	}

	stage := planner.NewSeasonalWeatherFilterStage()
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(tc.Candidates) != 1 || tc.Candidates[0].Facility.ID != 3203 {
		t.Fatalf("candidates = %+v, want only the citadel", tc.Candidates)
	}
	if len(tc.Violations) != 1 || tc.Violations[0].Kind != domain.ViolationSeasonal {
		t.Errorf("violations = %+v, want one SEASONAL", tc.Violations)
	}
}

func TestSeasonalWeatherFilter_WinterRemovesOutdoor(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	req.Start = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	req.End = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	tc := planner.NewTripContext(req)
	tc.Season = domain.SeasonWinter
	tc.Weather = domain.WeatherInfo{Condition: domain.WeatherCloudy}
	tc.Candidates = []planner.Candidate{{Facility: catalogFacility(t, 3204)}}

	stage := planner.NewSeasonalWeatherFilterStage()
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(tc.Candidates) != 0 {
		t.Errorf("outdoor candidate kept in winter: %+v", tc.Candidates)
	}
}

func TestClusterAndRoute_CapsSlotsAndRecordsCapacity(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	req.End = req.Start.AddDate(0, 0, 1) // single-day trip

	tc := planner.NewTripContext(req)
	for _, id := range []domain.FacilityID{3201, 3202, 3203, 3204, 3205, 3101} {
		tc.Candidates = append(tc.Candidates, planner.Candidate{Facility: catalogFacility(t, id), Score: 1})
	}

	stage := planner.NewClusterAndRouteStage()
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(tc.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(tc.Days))
	}
	if len(tc.Days[0]) != 4 {
		t.Fatalf("scheduled %d items, want the 4-slot cap", len(tc.Days[0]))
	}

	capacity := 0
	for _, v := range tc.Violations {
		if v.Kind == domain.ViolationCapacity {
			capacity++
		}
	}
	if capacity != 2 {
		t.Errorf("capacity violations = %d, want 2", capacity)
	}
}

func TestClusterAndRoute_ChainsNearestNeighbor(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	req.End = req.Start.AddDate(0, 0, 1)

	tc := planner.NewTripContext(req)
	hafezieh := catalogFacility(t, 3201)   // seed: highest score
	persepolis := catalogFacility(t, 3202) // ~46km out of town
	citadel := catalogFacility(t, 3203)    // ~2km from the seed
	tc.Candidates = []planner.Candidate{
		{Facility: persepolis, Score: 2},
		{Facility: citadel, Score: 1},
		{Facility: hafezieh, Score: 3},
	}

	stage := planner.NewClusterAndRouteStage()
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := make([]domain.FacilityID, 0, len(tc.Days[0]))
	for _, item := range tc.Days[0] {
		got = append(got, item.Facility.ID)
	}
	want := []domain.FacilityID{3201, 3203, 3202}
	if len(got) != len(want) {
		t.Fatalf("scheduled = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scheduled = %v, want %v", got, want)
		}
	}
}

func TestTimeConstraints_DropsUnreachableItem(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	req.End = req.Start.AddDate(0, 0, 1)

	tc := planner.NewTripContext(req)
	// Persepolis takes the morning; the Tehran bazaar is a 14-hour drive
	// away and closes at 18:00, so it can never fit the same day.
	tc.Days = [][]planner.ScheduledItem{{
		{Candidate: planner.Candidate{Facility: catalogFacility(t, 3202), Score: 2}},
		{Candidate: planner.Candidate{Facility: catalogFacility(t, 1204), Score: 1}},
	}}

	stage := planner.NewTimeConstraintsValidationStage(memfacilities.NewClient())
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(tc.Days[0]) != 1 || tc.Days[0][0].Facility.ID != 3202 {
		t.Fatalf("day = %+v, want only facility 3202", tc.Days[0])
	}
	if tc.Days[0][0].Start.Hour() != 9 {
		t.Errorf("start hour = %d, want 9", tc.Days[0][0].Start.Hour())
	}
	if len(tc.Violations) != 1 || tc.Violations[0].Kind != domain.ViolationTimeConflict {
		t.Errorf("violations = %+v, want one TIME_CONFLICT", tc.Violations)
	}
}

func TestTimeConstraints_DropsOnlyConflictingItems(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	req.End = req.Start.AddDate(0, 0, 1)

	tc := planner.NewTripContext(req)
	// The garden scores lowest of the day but fits fine; the Tehran bazaar
	// at the end of the route is the one that cannot be reached in time.
	tc.Days = [][]planner.ScheduledItem{{
		{Candidate: planner.Candidate{Facility: catalogFacility(t, 3204), Score: 0.5}},
		{Candidate: planner.Candidate{Facility: catalogFacility(t, 3203), Score: 3}},
		{Candidate: planner.Candidate{Facility: catalogFacility(t, 1204), Score: 1}},
	}}

	stage := planner.NewTimeConstraintsValidationStage(memfacilities.NewClient())
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := make([]domain.FacilityID, 0, len(tc.Days[0]))
	for _, item := range tc.Days[0] {
		got = append(got, item.Facility.ID)
	}
	if len(got) != 2 || got[0] != 3204 || got[1] != 3203 {
		t.Fatalf("day = %v, want the feasible [3204 3203] kept", got)
	}
	if len(tc.Violations) != 1 || tc.Violations[0].Kind != domain.ViolationTimeConflict {
		t.Errorf("violations = %+v, want one TIME_CONFLICT for the bazaar", tc.Violations)
	}
}

func TestBudgetAnalysis_SubstitutesCheaperAlternative(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	budget := int64(800_000)
	req.Budget = &budget

	tc := planner.NewTripContext(req)
	expensive := catalogFacility(t, 3102) // restaurant, 1,000,000
	cheaper := catalogFacility(t, 3101)   // restaurant, 700,000
	tc.Days = [][]planner.ScheduledItem{{
		{Candidate: planner.Candidate{Facility: expensive, Score: 1}},
	}}
	tc.Candidates = []planner.Candidate{
		{Facility: expensive, Score: 1},
		{Facility: cheaper, Score: 0.9},
	}

	stage := planner.NewBudgetAnalysisStage(memfacilities.NewClient())
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(tc.Days[0]) != 1 || tc.Days[0][0].Facility.ID != 3101 {
		t.Fatalf("day = %+v, want the cheaper restaurant substituted in", tc.Days[0])
	}
	if tc.Days[0][0].Cost != 700_000 {
		t.Errorf("cost = %d, want 700000", tc.Days[0][0].Cost)
	}
	if len(tc.Violations) != 1 || tc.Violations[0].Kind != domain.ViolationBudget {
		t.Errorf("violations = %+v, want one BUDGET", tc.Violations)
	}
}

func TestBudgetAnalysis_LockedCostAboveBudgetIsFatal(t *testing.T) {
	t.Parallel()

	req := springRequirements(nil)
	budget := int64(500_000)
	req.Budget = &budget

	tc := planner.NewTripContext(req)
	tc.PreservedPlans = []domain.DailyPlan{
		{FacilityID: 3202, Cost: 900_000, Locked: true},
	}

	stage := planner.NewBudgetAnalysisStage(memfacilities.NewClient())
	err := stage.Execute(context.Background(), tc)
	if !errors.Is(err, planner.ErrBudgetInfeasible) {
		t.Fatalf("error = %v, want ErrBudgetInfeasible", err)
	}
}

func TestPrioritizeActivities_PrefersMatchingTags(t *testing.T) {
	t.Parallel()

	tc := planner.NewTripContext(springRequirements(nil))
	bazaar := catalogFacility(t, 1204)    // shopping, history; rating 4.1
	miladTower := catalogFacility(t, 1201) // modern, sightseeing; rating 4.3
	tc.Candidates = []planner.Candidate{
		{Facility: miladTower},
		{Facility: bazaar},
	}

	stage := planner.NewPrioritizeActivitiesStage()
	if err := stage.Execute(context.Background(), tc); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// The history tag match outweighs the tower's higher rating.
	if tc.Candidates[0].Facility.ID != 1204 {
		t.Errorf("top candidate = %d, want the bazaar (1204)", tc.Candidates[0].Facility.ID)
	}
	if tc.Candidates[0].Score <= tc.Candidates[1].Score {
		t.Errorf("scores not descending: %v then %v", tc.Candidates[0].Score, tc.Candidates[1].Score)
	}
}
