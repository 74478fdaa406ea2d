package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/geo"
	portclock "github.com/safarino/trip-planner-core/internal/ports/out/clock"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
	portrecommend "github.com/safarino/trip-planner-core/internal/ports/out/recommend"
	porttriprepo "github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
	portweather "github.com/safarino/trip-planner-core/internal/ports/out/weather"
	portwiki "github.com/safarino/trip-planner-core/internal/ports/out/wiki"
)

// DefaultSourceTimeout bounds each external source fetch during CollectData.
const DefaultSourceTimeout = 5 * time.Second

// Result is the outcome of a successful planning run.
type Result struct {
	Trip       domain.Trip
	Violations []domain.ConstraintViolation
}

// Orchestrator drives the planning pipeline: data collection, prioritization,
// seasonal filtering, clustering, time validation, budget analysis, and final
// arrangement, in that fixed order.
type Orchestrator struct {
	facilities portfacilities.Service
	weather    portweather.Service
	trips      porttriprepo.Repository

	clk portclock.Clock
	log *zap.Logger

	stages []Stage

	// newTripID is swappable for deterministic tests.
	newTripID func() domain.TripID
}

func NewOrchestrator(
	facilities portfacilities.Service,
	weather portweather.Service,
	wiki portwiki.Service,
	recommend portrecommend.Service,
	trips porttriprepo.Repository,
	clk portclock.Clock,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		facilities: facilities,
		weather:    weather,
		trips:      trips,
		clk:        clk,
		log:        log,
		stages: []Stage{
			NewCollectDataStage(facilities, weather, wiki, recommend, DefaultSourceTimeout, log),
			NewPrioritizeActivitiesStage(),
			NewSeasonalWeatherFilterStage(),
			NewClusterAndRouteStage(),
			NewTimeConstraintsValidationStage(facilities),
			NewBudgetAnalysisStage(facilities),
			NewFinalArrangementStage(),
		},
		newTripID: func() domain.TripID { return domain.TripID(uuid.NewString()) },
	}
}

// PlanInitial plans a brand-new trip from requirements and persists it.
// The trip is stored only when the full pipeline succeeds; a failed run
// leaves no partial state behind.
func (o *Orchestrator) PlanInitial(ctx context.Context, req domain.TripRequirements) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	now := o.clk.Now()
	trip := domain.Trip{
		ID:           o.newTripID(),
		Status:       domain.TripStatusDraft,
		Requirements: req,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tc := NewTripContext(req)
	tc.Trip = &trip

	if err := o.ExecutePipeline(ctx, tc, o.stages); err != nil {
		return Result{}, err
	}
	if len(trip.DailyPlans) == 0 {
		return Result{}, fmt.Errorf("%w: no activities could be scheduled for %q", ErrNoFeasibleItinerary, req.Destination)
	}

	trip.UpdatedAt = o.clk.Now()
	if err := o.trips.Create(ctx, trip); err != nil {
		return Result{}, fmt.Errorf("persist trip: %w", err)
	}

	o.log.Info("trip planned",
		zap.String("trip_id", string(trip.ID)),
		zap.String("destination", req.Destination),
		zap.Int("daily_plans", len(trip.DailyPlans)),
		zap.Int("violations", len(tc.Violations)),
	)
	return Result{Trip: trip, Violations: tc.Violations}, nil
}

// Replan regenerates the affected part of an existing trip in response to an
// external change event. Locked plans and plans outside the affected window
// are preserved unchanged; everything else in the window is rebuilt. The
// prior plan rows are replaced wholesale on save.
func (o *Orchestrator) Replan(ctx context.Context, tripID domain.TripID, trigger domain.ChangeTrigger) (Result, error) {
	trip, err := o.trips.GetByID(ctx, tripID)
	if err != nil {
		return Result{}, err
	}
	trip.Status = domain.TripStatusNeedsRegeneration
	trip.UpdatedAt = o.clk.Now()
	if err := o.trips.Save(ctx, trip); err != nil {
		return Result{}, fmt.Errorf("mark trip for regeneration: %w", err)
	}

	tc, err := o.buildReplanContext(ctx, &trip, trigger)
	if err != nil {
		return Result{}, err
	}

	// Data collection and prioritization are replaced by the replan
	// context; re-enter the pipeline at the filtering stage.
	if err := o.ExecutePipeline(ctx, tc, o.stages[2:]); err != nil {
		return Result{}, err
	}
	if len(trip.DailyPlans) == 0 {
		return Result{}, fmt.Errorf("%w: replan left no activities", ErrNoFeasibleItinerary)
	}

	trip.UpdatedAt = o.clk.Now()
	if err := o.trips.Save(ctx, trip); err != nil {
		return Result{}, fmt.Errorf("persist replanned trip: %w", err)
	}

	o.log.Info("trip replanned",
		zap.String("trip_id", string(trip.ID)),
		zap.String("trigger", string(trigger.Kind)),
		zap.Int("daily_plans", len(trip.DailyPlans)),
		zap.Int("violations", len(tc.Violations)),
	)
	return Result{Trip: trip, Violations: tc.Violations}, nil
}

// GetTrip returns a stored trip.
func (o *Orchestrator) GetTrip(ctx context.Context, tripID domain.TripID) (domain.Trip, error) {
	return o.trips.GetByID(ctx, tripID)
}

// ExecutePipeline runs the given stages in order against the context.
// The first stage error aborts the run.
func (o *Orchestrator) ExecutePipeline(ctx context.Context, tc *TripContext, stages []Stage) error {
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		o.log.Debug("pipeline stage", zap.String("stage", stage.Name()))
		if err := stage.Execute(ctx, tc); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return nil
}

// buildReplanContext assembles the working context for a partial
// regeneration: preserved plans, the rebuildable candidate pool, and the
// pre-committed hotel.
func (o *Orchestrator) buildReplanContext(ctx context.Context, trip *domain.Trip, trigger domain.ChangeTrigger) (*TripContext, error) {
	req := trip.Requirements

	tc := NewTripContext(req)
	tc.Trip = trip
	tc.Replan = true
	tc.WindowStart, tc.WindowEnd = trigger.Window(req.Start, req.End)
	if trigger.Kind == domain.TriggerFacilityClosed && trigger.FacilityID != 0 {
		tc.ExcludedFacilities[trigger.FacilityID] = true
	}

	region, err := o.facilities.ResolveRegion(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedDestination, req.Destination)
	}
	tc.Region = region
	tc.Season = domain.SeasonOf(req.Start)

	weather, err := o.weather.CurrentConditions(ctx, region.ID, tc.WindowStart)
	if err != nil {
		o.log.Warn("weather fetch degraded to empty", zap.String("region", string(region.ID)), zap.Error(err))
		weather = domain.WeatherInfo{}
	}
	if trigger.Kind == domain.TriggerWeatherAlert {
		weather.Severe = true
	}
	tc.Weather = weather

	// Split the existing plans: locked plans and anything outside the
	// affected window survive untouched; unlocked in-window plans seed the
	// rebuildable pool.
	inPool := make(map[domain.FacilityID]bool)
	for _, p := range trip.DailyPlans {
		affected := !p.Start.Before(tc.WindowStart) && p.Start.Before(tc.WindowEnd)
		if p.Locked || !affected {
			tc.PreservedPlans = append(tc.PreservedPlans, p)
			inPool[p.FacilityID] = true
			continue
		}
		if tc.ExcludedFacilities[p.FacilityID] || inPool[p.FacilityID] {
			continue
		}
		f, ok, err := o.facilities.FacilityByID(ctx, p.FacilityID)
		if err != nil || !ok {
			continue
		}
		source := p.Source
		tc.Candidates = append(tc.Candidates, Candidate{Facility: f, Source: source, Score: 1})
		inPool[f.ID] = true
	}

	if err := o.addSubstitutePool(ctx, tc, inPool); err != nil {
		return nil, err
	}

	// The hotel reservation is committed; replanning never reshuffles it.
	if trip.Hotel != nil {
		if f, ok, err := o.facilities.FacilityByID(ctx, trip.Hotel.FacilityID); err == nil && ok {
			tc.ChosenHotel = &f
		}
		tc.HotelCost = trip.Hotel.Cost
	}
	return tc, nil
}

// addSubstitutePool widens the candidate pool with nearby attractions and the
// region's restaurants so replacements exist for excluded facilities.
func (o *Orchestrator) addSubstitutePool(ctx context.Context, tc *TripContext, inPool map[domain.FacilityID]bool) error {
	center, ok := o.replanCenter(ctx, tc)
	if ok {
		found, err := o.facilities.FindFacilitiesInArea(ctx, portfacilities.SearchCriteria{
			Center:   center,
			RadiusKm: replanSearchRadiusKm,
			Type:     domain.FacilityTypeAttraction,
		})
		if err != nil {
			return fmt.Errorf("search substitute attractions: %w", err)
		}
		for _, f := range found {
			if inPool[f.ID] || tc.ExcludedFacilities[f.ID] {
				continue
			}
			tc.Candidates = append(tc.Candidates, Candidate{Facility: f, Source: domain.PlanSourceCatalog, Score: 0.5})
			inPool[f.ID] = true
		}
	}

	restaurants, err := o.facilities.RestaurantsInRegion(ctx, tc.Region.ID)
	if err != nil {
		return fmt.Errorf("fetch substitute restaurants: %w", err)
	}
	for _, f := range restaurants {
		if inPool[f.ID] || tc.ExcludedFacilities[f.ID] {
			continue
		}
		tc.Candidates = append(tc.Candidates, Candidate{Facility: f, Source: domain.PlanSourceCatalog, Score: 0.5})
		inPool[f.ID] = true
	}
	return nil
}

// replanCenter anchors the spatial substitute search at the trip's hotel.
func (o *Orchestrator) replanCenter(ctx context.Context, tc *TripContext) (geo.Point, bool) {
	if tc.Trip.Hotel == nil {
		return geo.Point{}, false
	}
	f, ok, err := o.facilities.FacilityByID(ctx, tc.Trip.Hotel.FacilityID)
	if err != nil || !ok {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: f.Latitude, Longitude: f.Longitude}, true
}
