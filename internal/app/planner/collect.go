package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/domain"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
	portrecommend "github.com/safarino/trip-planner-core/internal/ports/out/recommend"
	portweather "github.com/safarino/trip-planner-core/internal/ports/out/weather"
	portwiki "github.com/safarino/trip-planner-core/internal/ports/out/wiki"
)

// CollectDataStage resolves the destination and gathers everything later
// stages consume: weather snapshot, lodging and dining options, destination
// text, and personalized recommendations.
//
// The four source fetches have no ordering dependency and run concurrently,
// each under its own timeout. Weather, wiki, and recommendations degrade to
// empty values on failure; a facilities failure is fatal to the stage.
type CollectDataStage struct {
	facilities portfacilities.Service
	weather    portweather.Service
	wiki       portwiki.Service
	recommend  portrecommend.Service

	sourceTimeout time.Duration
	log           *zap.Logger
}

func NewCollectDataStage(
	fs portfacilities.Service,
	ws portweather.Service,
	wk portwiki.Service,
	rc portrecommend.Service,
	sourceTimeout time.Duration,
	log *zap.Logger,
) *CollectDataStage {
	return &CollectDataStage{
		facilities:    fs,
		weather:       ws,
		wiki:          wk,
		recommend:     rc,
		sourceTimeout: sourceTimeout,
		log:           log,
	}
}

func (s *CollectDataStage) Name() string { return "CollectData" }

func (s *CollectDataStage) Execute(ctx context.Context, tc *TripContext) error {
	req := tc.Requirements

	region, err := s.facilities.ResolveRegion(ctx, req.Destination)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnresolvedDestination, req.Destination)
	}
	tc.Region = region
	tc.Season = domain.SeasonOf(req.Start)

	var (
		wg sync.WaitGroup

		weatherInfo domain.WeatherInfo
		weatherErr  error

		hotels, restaurants []domain.Facility
		facilitiesErr       error

		wikiText string
		wikiErr  error

		recs    []portrecommend.Item
		recsErr error
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
		weatherInfo, weatherErr = s.weather.CurrentConditions(fetchCtx, region.ID, req.Start)
	}()

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
		hotels, facilitiesErr = s.facilities.HotelsInRegion(fetchCtx, region.ID)
		if facilitiesErr != nil {
			return
		}
		restaurants, facilitiesErr = s.facilities.RestaurantsInRegion(fetchCtx, region.ID)
	}()

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
		wikiText, wikiErr = s.wiki.DestinationBasicInfo(fetchCtx, req.Destination)
	}()

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
		recs, recsErr = s.recommend.PersonalizedRecommendations(fetchCtx, req.UserID, req.Destination, domain.SeasonOf(req.Start))
	}()

	wg.Wait()

	if facilitiesErr != nil {
		return fmt.Errorf("fetch facilities for region %s: %w", region.ID, facilitiesErr)
	}

	// Non-critical sources degrade silently to empty values.
	if weatherErr != nil {
		s.log.Warn("weather fetch degraded to empty", zap.String("region", string(region.ID)), zap.Error(weatherErr))
		weatherInfo = domain.WeatherInfo{}
	}
	if wikiErr != nil {
		s.log.Warn("wiki fetch degraded to empty", zap.Error(wikiErr))
		wikiText = ""
	}
	if recsErr != nil {
		s.log.Warn("recommendations fetch degraded to empty", zap.Error(recsErr))
		recs = nil
	}

	tc.Weather = weatherInfo
	tc.WikiText = wikiText
	tc.Hotels = hotels

	for _, r := range restaurants {
		tc.Candidates = append(tc.Candidates, Candidate{Facility: r, Source: domain.PlanSourceCatalog})
	}
	for _, item := range recs {
		f, ok, err := s.facilities.FacilityByPlaceID(ctx, item.PlaceID, region.ID)
		if err != nil || !ok {
			continue
		}
		tc.Candidates = append(tc.Candidates, Candidate{Facility: f, Source: domain.PlanSourceRecommendation})
	}

	return nil
}
