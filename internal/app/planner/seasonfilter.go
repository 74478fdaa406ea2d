package planner

import (
	"context"
	"fmt"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// SeasonalWeatherFilterStage removes candidates unsuitable for the current
// season or weather. Each removal is recorded as a non-fatal SEASONAL
// violation. The stage never fails.
type SeasonalWeatherFilterStage struct{}

func NewSeasonalWeatherFilterStage() *SeasonalWeatherFilterStage {
	return &SeasonalWeatherFilterStage{}
}

func (s *SeasonalWeatherFilterStage) Name() string { return "SeasonalWeatherFilter" }

func (s *SeasonalWeatherFilterStage) Execute(ctx context.Context, tc *TripContext) error {
	_ = ctx

	kept := tc.Candidates[:0]
	for _, c := range tc.Candidates {
		if reason := s.unsuitable(tc, c); reason != "" {
			tc.AddViolation(domain.ViolationSeasonal, domain.SeverityInfo,
				fmt.Sprintf("removed %q: %s", c.Facility.Name, reason))
			continue
		}
		kept = append(kept, c)
	}
	tc.Candidates = kept
	return nil
}

func (s *SeasonalWeatherFilterStage) unsuitable(tc *TripContext, c Candidate) string {
	if !isOutdoor(c.Facility) {
		return ""
	}
	if tc.Weather.Severe {
		return fmt.Sprintf("outdoor activity during severe weather (%s)", tc.Weather.Condition)
	}
	if tc.Season == domain.SeasonWinter {
		return "outdoor activity in winter"
	}
	return ""
}
