// Package weather defines the weather capability consumed by the pipeline.
package weather

import (
	"context"
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// Service reports current conditions for a region around a date. A failing
// implementation degrades the pipeline to season-only filtering; it never
// aborts a planning run.
type Service interface {
	CurrentConditions(ctx context.Context, regionID domain.RegionID, date time.Time) (domain.WeatherInfo, error)
}
