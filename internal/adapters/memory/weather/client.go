// Package weather is a deterministic in-memory weather.Service: conditions
// derive from the season, with optional per-region overrides for tests.
package weather

import (
	"context"
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
)

type Client struct {
	overrides map[domain.RegionID]domain.WeatherInfo
}

func NewClient() *Client {
	return &Client{overrides: make(map[domain.RegionID]domain.WeatherInfo)}
}

// SetConditions pins the reported weather for a region. Used by tests to
// simulate alerts.
func (c *Client) SetConditions(regionID domain.RegionID, info domain.WeatherInfo) {
	c.overrides[regionID] = info
}

func (c *Client) CurrentConditions(ctx context.Context, regionID domain.RegionID, date time.Time) (domain.WeatherInfo, error) {
	_ = ctx
	if info, ok := c.overrides[regionID]; ok {
		return info, nil
	}

	switch domain.SeasonOf(date) {
	case domain.SeasonSpring:
		return domain.WeatherInfo{Condition: domain.WeatherClear, TemperatureC: 21}, nil
	case domain.SeasonSummer:
		return domain.WeatherInfo{Condition: domain.WeatherClear, TemperatureC: 34}, nil
	case domain.SeasonAutumn:
		return domain.WeatherInfo{Condition: domain.WeatherCloudy, TemperatureC: 16}, nil
	default:
		return domain.WeatherInfo{Condition: domain.WeatherSnow, TemperatureC: 2, Severe: true}, nil
	}
}
