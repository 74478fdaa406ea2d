// Package facilities defines the capability interface for the facilities
// catalog: region resolution, spatial search, cost estimation, and travel
// info between facilities.
package facilities

import (
	"context"
	"errors"
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/geo"
)

// ErrRegionNotFound is returned when a destination query resolves to no
// known region. There is no fallback region.
var ErrRegionNotFound = errors.New("region not found")

// Region is a named city-level catalog partition.
type Region struct {
	ID   domain.RegionID
	Name string
}

// SearchCriteria scopes a spatial facility search.
type SearchCriteria struct {
	Center   geo.Point
	RadiusKm float64

	// Type filters by exact facility type when non-empty.
	Type domain.FacilityType
}

// CostEstimate is a facility's estimated cost over a date range.
type CostEstimate struct {
	FacilityID  domain.FacilityID
	Amount      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// TravelInfo describes one leg between two catalog facilities.
type TravelInfo struct {
	From domain.FacilityID
	To   domain.FacilityID

	geo.TravelEstimate
}

// Service is the facilities capability consumed by the planning core.
// Implementations may be remote; all methods take a context.
type Service interface {
	// ResolveRegion normalizes the query (trim + lowercase) and matches it
	// against the region alias table: exact first, then substring in
	// either direction. Returns ErrRegionNotFound on a miss.
	ResolveRegion(ctx context.Context, query string) (Region, error)

	FindFacilitiesInArea(ctx context.Context, criteria SearchCriteria) ([]domain.Facility, error)

	// CostEstimate returns unit cost times whole days in range (minimum
	// one day). Unknown facility ids yield a zero estimate, not an error.
	CostEstimate(ctx context.Context, id domain.FacilityID, start, end time.Time) (CostEstimate, error)

	// TravelInfo returns the transport leg between two facilities. When
	// either id is unknown a fixed fallback leg is returned.
	TravelInfo(ctx context.Context, from, to domain.FacilityID) (TravelInfo, error)

	HotelsInRegion(ctx context.Context, regionID domain.RegionID) ([]domain.Facility, error)
	RestaurantsInRegion(ctx context.Context, regionID domain.RegionID) ([]domain.Facility, error)

	// FacilityByID resolves a single facility; ok is false when unknown.
	FacilityByID(ctx context.Context, id domain.FacilityID) (domain.Facility, bool, error)

	// FacilityByPlaceID resolves the facility details behind a
	// recommendation place id within a region; ok is false when unknown.
	FacilityByPlaceID(ctx context.Context, placeID string, regionID domain.RegionID) (domain.Facility, bool, error)
}
