// Package facilities is the in-memory facilities.Service backed by a fixed
// catalog. The catalog is immutable after construction, so the client is
// safe for concurrent use without locking.
package facilities

import (
	"context"
	"strings"
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/geo"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

type Client struct {
	byID       map[domain.FacilityID]domain.Facility
	regionByID map[domain.RegionID]portfacilities.Region
	aliasExact map[string]domain.RegionID
}

func NewClient() *Client {
	c := &Client{
		byID:       make(map[domain.FacilityID]domain.Facility),
		regionByID: make(map[domain.RegionID]portfacilities.Region, len(regions)),
		aliasExact: make(map[string]domain.RegionID, len(regionAliases)),
	}
	for _, r := range regions {
		c.regionByID[r.ID] = r
	}
	for _, a := range regionAliases {
		c.aliasExact[a.alias] = a.id
	}
	for _, fs := range regionFacilities {
		for _, f := range fs {
			c.byID[f.ID] = f
		}
	}
	for _, places := range placeFacilities {
		for _, f := range places {
			c.byID[f.ID] = f
		}
	}
	return c
}

func (c *Client) ResolveRegion(ctx context.Context, query string) (portfacilities.Region, error) {
	_ = ctx
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return portfacilities.Region{}, portfacilities.ErrRegionNotFound
	}

	if id, ok := c.aliasExact[normalized]; ok {
		return c.regionByID[id], nil
	}

	// Substring containment in either direction, walked in alias-table
	// order so ambiguous queries resolve the same way every run;
	// deliberately no edit-distance matching.
	for _, a := range regionAliases {
		if strings.Contains(normalized, a.alias) || strings.Contains(a.alias, normalized) {
			return c.regionByID[a.id], nil
		}
	}

	return portfacilities.Region{}, portfacilities.ErrRegionNotFound
}

func (c *Client) FindFacilitiesInArea(ctx context.Context, criteria portfacilities.SearchCriteria) ([]domain.Facility, error) {
	_ = ctx
	out := make([]domain.Facility, 0)
	for _, f := range c.byID {
		d := geo.DistanceKm(criteria.Center, geo.Point{Latitude: f.Latitude, Longitude: f.Longitude})
		if d > criteria.RadiusKm {
			continue
		}
		if criteria.Type != "" && f.Type != criteria.Type {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *Client) CostEstimate(ctx context.Context, id domain.FacilityID, start, end time.Time) (portfacilities.CostEstimate, error) {
	_ = ctx
	est := portfacilities.CostEstimate{
		FacilityID:  id,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	f, ok := c.byID[id]
	if !ok {
		// Unknown id yields a zero estimate rather than an error.
		return est, nil
	}
	days := int64(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	est.Amount = f.Cost * days
	return est, nil
}

func (c *Client) TravelInfo(ctx context.Context, from, to domain.FacilityID) (portfacilities.TravelInfo, error) {
	_ = ctx
	info := portfacilities.TravelInfo{From: from, To: to}

	ff, okFrom := c.byID[from]
	tf, okTo := c.byID[to]
	if !okFrom || !okTo {
		info.TravelEstimate = geo.FallbackTravel()
		return info, nil
	}

	d := geo.DistanceKm(
		geo.Point{Latitude: ff.Latitude, Longitude: ff.Longitude},
		geo.Point{Latitude: tf.Latitude, Longitude: tf.Longitude},
	)
	info.TravelEstimate = geo.EstimateTravel(d)
	return info, nil
}

func (c *Client) HotelsInRegion(ctx context.Context, regionID domain.RegionID) ([]domain.Facility, error) {
	_ = ctx
	return filterByType(regionFacilities[regionID], domain.FacilityTypeHotel), nil
}

func (c *Client) RestaurantsInRegion(ctx context.Context, regionID domain.RegionID) ([]domain.Facility, error) {
	_ = ctx
	return filterByType(regionFacilities[regionID], domain.FacilityTypeRestaurant), nil
}

func (c *Client) FacilityByID(ctx context.Context, id domain.FacilityID) (domain.Facility, bool, error) {
	_ = ctx
	f, ok := c.byID[id]
	return f, ok, nil
}

func (c *Client) FacilityByPlaceID(ctx context.Context, placeID string, regionID domain.RegionID) (domain.Facility, bool, error) {
	_ = ctx
	f, ok := placeFacilities[regionID][placeID]
	return f, ok, nil
}

func filterByType(fs []domain.Facility, t domain.FacilityType) []domain.Facility {
	out := make([]domain.Facility, 0, len(fs))
	for _, f := range fs {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}
