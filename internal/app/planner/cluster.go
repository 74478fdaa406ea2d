package planner

import (
	"context"
	"fmt"

	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/geo"
)

// ClusterAndRouteStage groups the ranked candidates into per-day clusters by
// geographic locality and orders each day greedy nearest-next. This is a
// bounded, deterministic heuristic, not a vehicle-routing solver.
//
// Ties on distance break by higher priority score, then lower facility id.
// Days are capped at slotsPerDay; excess lowest-priority items are dropped
// with a CAPACITY violation. The stage itself never hard-fails.
type ClusterAndRouteStage struct{}

func NewClusterAndRouteStage() *ClusterAndRouteStage {
	return &ClusterAndRouteStage{}
}

func (s *ClusterAndRouteStage) Name() string { return "ClusterAndRoute" }

func (s *ClusterAndRouteStage) Execute(ctx context.Context, tc *TripContext) error {
	_ = ctx
	days := tc.Requirements.Days()
	tc.Days = make([][]ScheduledItem, days)

	remaining := make([]Candidate, 0, len(tc.Candidates))
	for _, c := range tc.Candidates {
		if tc.ExcludedFacilities[c.Facility.ID] {
			continue
		}
		remaining = append(remaining, c)
	}

	for day := 0; day < days; day++ {
		if !tc.DayInWindow(day) {
			// Outside the replanning window: the day keeps its
			// preserved plans and receives no new assignments.
			continue
		}
		if len(remaining) == 0 {
			break
		}

		// Seed with the highest-priority remaining candidate, then
		// chain nearest-next from the previous stop.
		seedIdx := highestPriorityIndex(remaining)
		cluster := []ScheduledItem{{Candidate: remaining[seedIdx], Day: day}}
		remaining = removeAt(remaining, seedIdx)

		for len(cluster) < slotsPerDay && len(remaining) > 0 {
			prev := cluster[len(cluster)-1].Facility
			nextIdx := nearestIndex(remaining, prev)
			cluster = append(cluster, ScheduledItem{Candidate: remaining[nextIdx], Day: day})
			remaining = removeAt(remaining, nextIdx)
		}
		tc.Days[day] = cluster
	}

	for _, c := range remaining {
		tc.AddViolation(domain.ViolationCapacity, domain.SeverityInfo,
			fmt.Sprintf("dropped %q: daily slot capacity reached", c.Facility.Name))
	}
	return nil
}

func highestPriorityIndex(cs []Candidate) int {
	best := 0
	for i := 1; i < len(cs); i++ {
		if cs[i].Score > cs[best].Score ||
			(cs[i].Score == cs[best].Score && cs[i].Facility.ID < cs[best].Facility.ID) {
			best = i
		}
	}
	return best
}

func nearestIndex(cs []Candidate, from domain.Facility) int {
	origin := geo.Point{Latitude: from.Latitude, Longitude: from.Longitude}
	best := 0
	bestDist := geo.DistanceKm(origin, geo.Point{Latitude: cs[0].Facility.Latitude, Longitude: cs[0].Facility.Longitude})
	for i := 1; i < len(cs); i++ {
		d := geo.DistanceKm(origin, geo.Point{Latitude: cs[i].Facility.Latitude, Longitude: cs[i].Facility.Longitude})
		switch {
		case d < bestDist:
			best, bestDist = i, d
		case d == bestDist:
			if cs[i].Score > cs[best].Score ||
				(cs[i].Score == cs[best].Score && cs[i].Facility.ID < cs[best].Facility.ID) {
				best = i
			}
		}
	}
	return best
}

func removeAt(cs []Candidate, i int) []Candidate {
	out := make([]Candidate, 0, len(cs)-1)
	out = append(out, cs[:i]...)
	return append(out, cs[i+1:]...)
}
