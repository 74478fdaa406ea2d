package planner

import (
	"context"
	"sort"
)

// PrioritizeActivitiesStage scores each candidate by preference-tag matches,
// rating, and cost-fit against the budget share, then truncates the ranked
// list to the trip's slot capacity. It never fails: an empty candidate list
// is a valid, low-quality result.
type PrioritizeActivitiesStage struct{}

func NewPrioritizeActivitiesStage() *PrioritizeActivitiesStage {
	return &PrioritizeActivitiesStage{}
}

func (s *PrioritizeActivitiesStage) Name() string { return "PrioritizeActivities" }

func (s *PrioritizeActivitiesStage) Execute(ctx context.Context, tc *TripContext) error {
	_ = ctx
	req := tc.Requirements

	perSlotBudget := s.perSlotBudget(tc)
	for i := range tc.Candidates {
		c := &tc.Candidates[i]
		c.Score = s.score(*c, req.PreferenceTags(), perSlotBudget)
	}

	sort.SliceStable(tc.Candidates, func(i, j int) bool {
		a, b := tc.Candidates[i], tc.Candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Facility.ID < b.Facility.ID
	})

	if cap := slotsPerDay * req.Days(); len(tc.Candidates) > cap {
		tc.Candidates = tc.Candidates[:cap]
	}
	return nil
}

func (s *PrioritizeActivitiesStage) score(c Candidate, preferredTags []string, perSlotBudget int64) float64 {
	matches := 0
	for _, tag := range preferredTags {
		if c.Facility.HasTag(tag) {
			matches++
		}
	}

	costFit := 0.5 // neutral when unconstrained
	if perSlotBudget > 0 {
		ratio := float64(c.Facility.Cost) / float64(perSlotBudget)
		if ratio > 1 {
			ratio = 1
		}
		costFit = 1 - ratio
	}

	return float64(matches)*2.0 + c.Facility.Rating + costFit
}

// perSlotBudget is the budget share available per activity slot after
// reserving the cheapest lodging option. Zero means unconstrained.
func (s *PrioritizeActivitiesStage) perSlotBudget(tc *TripContext) int64 {
	req := tc.Requirements
	if req.Budget == nil {
		return 0
	}
	remaining := *req.Budget
	if cheapest := cheapestHotelCost(tc); cheapest > 0 {
		remaining -= cheapest
	}
	slots := int64(slotsPerDay * req.Days())
	if remaining <= 0 || slots == 0 {
		return 1 // fully constrained: cost-fit collapses toward zero
	}
	return remaining / slots
}

func cheapestHotelCost(tc *TripContext) int64 {
	req := tc.Requirements
	var cheapest int64
	for _, h := range tc.Hotels {
		total := h.Cost * int64(req.Nights())
		if cheapest == 0 || total < cheapest {
			cheapest = total
		}
	}
	return cheapest
}
