package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/safarino/trip-planner-core/internal/domain"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

// BudgetAnalysisStage prices the plan and enforces the budget ceiling.
//
// Downgrade policy, in order, repeated until within budget or exhausted:
// a cheaper hotel, then substituting the highest-cost optional item with the
// cheapest alternative of the same activity type, then dropping the
// lowest-priority optional item. Locked plans are never touched. Each action
// records a BUDGET violation with severity proportional to the overage.
//
// Fatal only when, after exhausting all of the above, the locked cost alone
// exceeds the budget.
type BudgetAnalysisStage struct {
	facilities portfacilities.Service
}

func NewBudgetAnalysisStage(fs portfacilities.Service) *BudgetAnalysisStage {
	return &BudgetAnalysisStage{facilities: fs}
}

func (s *BudgetAnalysisStage) Name() string { return "BudgetAnalysis" }

func (s *BudgetAnalysisStage) Execute(ctx context.Context, tc *TripContext) error {
	req := tc.Requirements

	// Price every scheduled item through the cost-estimate port.
	for day := range tc.Days {
		for i := range tc.Days[day] {
			item := &tc.Days[day][i]
			est, err := s.facilities.CostEstimate(ctx, item.Facility.ID, item.Start, item.Start.AddDate(0, 0, 1))
			if err != nil {
				item.Cost = item.Facility.Cost
				continue
			}
			item.Cost = est.Amount
		}
	}

	if tc.ChosenHotel == nil {
		if err := s.chooseHotel(ctx, tc); err != nil {
			return err
		}
	}

	if req.Budget == nil {
		return nil
	}
	budget := *req.Budget

	var fixedCost, lockedCost int64
	for _, p := range tc.PreservedPlans {
		fixedCost += p.Cost
		if p.Locked {
			lockedCost += p.Cost
		}
	}

	for {
		total := tc.HotelCost + fixedCost + scheduledCost(tc)
		if total <= budget {
			return nil
		}
		over := total - budget

		if s.downgradeHotel(ctx, tc) {
			tc.AddViolation(domain.ViolationBudget, overSeverity(over, budget),
				fmt.Sprintf("switched to cheaper hotel %q to fit budget", tc.ChosenHotel.Name))
			continue
		}
		if name, ok := s.substituteCostliest(tc); ok {
			tc.AddViolation(domain.ViolationBudget, overSeverity(over, budget),
				fmt.Sprintf("substituted %q with a cheaper alternative", name))
			continue
		}
		if name, ok := dropCheapestPriority(tc); ok {
			tc.AddViolation(domain.ViolationBudget, overSeverity(over, budget),
				fmt.Sprintf("dropped %q to fit budget", name))
			continue
		}

		// Nothing optional left to adjust.
		if lockedCost > budget {
			return fmt.Errorf("%w: locked cost %d exceeds budget %d", ErrBudgetInfeasible, lockedCost, budget)
		}
		tc.AddViolation(domain.ViolationBudget, domain.SeverityHigh,
			fmt.Sprintf("plan remains %d over budget after exhausting adjustments", total-budget))
		return nil
	}
}

// chooseHotel picks the best-rated lodging option; affordability is handled
// by the downgrade loop.
func (s *BudgetAnalysisStage) chooseHotel(ctx context.Context, tc *TripContext) error {
	if len(tc.Hotels) == 0 {
		return nil // no lodging options; trip proceeds without a hotel
	}
	sort.SliceStable(tc.Hotels, func(i, j int) bool {
		if tc.Hotels[i].Rating != tc.Hotels[j].Rating {
			return tc.Hotels[i].Rating > tc.Hotels[j].Rating
		}
		return tc.Hotels[i].ID < tc.Hotels[j].ID
	})
	h := tc.Hotels[0]
	cost, err := s.hotelCost(ctx, tc, h)
	if err != nil {
		return err
	}
	tc.ChosenHotel = &h
	tc.HotelCost = cost
	return nil
}

// downgradeHotel moves to the best-rated hotel strictly cheaper than the
// current choice. Returns false when already at the cheapest option.
func (s *BudgetAnalysisStage) downgradeHotel(ctx context.Context, tc *TripContext) bool {
	if tc.ChosenHotel == nil || tc.Replan {
		// The hotel reservation is preserved across replanning.
		return false
	}
	var best *domain.Facility
	for i := range tc.Hotels {
		h := &tc.Hotels[i]
		if h.Cost >= tc.ChosenHotel.Cost {
			continue
		}
		if best == nil || h.Rating > best.Rating || (h.Rating == best.Rating && h.Cost < best.Cost) {
			best = h
		}
	}
	if best == nil {
		return false
	}
	cost, err := s.hotelCost(ctx, tc, *best)
	if err != nil {
		return false
	}
	tc.ChosenHotel = best
	tc.HotelCost = cost
	return true
}

func (s *BudgetAnalysisStage) hotelCost(ctx context.Context, tc *TripContext, h domain.Facility) (int64, error) {
	req := tc.Requirements
	est, err := s.facilities.CostEstimate(ctx, h.ID, req.Start, req.End)
	if err != nil {
		return 0, fmt.Errorf("estimate hotel cost: %w", err)
	}
	return est.Amount * int64(domain.RoomsFor(req.TravelersCount)), nil
}

// substituteCostliest swaps the single most expensive scheduled item for the
// cheapest unscheduled pool candidate of the same activity type. The
// substitute inherits the vacated time window.
func (s *BudgetAnalysisStage) substituteCostliest(tc *TripContext) (string, bool) {
	day, idx := costliestItem(tc)
	if day < 0 {
		return "", false
	}
	target := tc.Days[day][idx]

	scheduled := scheduledFacilityIDs(tc)
	var sub *Candidate
	for i := range tc.Candidates {
		c := &tc.Candidates[i]
		if scheduled[c.Facility.ID] || tc.ExcludedFacilities[c.Facility.ID] {
			continue
		}
		if activityTypeFor(c.Facility) != activityTypeFor(target.Facility) {
			continue
		}
		if c.Facility.Cost >= target.Cost {
			continue
		}
		if sub == nil || c.Facility.Cost < sub.Facility.Cost {
			sub = c
		}
	}
	if sub == nil {
		return "", false
	}

	replaced := target.Facility.Name
	tc.Days[day][idx] = ScheduledItem{
		Candidate: *sub,
		Day:       day,
		Start:     target.Start,
		End:       target.End,
		Cost:      sub.Facility.Cost,
	}
	return replaced, true
}

func dropCheapestPriority(tc *TripContext) (string, bool) {
	bestDay, bestIdx := -1, -1
	for day := range tc.Days {
		for i := range tc.Days[day] {
			if bestDay < 0 || tc.Days[day][i].Score < tc.Days[bestDay][bestIdx].Score {
				bestDay, bestIdx = day, i
			}
		}
	}
	if bestDay < 0 {
		return "", false
	}
	name := tc.Days[bestDay][bestIdx].Facility.Name
	tc.Days[bestDay] = append(tc.Days[bestDay][:bestIdx:bestIdx], tc.Days[bestDay][bestIdx+1:]...)
	return name, true
}

func costliestItem(tc *TripContext) (int, int) {
	bestDay, bestIdx := -1, -1
	var bestCost int64
	for day := range tc.Days {
		for i := range tc.Days[day] {
			if c := tc.Days[day][i].Cost; bestDay < 0 || c > bestCost {
				bestDay, bestIdx, bestCost = day, i, c
			}
		}
	}
	if bestCost == 0 {
		return -1, -1 // nothing worth substituting
	}
	return bestDay, bestIdx
}

func scheduledCost(tc *TripContext) int64 {
	var total int64
	for _, day := range tc.Days {
		for _, item := range day {
			total += item.Cost
		}
	}
	return total
}

func scheduledFacilityIDs(tc *TripContext) map[domain.FacilityID]bool {
	out := make(map[domain.FacilityID]bool)
	for _, day := range tc.Days {
		for _, item := range day {
			out[item.Facility.ID] = true
		}
	}
	return out
}

func overSeverity(over, budget int64) domain.ViolationSeverity {
	switch {
	case over*4 > budget: // more than 25% over
		return domain.SeverityHigh
	case over*10 > budget: // more than 10% over
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}
