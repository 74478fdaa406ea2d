package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

// TimeConstraintsValidationStage assigns concrete time windows to the
// clustered items and verifies each window fits the facility's opening hours
// with enough travel slack from the prior stop. Items that cannot fit are
// shifted while slack exists; otherwise the lowest-priority conflicting item
// is dropped with a TIME_CONFLICT violation.
//
// Locked plans are never shifted or dropped. A locked plan that cannot be
// honored (closed facility, window outside opening hours) is fatal.
type TimeConstraintsValidationStage struct {
	facilities portfacilities.Service
}

func NewTimeConstraintsValidationStage(fs portfacilities.Service) *TimeConstraintsValidationStage {
	return &TimeConstraintsValidationStage{facilities: fs}
}

func (s *TimeConstraintsValidationStage) Name() string { return "TimeConstraintsValidation" }

func (s *TimeConstraintsValidationStage) Execute(ctx context.Context, tc *TripContext) error {
	if err := s.checkLockedPlans(ctx, tc); err != nil {
		return err
	}

	for day := range tc.Days {
		if len(tc.Days[day]) == 0 {
			continue
		}
		items := tc.Days[day]
		locked := tc.LockedPlansOn(day)

		for len(items) > 0 {
			scheduled, conflict := s.scheduleDay(ctx, tc.DayDate(day), items, locked)
			if conflict < 0 {
				items = scheduled
				break
			}
			// Items before the first infeasible index already fit; only
			// the conflicting tail is eligible for dropping.
			dropIdx := conflict + lowestScoreIndex(items[conflict:])
			tc.AddViolation(domain.ViolationTimeConflict, domain.SeverityWarning,
				fmt.Sprintf("dropped %q: no feasible window on day %d", items[dropIdx].Facility.Name, day+1))
			items = append(items[:dropIdx:dropIdx], items[dropIdx+1:]...)
		}
		tc.Days[day] = items
	}
	return nil
}

// checkLockedPlans verifies every preserved locked plan is still honorable.
func (s *TimeConstraintsValidationStage) checkLockedPlans(ctx context.Context, tc *TripContext) error {
	for _, p := range tc.PreservedPlans {
		if !p.Locked {
			continue
		}
		if tc.ExcludedFacilities[p.FacilityID] {
			return fmt.Errorf("%w: facility %d is closed", ErrLockedItemConflict, p.FacilityID)
		}
		f, ok, err := s.facilities.FacilityByID(ctx, p.FacilityID)
		if err != nil || !ok {
			continue // unknown facility: keep the plan as the user pinned it
		}
		open, close := openWindow(truncateDay(p.Start), f)
		if p.Start.Before(open) || p.End.After(close) {
			return fmt.Errorf("%w: %q window outside opening hours", ErrLockedItemConflict, f.Name)
		}
	}
	return nil
}

// scheduleDay walks the day's items in route order assigning windows.
// Returns the scheduled items and -1, or the index of the first item that
// cannot fit.
func (s *TimeConstraintsValidationStage) scheduleDay(ctx context.Context, dayDate time.Time, items []ScheduledItem, locked []domain.DailyPlan) ([]ScheduledItem, int) {
	cursor := dayDate.Add(dayStartHour * time.Hour)
	dayEnd := dayDate.Add(dayEndHour * time.Hour)

	out := make([]ScheduledItem, len(items))
	copy(out, items)

	var prev *domain.Facility
	for i := range out {
		f := out[i].Facility

		start := cursor
		if prev != nil {
			info, err := s.facilities.TravelInfo(ctx, prev.ID, f.ID)
			travel := 5 * time.Minute
			if err == nil {
				travel = time.Duration(info.DurationMinutes) * time.Minute
			}
			start = cursor.Add(travel)
		}

		open, close := openWindow(dayDate, f)
		if start.Before(open) {
			start = open // shift forward into opening hours
		}
		start = afterLockedWindows(start, time.Duration(visitMinutes(f))*time.Minute, locked)

		end := start.Add(time.Duration(visitMinutes(f)) * time.Minute)
		if end.After(close) || end.After(dayEnd) {
			return nil, i
		}

		out[i].Start = start
		out[i].End = end
		cursor = end
		prev = &out[i].Facility
	}
	return out, -1
}

// afterLockedWindows pushes the proposed start past any locked plan the
// visit would overlap. Locked windows are immovable.
func afterLockedWindows(start time.Time, visit time.Duration, locked []domain.DailyPlan) time.Time {
	for moved := true; moved; {
		moved = false
		end := start.Add(visit)
		for _, p := range locked {
			if start.Before(p.End) && end.After(p.Start) {
				start = p.End
				moved = true
			}
		}
	}
	return start
}

func openWindow(dayDate time.Time, f domain.Facility) (time.Time, time.Time) {
	open := dayDate.Add(time.Duration(f.OpeningHour) * time.Hour)
	close := dayDate.Add(time.Duration(f.ClosingHour) * time.Hour)
	return open, close
}

func lowestScoreIndex(items []ScheduledItem) int {
	worst := 0
	for i := 1; i < len(items); i++ {
		if items[i].Score < items[worst].Score ||
			(items[i].Score == items[worst].Score && items[i].Facility.ID > items[worst].Facility.ID) {
			worst = i
		}
	}
	return worst
}
