package planner

import (
	"context"
	"sort"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// FinalArrangementStage materializes the working context into the trip
// aggregate: preserved plans carried over byte-for-byte, newly scheduled
// items converted to daily plans, and the hotel reservation attached.
type FinalArrangementStage struct{}

func NewFinalArrangementStage() *FinalArrangementStage {
	return &FinalArrangementStage{}
}

func (s *FinalArrangementStage) Name() string { return "FinalArrangement" }

func (s *FinalArrangementStage) Execute(ctx context.Context, tc *TripContext) error {
	_ = ctx

	plans := make([]domain.DailyPlan, 0, len(tc.PreservedPlans)+tc.ScheduledCount())
	plans = append(plans, tc.PreservedPlans...)

	for _, day := range tc.Days {
		for _, item := range day {
			plans = append(plans, domain.DailyPlan{
				FacilityID:   item.Facility.ID,
				Start:        item.Start,
				End:          item.End,
				ActivityType: activityTypeFor(item.Facility),
				Description:  item.Facility.Description,
				Source:       item.Source,
				Cost:         item.Cost,
			})
		}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		if !plans[i].Start.Equal(plans[j].Start) {
			return plans[i].Start.Before(plans[j].Start)
		}
		return plans[i].FacilityID < plans[j].FacilityID
	})

	tc.Trip.DailyPlans = plans
	if tc.ChosenHotel != nil {
		tc.Trip.Hotel = &domain.HotelSchedule{
			FacilityID: tc.ChosenHotel.ID,
			HotelName:  tc.ChosenHotel.Name,
			CheckIn:    tc.Requirements.Start,
			CheckOut:   tc.Requirements.End,
			RoomsCount: domain.RoomsFor(tc.Requirements.TravelersCount),
			Cost:       tc.HotelCost,
		}
	}
	tc.Trip.Status = domain.TripStatusPlanned
	return nil
}
