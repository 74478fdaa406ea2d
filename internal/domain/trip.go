package domain

import "time"

type TripStatus string

const (
	TripStatusDraft             TripStatus = "DRAFT"
	TripStatusPlanned           TripStatus = "PLANNED"
	TripStatusNeedsRegeneration TripStatus = "NEEDS_REGENERATION"
	TripStatusConfirmed         TripStatus = "CONFIRMED"
)

// PlanSource records where a scheduled activity came from.
type PlanSource string

const (
	PlanSourceRecommendation PlanSource = "RECOMMENDATION"
	PlanSourceCatalog        PlanSource = "CATALOG"
)

type ActivityType string

const (
	ActivityCulture     ActivityType = "CULTURE"
	ActivityFood        ActivityType = "FOOD"
	ActivityNature      ActivityType = "NATURE"
	ActivityShopping    ActivityType = "SHOPPING"
	ActivitySightseeing ActivityType = "SIGHTSEEING"
)

// DailyPlan is one scheduled activity inside a trip.
//
// Invariants: Start < End; the window falls inside the trip's date range and
// within a single calendar day; windows within one day do not overlap.
type DailyPlan struct {
	FacilityID FacilityID

	Start time.Time
	End   time.Time

	ActivityType ActivityType
	Description  string
	Source       PlanSource

	Cost int64

	// Locked plans are user-pinned: replanning must not move, retype,
	// reprice, or drop them.
	Locked bool
}

// HotelSchedule is the lodging reservation for a trip. Exactly one per trip;
// it spans the whole trip window.
type HotelSchedule struct {
	FacilityID FacilityID
	HotelName  string

	CheckIn  time.Time
	CheckOut time.Time

	RoomsCount int
	Cost       int64
}

// Trip is the aggregate root produced by the planning pipeline.
type Trip struct {
	ID     TripID
	Status TripStatus

	Requirements TripRequirements

	// DailyPlans are ordered by start time.
	DailyPlans []DailyPlan
	Hotel      *HotelSchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCost is the aggregate cost invariant: the sum of all daily plan costs
// plus the hotel schedule cost.
func (t Trip) TotalCost() int64 {
	var total int64
	for _, p := range t.DailyPlans {
		total += p.Cost
	}
	if t.Hotel != nil {
		total += t.Hotel.Cost
	}
	return total
}

// LockedPlans returns the user-pinned plans, in order.
func (t Trip) LockedPlans() []DailyPlan {
	var out []DailyPlan
	for _, p := range t.DailyPlans {
		if p.Locked {
			out = append(out, p)
		}
	}
	return out
}

// RoomsFor sizes the hotel reservation: two guests per room.
func RoomsFor(travelers int) int {
	if travelers < 1 {
		travelers = 1
	}
	return (travelers + 1) / 2
}
