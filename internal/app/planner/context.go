package planner

import (
	"time"

	"github.com/safarino/trip-planner-core/internal/domain"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

// Candidate is a facility under consideration, with the score assigned by
// PrioritizeActivities.
type Candidate struct {
	Facility domain.Facility
	Source   domain.PlanSource
	Score    float64
}

// ScheduledItem is a candidate placed on a trip day. Start/End are assigned
// by TimeConstraintsValidation.
type ScheduledItem struct {
	Candidate

	Day   int // 0-based offset from the trip start
	Start time.Time
	End   time.Time

	// Cost is the estimated visit cost, set by BudgetAnalysis.
	Cost int64
}

// TripContext is the mutable working record threaded through one planning
// run. It is owned exclusively by that run, never shared across concurrent
// runs, and discarded when the run completes.
type TripContext struct {
	Requirements domain.TripRequirements

	// Trip is the aggregate under construction.
	Trip *domain.Trip

	Region   portfacilities.Region
	Season   domain.Season
	Weather  domain.WeatherInfo
	WikiText string

	// Candidates is the ranked activity pool. After ClusterAndRoute the
	// scheduled subset lives in Days; Candidates remains available as the
	// substitution pool for BudgetAnalysis.
	Candidates []Candidate

	// Hotels are the lodging options in the region (initial planning).
	Hotels []domain.Facility

	// Days holds the per-day clusters, indexed by day offset.
	Days [][]ScheduledItem

	// ChosenHotel and HotelCost are set by BudgetAnalysis.
	ChosenHotel *domain.Facility
	HotelCost   int64

	Violations []domain.ConstraintViolation

	// Replanning scope. Zero values mean a full initial run.
	Replan             bool
	WindowStart        time.Time
	WindowEnd          time.Time
	ExcludedFacilities map[domain.FacilityID]bool

	// PreservedPlans are carried into the final trip untouched: all
	// locked plans, plus unlocked plans outside the affected window.
	PreservedPlans []domain.DailyPlan
}

func NewTripContext(req domain.TripRequirements) *TripContext {
	return &TripContext{
		Requirements:       req,
		WindowStart:        req.Start,
		WindowEnd:          req.End,
		ExcludedFacilities: make(map[domain.FacilityID]bool),
	}
}

// AddViolation appends a non-fatal constraint violation.
func (tc *TripContext) AddViolation(kind domain.ViolationKind, severity domain.ViolationSeverity, message string) {
	tc.Violations = append(tc.Violations, domain.ConstraintViolation{
		Kind:     kind,
		Severity: severity,
		Message:  message,
	})
}

// ScheduledCount returns the number of items currently placed on days.
func (tc *TripContext) ScheduledCount() int {
	n := 0
	for _, day := range tc.Days {
		n += len(day)
	}
	return n
}

// DayDate returns the calendar date of the given day offset.
func (tc *TripContext) DayDate(day int) time.Time {
	d := tc.Requirements.Start.AddDate(0, 0, day)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// DayInWindow reports whether the given day offset falls inside the
// replanning window. Always true for initial runs.
func (tc *TripContext) DayInWindow(day int) bool {
	date := tc.DayDate(day)
	return !date.Before(truncateDay(tc.WindowStart)) && date.Before(tc.WindowEnd)
}

// LockedPlansOn returns the preserved plans occupying the given day.
func (tc *TripContext) LockedPlansOn(day int) []domain.DailyPlan {
	date := tc.DayDate(day)
	var out []domain.DailyPlan
	for _, p := range tc.PreservedPlans {
		if sameDay(p.Start, date) {
			out = append(out, p)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
