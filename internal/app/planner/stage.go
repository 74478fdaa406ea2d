package planner

import "context"

// Stage is one step of the planning pipeline: a pure transform over the
// TripContext with no side effects beyond read-only port calls.
// Implementations are held in an ordered list by the orchestrator and are
// swappable without touching orchestration logic.
type Stage interface {
	Name() string
	Execute(ctx context.Context, tc *TripContext) error
}

// Tuning knobs for the bounded day-trip heuristic.
const (
	// slotsPerDay caps the activities clustered onto one day.
	slotsPerDay = 4

	// dayStartHour/dayEndHour bound the daily activity window.
	dayStartHour = 9
	dayEndHour   = 22

	// defaultVisitMinutes applies when a facility carries no duration.
	defaultVisitMinutes = 90

	// replanSearchRadiusKm scopes the substitute-pool search around the
	// trip's hotel during replanning.
	replanSearchRadiusKm = 15.0
)
