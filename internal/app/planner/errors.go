package planner

import "errors"

// Fatal planning errors. A fatal error aborts the run; no partially
// materialized trip is persisted.
var (
	// ErrUnresolvedDestination: the destination text matches no known
	// region. There is no fallback.
	ErrUnresolvedDestination = errors.New("destination could not be resolved to a region")

	// ErrNoFeasibleItinerary: zero activities survived filtering and
	// clustering for the whole trip.
	ErrNoFeasibleItinerary = errors.New("no feasible itinerary")

	// ErrLockedItemConflict: a user-locked activity cannot be scheduled.
	ErrLockedItemConflict = errors.New("locked activity cannot be scheduled")

	// ErrBudgetInfeasible: after exhausting substitutions and removals,
	// the locked cost alone exceeds the budget.
	ErrBudgetInfeasible = errors.New("budget infeasible")
)
