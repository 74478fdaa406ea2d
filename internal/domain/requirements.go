package domain

import (
	"errors"
	"time"
)

// PreferenceConstraint is one preference tag supplied at intake, with an
// optional human-readable description. Preferences are replaced wholesale
// when the user regenerates the trip style.
type PreferenceConstraint struct {
	Tag         string
	Description string
}

// TripRequirements captures what the traveler asked for. It is created once
// at intake and never mutated afterwards; regeneration produces a new
// preference set, not a changed requirements record.
type TripRequirements struct {
	UserID      UserID
	Destination string

	Start time.Time
	End   time.Time

	// Budget is the total ceiling in rials; nil means unconstrained.
	Budget *int64

	TravelersCount int
	Preferences    []PreferenceConstraint
}

var (
	ErrInvalidDateRange = errors.New("end must be after start")
	ErrInvalidTravelers = errors.New("travelers count must be at least 1")
)

func (r TripRequirements) Validate() error {
	if !r.End.After(r.Start) {
		return ErrInvalidDateRange
	}
	if r.TravelersCount < 1 {
		return ErrInvalidTravelers
	}
	return nil
}

// Nights is the number of hotel nights between start and end.
func (r TripRequirements) Nights() int {
	n := int(r.End.Sub(r.Start).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// Days is the number of calendar days with plannable activity slots.
// A three-night trip has three activity days; the departure day is not
// planned.
func (r TripRequirements) Days() int {
	return r.Nights()
}

// PreferenceTags returns the bare tags in intake order.
func (r TripRequirements) PreferenceTags() []string {
	out := make([]string, 0, len(r.Preferences))
	for _, p := range r.Preferences {
		out = append(out, p.Tag)
	}
	return out
}
