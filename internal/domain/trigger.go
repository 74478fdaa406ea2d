package domain

import "time"

type TriggerKind string

const (
	TriggerFacilityClosed TriggerKind = "FACILITY_CLOSED"
	TriggerWeatherAlert   TriggerKind = "WEATHER_ALERT"
	TriggerEventCancelled TriggerKind = "EVENT_CANCELLED"
)

// ChangeTrigger is an externally supplied event describing what must be
// replanned. The event listener that produces it lives outside the core.
type ChangeTrigger struct {
	Kind TriggerKind

	// FacilityID is set for facility closures; zero otherwise.
	FacilityID FacilityID

	// WindowStart/WindowEnd bound the affected part of the trip. Zero
	// values mean the whole trip window.
	WindowStart time.Time
	WindowEnd   time.Time

	Reason string
}

// Window returns the affected window clamped to the given trip range.
func (c ChangeTrigger) Window(tripStart, tripEnd time.Time) (time.Time, time.Time) {
	start, end := c.WindowStart, c.WindowEnd
	if start.IsZero() || start.Before(tripStart) {
		start = tripStart
	}
	if end.IsZero() || end.After(tripEnd) {
		end = tripEnd
	}
	return start, end
}
