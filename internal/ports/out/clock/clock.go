package clock

import "time"

// Clock provides time to the planning core. The orchestrator stamps trips
// through this interface so tests can pin the clock.
type Clock interface {
	Now() time.Time
}
