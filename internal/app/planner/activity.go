package planner

import "github.com/safarino/trip-planner-core/internal/domain"

// activityTypeFor derives the plan's activity tag from the facility.
// Restaurants are always FOOD; attractions map from their catalog tags.
func activityTypeFor(f domain.Facility) domain.ActivityType {
	if f.Type == domain.FacilityTypeRestaurant {
		return domain.ActivityFood
	}
	switch {
	case f.HasTag("history") || f.HasTag("culture"):
		return domain.ActivityCulture
	case f.HasTag("nature"):
		return domain.ActivityNature
	case f.HasTag("shopping"):
		return domain.ActivityShopping
	default:
		return domain.ActivitySightseeing
	}
}

// isOutdoor reports whether the facility is weather-exposed.
func isOutdoor(f domain.Facility) bool {
	return f.HasTag("nature")
}

// visitMinutes returns the facility's visit duration with a sane default.
func visitMinutes(f domain.Facility) int {
	if f.VisitDurationMinutes > 0 {
		return f.VisitDurationMinutes
	}
	return defaultVisitMinutes
}
