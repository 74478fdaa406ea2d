// Package recommend defines the personalized-recommendation capability.
package recommend

import (
	"context"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// Item is one recommended place. PlaceID keys into the facilities catalog
// via FacilityByPlaceID.
type Item struct {
	PlaceID string
	Name    string
	Tags    []string
	Score   float64
}

type Service interface {
	PersonalizedRecommendations(ctx context.Context, userID domain.UserID, destination string, season domain.Season) ([]Item, error)
}
