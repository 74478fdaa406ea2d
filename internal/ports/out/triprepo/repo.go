package triprepo

import (
	"context"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// Repository provides access to persisted trips.
//
// Save semantics: the trip's daily plans and hotel schedule are replaced
// wholesale. After a regeneration there must be no rows left from the prior
// version of the plan.
type Repository interface {
	Create(ctx context.Context, t domain.Trip) error
	Save(ctx context.Context, t domain.Trip) error

	GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error)

	// ListByStatus returns trips in the given status, ordered by start
	// date ascending then id. Used by the change-event listener to find
	// planned trips affected by an external event.
	ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error)
}
