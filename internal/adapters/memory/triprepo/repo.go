package triprepo

import (
	"context"
	"sort"
	"sync"

	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
)

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.TripID]domain.Trip
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.TripID]domain.Trip),
	}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	_ = ctx
	if t.ID == "" {
		return triprepo.ErrAlreadyExists // treat empty ID as invalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return triprepo.ErrAlreadyExists
	}
	r.byID[t.ID] = cloneTrip(t)
	return nil
}

// Save overwrites the stored trip. Plans and the hotel schedule are replaced
// wholesale: nothing of the prior plan version survives.
func (r *Repo) Save(ctx context.Context, t domain.Trip) error {
	_ = ctx
	if t.ID == "" {
		return triprepo.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[t.ID] = cloneTrip(t)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.Trip{}, triprepo.ErrNotFound
	}
	return cloneTrip(t), nil
}

func (r *Repo) ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Trip, 0)
	for _, t := range r.byID {
		if t.Status == status {
			out = append(out, cloneTrip(t))
		}
	}
	sortTrips(out)
	return out, nil
}

func cloneTrip(t domain.Trip) domain.Trip {
	cp := t
	if t.DailyPlans != nil {
		cp.DailyPlans = append([]domain.DailyPlan(nil), t.DailyPlans...)
	}
	if t.Hotel != nil {
		h := *t.Hotel
		cp.Hotel = &h
	}
	if t.Requirements.Budget != nil {
		b := *t.Requirements.Budget
		cp.Requirements.Budget = &b
	}
	if t.Requirements.Preferences != nil {
		cp.Requirements.Preferences = append([]domain.PreferenceConstraint(nil), t.Requirements.Preferences...)
	}
	return cp
}

func sortTrips(ts []domain.Trip) {
	// Deterministic order: start date ascending, then id.
	sort.Slice(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if !a.Requirements.Start.Equal(b.Requirements.Start) {
			return a.Requirements.Start.Before(b.Requirements.Start)
		}
		return string(a.ID) < string(b.ID)
	})
}
