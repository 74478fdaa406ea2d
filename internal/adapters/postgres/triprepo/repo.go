// Package triprepo is the Postgres implementation of triprepo.Repository.
//
// Layout: a trips row per aggregate, with daily_plans, trip_preferences, and
// hotel_schedules child tables (DDL in ../schema.sql). Save replaces the
// children wholesale inside one transaction so a regeneration leaves no rows
// from the prior plan.
package triprepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarino/trip-planner-core/internal/adapters/postgres"
	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	tripUUID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO trips (
				external_id,
				user_id,
				destination,
				start_date,
				end_date,
				budget,
				travelers_count,
				status,
				created_at,
				updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			tripUUID,
			string(t.Requirements.UserID),
			t.Requirements.Destination,
			t.Requirements.Start.UTC(),
			t.Requirements.End.UTC(),
			t.Requirements.Budget,
			t.Requirements.TravelersCount,
			string(t.Status),
			t.CreatedAt.UTC(),
			t.UpdatedAt.UTC(),
		)
		if err != nil {
			if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
				return triprepo.ErrAlreadyExists
			}
			return err
		}

		if err := insertPreferences(ctx, tx, tripUUID, t.Requirements.Preferences); err != nil {
			return err
		}
		if err := insertPlans(ctx, tx, tripUUID, t.DailyPlans); err != nil {
			return err
		}
		return upsertHotel(ctx, tx, tripUUID, t.Hotel)
	})
}

func (r *Repo) Save(ctx context.Context, t domain.Trip) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	tripUUID, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trip id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE trips
			SET status = $2,
			    updated_at = $3
			WHERE external_id = $1
		`, tripUUID, string(t.Status), t.UpdatedAt.UTC())
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return triprepo.ErrNotFound
		}

		// Wholesale replacement of the plan rows.
		_, err = tx.Exec(ctx, `
			DELETE FROM daily_plans
			WHERE trip_id = (SELECT id FROM trips WHERE external_id = $1)
		`, tripUUID)
		if err != nil {
			return err
		}
		if err := insertPlans(ctx, tx, tripUUID, t.DailyPlans); err != nil {
			return err
		}
		return upsertHotel(ctx, tx, tripUUID, t.Hotel)
	})
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	if r.pool == nil {
		return domain.Trip{}, errors.New("nil postgres pool")
	}
	tripUUID, err := uuid.Parse(string(id))
	if err != nil {
		return domain.Trip{}, triprepo.ErrNotFound
	}

	t, err := r.loadCore(ctx, tripUUID)
	if err != nil {
		return domain.Trip{}, err
	}
	return r.loadChildren(ctx, tripUUID, t)
}

func (r *Repo) ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT external_id
		FROM trips
		WHERE status = $1
		ORDER BY start_date ASC, external_id ASC
	`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Trip, 0, len(ids))
	for _, tripUUID := range ids {
		t, err := r.loadCore(ctx, tripUUID)
		if err != nil {
			return nil, err
		}
		t, err = r.loadChildren(ctx, tripUUID, t)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Repo) loadCore(ctx context.Context, tripUUID uuid.UUID) (domain.Trip, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			external_id,
			user_id,
			destination,
			start_date,
			end_date,
			budget,
			travelers_count,
			status,
			created_at,
			updated_at
		FROM trips
		WHERE external_id = $1
	`, tripUUID)

	var (
		extID       uuid.UUID
		userID      string
		destination string
		startDate   time.Time
		endDate     time.Time
		budget      *int64
		travelers   int
		status      string
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&extID, &userID, &destination, &startDate, &endDate, &budget, &travelers, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, triprepo.ErrNotFound
		}
		return domain.Trip{}, err
	}

	return domain.Trip{
		ID:     domain.TripID(extID.String()),
		Status: domain.TripStatus(status),
		Requirements: domain.TripRequirements{
			UserID:         domain.UserID(userID),
			Destination:    destination,
			Start:          startDate.UTC(),
			End:            endDate.UTC(),
			Budget:         budget,
			TravelersCount: travelers,
		},
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func (r *Repo) loadChildren(ctx context.Context, tripUUID uuid.UUID, t domain.Trip) (domain.Trip, error) {
	prefs, err := loadPreferences(ctx, r.pool, tripUUID)
	if err != nil {
		return domain.Trip{}, err
	}
	t.Requirements.Preferences = prefs

	plans, err := loadPlans(ctx, r.pool, tripUUID)
	if err != nil {
		return domain.Trip{}, err
	}
	t.DailyPlans = plans

	hotel, err := loadHotel(ctx, r.pool, tripUUID)
	if err != nil {
		return domain.Trip{}, err
	}
	t.Hotel = hotel
	return t, nil
}

// --- helpers ---

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func insertPreferences(ctx context.Context, tx pgx.Tx, tripUUID uuid.UUID, prefs []domain.PreferenceConstraint) error {
	for i, p := range prefs {
		_, err := tx.Exec(ctx, `
			INSERT INTO trip_preferences (trip_id, tag, description, sort_order)
			VALUES ((SELECT id FROM trips WHERE external_id = $1), $2, $3, $4)
		`, tripUUID, p.Tag, p.Description, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertPlans(ctx context.Context, tx pgx.Tx, tripUUID uuid.UUID, plans []domain.DailyPlan) error {
	for i, p := range plans {
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_plans (
				trip_id, facility_id, start_time, end_time,
				activity_type, description, source, cost, locked, sort_order
			) VALUES (
				(SELECT id FROM trips WHERE external_id = $1),
				$2,$3,$4,$5,$6,$7,$8,$9,$10
			)
		`,
			tripUUID,
			int64(p.FacilityID),
			p.Start.UTC(),
			p.End.UTC(),
			string(p.ActivityType),
			p.Description,
			string(p.Source),
			p.Cost,
			p.Locked,
			i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func upsertHotel(ctx context.Context, tx pgx.Tx, tripUUID uuid.UUID, h *domain.HotelSchedule) error {
	if h == nil {
		_, err := tx.Exec(ctx, `
			DELETE FROM hotel_schedules
			WHERE trip_id = (SELECT id FROM trips WHERE external_id = $1)
		`, tripUUID)
		return err
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO hotel_schedules (trip_id, facility_id, hotel_name, check_in, check_out, rooms_count, cost)
		VALUES ((SELECT id FROM trips WHERE external_id = $1), $2, $3, $4, $5, $6, $7)
		ON CONFLICT (trip_id) DO UPDATE SET
			facility_id = EXCLUDED.facility_id,
			hotel_name = EXCLUDED.hotel_name,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			rooms_count = EXCLUDED.rooms_count,
			cost = EXCLUDED.cost
	`, tripUUID, int64(h.FacilityID), h.HotelName, h.CheckIn.UTC(), h.CheckOut.UTC(), h.RoomsCount, h.Cost)
	return err
}

func loadPreferences(ctx context.Context, q querier, tripUUID uuid.UUID) ([]domain.PreferenceConstraint, error) {
	rows, err := q.Query(ctx, `
		SELECT tag, description
		FROM trip_preferences
		WHERE trip_id = (SELECT id FROM trips WHERE external_id = $1)
		ORDER BY sort_order ASC
	`, tripUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PreferenceConstraint
	for rows.Next() {
		var p domain.PreferenceConstraint
		if err := rows.Scan(&p.Tag, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadPlans(ctx context.Context, q querier, tripUUID uuid.UUID) ([]domain.DailyPlan, error) {
	rows, err := q.Query(ctx, `
		SELECT facility_id, start_time, end_time, activity_type, description, source, cost, locked
		FROM daily_plans
		WHERE trip_id = (SELECT id FROM trips WHERE external_id = $1)
		ORDER BY start_time ASC, facility_id ASC
	`, tripUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyPlan
	for rows.Next() {
		var (
			p          domain.DailyPlan
			facilityID int64
			activity   string
			source     string
			start, end time.Time
		)
		if err := rows.Scan(&facilityID, &start, &end, &activity, &p.Description, &source, &p.Cost, &p.Locked); err != nil {
			return nil, err
		}
		p.FacilityID = domain.FacilityID(facilityID)
		p.Start = start.UTC()
		p.End = end.UTC()
		p.ActivityType = domain.ActivityType(activity)
		p.Source = domain.PlanSource(source)
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadHotel(ctx context.Context, pool *pgxpool.Pool, tripUUID uuid.UUID) (*domain.HotelSchedule, error) {
	row := pool.QueryRow(ctx, `
		SELECT facility_id, hotel_name, check_in, check_out, rooms_count, cost
		FROM hotel_schedules
		WHERE trip_id = (SELECT id FROM trips WHERE external_id = $1)
	`, tripUUID)

	var (
		h          domain.HotelSchedule
		facilityID int64
	)
	if err := row.Scan(&facilityID, &h.HotelName, &h.CheckIn, &h.CheckOut, &h.RoomsCount, &h.Cost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	h.FacilityID = domain.FacilityID(facilityID)
	h.CheckIn = h.CheckIn.UTC()
	h.CheckOut = h.CheckOut.UTC()
	return &h, nil
}
