package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/safarino/trip-planner-core/internal/domain"
)

// Wire types for the planning API. Dates are calendar dates; plan windows
// are RFC 3339 timestamps.

type PreferenceDTO struct {
	Tag         string `json:"tag"`
	Description string `json:"description,omitempty"`
}

type PlanTripRequest struct {
	UserID      string             `json:"user_id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`

	// Budget is the total ceiling in rials; null or absent means
	// unconstrained.
	Budget nullable.Nullable[int64] `json:"budget,omitempty"`

	TravelersCount int             `json:"travelers_count"`
	Preferences    []PreferenceDTO `json:"preferences,omitempty"`
}

type ReplanTripRequest struct {
	Kind        string     `json:"kind"`
	FacilityID  int64      `json:"facility_id,omitempty"`
	WindowStart *time.Time `json:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

type DailyPlanDTO struct {
	FacilityID   int64     `json:"facility_id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description,omitempty"`
	Source       string    `json:"source"`
	Cost         int64     `json:"cost"`
	Locked       bool      `json:"locked"`
}

type HotelScheduleDTO struct {
	FacilityID int64              `json:"facility_id"`
	HotelName  string             `json:"hotel_name"`
	CheckIn    openapi_types.Date `json:"check_in"`
	CheckOut   openapi_types.Date `json:"check_out"`
	RoomsCount int                `json:"rooms_count"`
	Cost       int64              `json:"cost"`
}

type TripDTO struct {
	TripID      string             `json:"trip_id"`
	Status      string             `json:"status"`
	UserID      string             `json:"user_id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`

	Budget nullable.Nullable[int64] `json:"budget,omitempty"`

	TravelersCount int             `json:"travelers_count"`
	Preferences    []PreferenceDTO `json:"preferences,omitempty"`

	DailyPlans []DailyPlanDTO    `json:"daily_plans"`
	Hotel      *HotelScheduleDTO `json:"hotel,omitempty"`
	TotalCost  int64             `json:"total_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ViolationDTO struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type TripResponse struct {
	Trip       TripDTO        `json:"trip"`
	Violations []ViolationDTO `json:"violations,omitempty"`
}

func (r PlanTripRequest) toRequirements() domain.TripRequirements {
	req := domain.TripRequirements{
		UserID:         domain.UserID(r.UserID),
		Destination:    r.Destination,
		Start:          r.StartDate.Time,
		End:            r.EndDate.Time,
		TravelersCount: r.TravelersCount,
	}
	if r.Budget.IsSpecified() && !r.Budget.IsNull() {
		if v, err := r.Budget.Get(); err == nil {
			req.Budget = &v
		}
	}
	for _, p := range r.Preferences {
		req.Preferences = append(req.Preferences, domain.PreferenceConstraint{
			Tag:         p.Tag,
			Description: p.Description,
		})
	}
	return req
}

func (r ReplanTripRequest) toTrigger() domain.ChangeTrigger {
	trigger := domain.ChangeTrigger{
		Kind:       domain.TriggerKind(r.Kind),
		FacilityID: domain.FacilityID(r.FacilityID),
		Reason:     r.Reason,
	}
	if r.WindowStart != nil {
		trigger.WindowStart = *r.WindowStart
	}
	if r.WindowEnd != nil {
		trigger.WindowEnd = *r.WindowEnd
	}
	return trigger
}

func tripFromDomain(t domain.Trip) TripDTO {
	out := TripDTO{
		TripID:         string(t.ID),
		Status:         string(t.Status),
		UserID:         string(t.Requirements.UserID),
		Destination:    t.Requirements.Destination,
		StartDate:      openapi_types.Date{Time: t.Requirements.Start},
		EndDate:        openapi_types.Date{Time: t.Requirements.End},
		TravelersCount: t.Requirements.TravelersCount,
		DailyPlans:     make([]DailyPlanDTO, 0, len(t.DailyPlans)),
		TotalCost:      t.TotalCost(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.Requirements.Budget != nil {
		out.Budget = nullable.NewNullableWithValue(*t.Requirements.Budget)
	}
	for _, p := range t.Requirements.Preferences {
		out.Preferences = append(out.Preferences, PreferenceDTO{Tag: p.Tag, Description: p.Description})
	}
	for _, p := range t.DailyPlans {
		out.DailyPlans = append(out.DailyPlans, DailyPlanDTO{
			FacilityID:   int64(p.FacilityID),
			Start:        p.Start,
			End:          p.End,
			ActivityType: string(p.ActivityType),
			Description:  p.Description,
			Source:       string(p.Source),
			Cost:         p.Cost,
			Locked:       p.Locked,
		})
	}
	if t.Hotel != nil {
		out.Hotel = &HotelScheduleDTO{
			FacilityID: int64(t.Hotel.FacilityID),
			HotelName:  t.Hotel.HotelName,
			CheckIn:    openapi_types.Date{Time: t.Hotel.CheckIn},
			CheckOut:   openapi_types.Date{Time: t.Hotel.CheckOut},
			RoomsCount: t.Hotel.RoomsCount,
			Cost:       t.Hotel.Cost,
		}
	}
	return out
}

func violationsFromDomain(vs []domain.ConstraintViolation) []ViolationDTO {
	out := make([]ViolationDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, ViolationDTO{
			Kind:     string(v.Kind),
			Severity: string(v.Severity),
			Message:  v.Message,
		})
	}
	return out
}
