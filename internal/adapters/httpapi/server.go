package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/app/planner"
	"github.com/safarino/trip-planner-core/internal/domain"
	"github.com/safarino/trip-planner-core/internal/ports/out/triprepo"
)

// PlanningService is the slice of the orchestrator the HTTP adapter needs.
type PlanningService interface {
	PlanInitial(ctx context.Context, req domain.TripRequirements) (planner.Result, error)
	Replan(ctx context.Context, tripID domain.TripID, trigger domain.ChangeTrigger) (planner.Result, error)
	GetTrip(ctx context.Context, tripID domain.TripID) (domain.Trip, error)
}

// Server is the HTTP adapter over the planning orchestrator.
type Server struct {
	Planner PlanningService

	log *zap.Logger
}

func NewServer(svc PlanningService, log *zap.Logger) *Server {
	return &Server{Planner: svc, log: log}
}

func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body")
		return
	}

	res, err := s.Planner.PlanInitial(r.Context(), req.toRequirements())
	if err != nil {
		s.writePlanningError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, TripResponse{
		Trip:       tripFromDomain(res.Trip),
		Violations: violationsFromDomain(res.Violations),
	})
}

func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID := domain.TripID(chi.URLParam(r, "tripID"))

	trip, err := s.Planner.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "TRIP_NOT_FOUND", "no trip with the given id")
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TripResponse{Trip: tripFromDomain(trip)})
}

func (s *Server) ReplanTrip(w http.ResponseWriter, r *http.Request) {
	tripID := domain.TripID(chi.URLParam(r, "tripID"))

	var req ReplanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body")
		return
	}
	if req.Kind == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "kind is required")
		return
	}

	res, err := s.Planner.Replan(r.Context(), tripID, req.toTrigger())
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "TRIP_NOT_FOUND", "no trip with the given id")
			return
		}
		s.writePlanningError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TripResponse{
		Trip:       tripFromDomain(res.Trip),
		Violations: violationsFromDomain(res.Violations),
	})
}

func (s *Server) writePlanningError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, planner.ErrUnresolvedDestination):
		writeError(w, r, http.StatusNotFound, "DESTINATION_NOT_FOUND", err.Error())
	case errors.Is(err, planner.ErrNoFeasibleItinerary):
		writeError(w, r, http.StatusConflict, "NO_FEASIBLE_ITINERARY", err.Error())
	case errors.Is(err, planner.ErrBudgetInfeasible):
		writeError(w, r, http.StatusConflict, "BUDGET_INFEASIBLE", err.Error())
	case errors.Is(err, planner.ErrLockedItemConflict):
		writeError(w, r, http.StatusConflict, "LOCKED_ITEM_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrInvalidTravelers):
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}
