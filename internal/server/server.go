// Package server exposes the search pipeline over HTTP: two hint-driven
// search endpoints and a trip-planning endpoint that chains the LLM
// planner into the pipelines.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/geo"
	"github.com/tripscout/scout/internal/hint"
	"github.com/tripscout/scout/internal/pipeline"
	"github.com/tripscout/scout/internal/planner"
)

// TripPlanner generates search hints for a trip; *planner.Planner
// implements it.
type TripPlanner interface {
	Plan(ctx context.Context, trip planner.Trip) (*planner.Plan, error)
}

type Server struct {
	cfg     *config.Config
	pipe    *pipeline.Pipeline
	planner TripPlanner
	log     *slog.Logger
}

// New wires the server. planner may be nil, in which case the trips
// endpoint reports the feature as unavailable.
func New(cfg *config.Config, pipe *pipeline.Pipeline, tp TripPlanner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, pipe: pipe, planner: tp, log: logger}
}

// Handler builds the routed, CORS-wrapped, logged handler chain.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/health", s.handleHealth)
	router.GET("/v1/search/flights", s.handleFlights)
	router.GET("/v1/search/lodging", s.handleLodging)
	router.POST("/v1/trips", s.authenticate(s.handleTrips))

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return requestLogger(s.log, c.Handler(router))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hintText := r.URL.Query().Get("hint")
	if hintText == "" {
		writeError(w, http.StatusBadRequest, "missing hint parameter")
		return
	}

	res, err := s.pipe.SearchFlights(r.Context(), hintText, searchOptions(r))
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLodging(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hintText := r.URL.Query().Get("hint")
	if hintText == "" {
		writeError(w, http.StatusBadRequest, "missing hint parameter")
		return
	}

	res, err := s.pipe.SearchLodging(r.Context(), hintText, searchOptions(r))
	if err != nil {
		s.writeSearchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type tripsRequest struct {
	Trips []planner.Trip `json:"trips"`
}

type tripPlan struct {
	Trip    planner.Trip     `json:"trip"`
	Plan    *planner.Plan    `json:"plan"`
	Flight  *pipeline.Result `json:"flight"`
	Lodging *pipeline.Result `json:"lodging,omitempty"`
}

func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.planner == nil {
		writeError(w, http.StatusServiceUnavailable, "trip planning is not configured")
		return
	}

	var req tripsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Trips) == 0 {
		writeError(w, http.StatusBadRequest, "no trips provided")
		return
	}

	plans := make([]tripPlan, 0, len(req.Trips))
	for _, trip := range req.Trips {
		plan, err := s.planner.Plan(r.Context(), trip)
		if err != nil {
			s.log.Error("trip planning failed", "destination", trip.Destination, "error", err)
			writeError(w, http.StatusBadGateway, "trip planning failed")
			return
		}

		opts := pipeline.Options{TotalBudget: budgetAmount(trip.Budget)}
		flight, err := s.pipe.SearchFlights(r.Context(), plan.FlightHints[0], opts)
		if err != nil {
			s.writeSearchError(w, err)
			return
		}

		var lodging *pipeline.Result
		if len(plan.LodgingHints) > 0 {
			lodging, err = s.pipe.SearchLodging(r.Context(), plan.LodgingHints[0], opts)
			if err != nil {
				s.log.Warn("lodging search rejected, continuing without lodging", "error", err)
				lodging = nil
			}
		}

		plans = append(plans, tripPlan{Trip: trip, Plan: plan, Flight: flight, Lodging: lodging})
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

// writeSearchError maps pipeline rejections onto status codes: bad
// hints and unresolvable places are the client's problem, an incomplete
// query reaching the builder is ours.
func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	var parseErr *hint.ParseError
	var locErr *geo.UnresolvedLocationError
	switch {
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadRequest, parseErr.Error())
	case errors.As(err, &locErr):
		writeError(w, http.StatusUnprocessableEntity, locErr.Error())
	default:
		s.log.Error("search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
	}
}

func searchOptions(r *http.Request) pipeline.Options {
	var opts pipeline.Options
	if v := r.URL.Query().Get("budget"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			opts.TotalBudget = f
		}
	}
	if v := r.URL.Query().Get("max_nightly"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			opts.MaxNightly = f
		}
	}
	return opts
}

// budgetAmount pulls the digits out of a budget string like "$1200" or
// "1200 USD".
func budgetAmount(budget string) float64 {
	var digits []rune
	for _, r := range budget {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return 0
	}
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
