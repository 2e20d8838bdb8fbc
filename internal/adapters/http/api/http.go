// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/domain/draft"
	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/optimizer"
)

// Dependencies required by HTTP handlers. The draft service satisfies it.
type Dependencies interface {
	CatalogDependencies
	RosterDependencies
	BestTeamDependencies
}

// Server wires HTTP routes for the draft API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	catalogHandler  *CatalogHandler
	rosterHandler   *RosterHandler
	bestTeamHandler *BestTeamHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		catalogHandler:  NewCatalogHandler(deps, cfg.maxLimit),
		rosterHandler:   NewRosterHandler(deps),
		bestTeamHandler: NewBestTeamHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))
	mux.HandleFunc("GET /lookup", MetricsMiddleware(s.catalogHandler.HandleLookup, "lookup"))
	mux.HandleFunc("GET /roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("POST /roster", MetricsMiddleware(s.rosterHandler.HandleAdd, "roster"))
	mux.HandleFunc("DELETE /roster/{key}", MetricsMiddleware(s.rosterHandler.HandleRemove, "roster"))
	mux.HandleFunc("GET /best-team", MetricsMiddleware(s.bestTeamHandler.HandleGetBestTeam, "best_team"))
	mux.HandleFunc("POST /best-team/commit", MetricsMiddleware(s.bestTeamHandler.HandleCommit, "best_team_commit"))
}

type athleteResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Team     string    `json:"team"`
	Category string    `json:"category"`
	Cost     float64   `json:"cost"`
	Points   float64   `json:"points"`
}

func toAthlete(a model.Athlete) athleteResponse {
	return athleteResponse{
		ID:       a.ID,
		Name:     a.Name,
		Team:     a.Team,
		Category: string(a.Category),
		Cost:     a.Cost,
		Points:   a.Points,
	}
}

func toAthletes(as []model.Athlete) []athleteResponse {
	out := make([]athleteResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAthlete(a))
	}
	return out
}

type lookupResponse struct {
	Kind    string            `json:"kind"`
	Athlete *athleteResponse  `json:"athlete,omitempty"`
	Matches []athleteResponse `json:"matches,omitempty"`
}

func toLookup(res lookup.Result) lookupResponse {
	out := lookupResponse{Kind: res.Kind.String()}
	switch res.Kind {
	case lookup.KindUnique:
		a := toAthlete(res.Athlete)
		out.Athlete = &a
	case lookup.KindAmbiguous:
		out.Matches = toAthletes(res.Matches)
	}
	return out
}

type pickResponse struct {
	Athlete athleteResponse `json:"athlete"`
	Price   float64         `json:"price"`
}

type rosterResponse struct {
	Picks     []pickResponse `json:"picks"`
	Points    float64        `json:"points"`
	Spent     float64        `json:"spent"`
	Remaining float64        `json:"remaining"`
	Total     float64        `json:"total"`
	Counts    map[string]int `json:"counts"`
	Limits    map[string]int `json:"limits"`
}

func toRoster(v service.RosterView) rosterResponse {
	out := rosterResponse{
		Picks:     make([]pickResponse, 0, len(v.Picks)),
		Points:    v.Points,
		Spent:     v.Spent,
		Remaining: v.Remaining,
		Total:     v.Total,
		Counts:    make(map[string]int, len(v.Limits)),
		Limits:    make(map[string]int, len(v.Limits)),
	}
	for _, p := range v.Picks {
		out.Picks = append(out.Picks, pickResponse{Athlete: toAthlete(p.Athlete), Price: p.Price})
	}
	for c, n := range v.Limits {
		out.Limits[string(c)] = n
		out.Counts[string(c)] = v.Counts[c]
	}
	return out
}

type outcomeResponse struct {
	Status  string           `json:"status"`
	Athlete *athleteResponse `json:"athlete,omitempty"`
	Price   float64          `json:"price,omitempty"`
	Reason  string           `json:"reason,omitempty"`
}

func toOutcome(o draft.Outcome) outcomeResponse {
	out := outcomeResponse{Status: o.Status.String(), Reason: o.Reason}
	if o.OK() {
		a := toAthlete(o.Athlete)
		out.Athlete = &a
		out.Price = o.Price
	}
	return out
}

type solutionResponse struct {
	Points         float64           `json:"points"`
	BaselinePoints float64           `json:"baseline_points"`
	Team           []athleteResponse `json:"team"`
	Added          []athleteResponse `json:"added"`
	AddedCost      float64           `json:"added_cost"`
	Budget         int               `json:"budget"`
}

func toSolution(s optimizer.Solution) solutionResponse {
	return solutionResponse{
		Points:         s.Points,
		BaselinePoints: s.BaselinePoints,
		Team:           toAthletes(s.Team),
		Added:          toAthletes(s.Added),
		AddedCost:      s.AddedCost,
		Budget:         s.Budget,
	}
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Matches []athleteResponse `json:"matches,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeOutcome maps a mutation outcome onto a status code. Only StatusOK is
// a success; the rest carry enough detail for the client to retry.
func writeOutcome(w http.ResponseWriter, out draft.Outcome) {
	switch out.Status {
	case draft.StatusOK:
		writeJSON(w, http.StatusOK, toOutcome(out))
	case draft.StatusNotFound:
		writeError(w, http.StatusNotFound, "not_found", ErrNoMatch)
	case draft.StatusAmbiguous:
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:    "ambiguous",
			Message: ErrAmbiguous.Error(),
			Matches: toAthletes(out.Matches),
		})
	default:
		writeJSON(w, http.StatusConflict, errorResponse{Code: "failed", Message: out.Reason})
	}
}

// writeServiceError translates service errors to HTTP errors.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, optimizer.ErrTableTooLarge), errors.Is(err, optimizer.ErrInvalidBudget):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", Wrap(op, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
