package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/domain/draft"
)

// RosterDependencies defines the roster reads and mutations.
type RosterDependencies interface {
	Roster(ctx context.Context) (service.RosterView, error)
	AddByName(ctx context.Context, name string, price float64) (draft.Outcome, error)
	Add(ctx context.Context, id uuid.UUID, price float64) (draft.Outcome, error)
	RemoveByName(ctx context.Context, name string) (draft.Outcome, error)
	Remove(ctx context.Context, id uuid.UUID) (draft.Outcome, error)
}

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// addRequest mirrors the OpenAPI schema for POST /roster.
type addRequest struct {
	Name      string   `json:"name"`
	AthleteID string   `json:"athlete_id"`
	Price     *float64 `json:"price"`
}

func (a addRequest) validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "" && strings.TrimSpace(a.AthleteID) == "":
		return errors.New("missing name or athlete_id")
	case a.Price == nil:
		return errors.New("missing price")
	}
	return nil
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Roster(r.Context())
	if err != nil {
		writeServiceError(w, "api.get_roster", err)
		return
	}
	writeJSON(w, http.StatusOK, toRoster(view))
}

// HandleAdd handles POST /roster requests. An athlete_id wins over a name.
func (h *RosterHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add"
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		out draft.Outcome
		err error
	)
	if s := strings.TrimSpace(req.AthleteID); s != "" {
		id, perr := uuid.Parse(s)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, perr))
			return
		}
		out, err = h.deps.Add(r.Context(), id, *req.Price)
	} else {
		out, err = h.deps.AddByName(r.Context(), req.Name, *req.Price)
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeOutcome(w, out)
}

// HandleRemove handles DELETE /roster/{key} requests, where key is either an
// athlete id or a name pattern matched against the roster. No refund.
func (h *RosterHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove"
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var (
		out draft.Outcome
		err error
	)
	if id, perr := uuid.Parse(key); perr == nil {
		out, err = h.deps.Remove(r.Context(), id)
	} else {
		out, err = h.deps.RemoveByName(r.Context(), key)
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeOutcome(w, out)
}
