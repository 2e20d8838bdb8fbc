package api

import (
	"context"
	"net/http"

	"github.com/okian/draftkit/internal/domain/draft"
	"github.com/okian/draftkit/internal/domain/optimizer"
)

// BestTeamDependencies defines the optimizer operations.
type BestTeamDependencies interface {
	BestTeam(ctx context.Context) (optimizer.Solution, error)
	CommitBestTeam(ctx context.Context) (optimizer.Solution, []draft.Outcome, error)
}

// BestTeamHandler handles best team requests.
type BestTeamHandler struct {
	deps BestTeamDependencies
}

// NewBestTeamHandler creates a new best team handler.
func NewBestTeamHandler(deps BestTeamDependencies) *BestTeamHandler {
	return &BestTeamHandler{deps: deps}
}

type commitResponse struct {
	Solution solutionResponse  `json:"solution"`
	Outcomes []outcomeResponse `json:"outcomes"`
}

// HandleGetBestTeam handles GET /best-team requests. Nothing is committed.
func (h *BestTeamHandler) HandleGetBestTeam(w http.ResponseWriter, r *http.Request) {
	sol, err := h.deps.BestTeam(r.Context())
	if err != nil {
		writeServiceError(w, "api.best_team", err)
		return
	}
	writeJSON(w, http.StatusOK, toSolution(sol))
}

// HandleCommit handles POST /best-team/commit requests. A commit that stops
// on a failed addition answers 409 with the outcomes so far.
func (h *BestTeamHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	sol, outs, err := h.deps.CommitBestTeam(r.Context())
	if err != nil {
		writeServiceError(w, "api.best_team_commit", err)
		return
	}

	resp := commitResponse{Solution: toSolution(sol), Outcomes: make([]outcomeResponse, 0, len(outs))}
	status := http.StatusOK
	for _, o := range outs {
		resp.Outcomes = append(resp.Outcomes, toOutcome(o))
		if !o.OK() {
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, resp)
}
