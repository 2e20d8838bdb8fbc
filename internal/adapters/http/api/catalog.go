package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
)

// CatalogDependencies defines the read operations over available athletes.
type CatalogDependencies interface {
	Catalog(ctx context.Context, category model.Category, limit int) ([]model.Athlete, error)
	Lookup(ctx context.Context, pattern string) (lookup.Result, error)
}

// CatalogHandler serves the catalog and name lookups.
type CatalogHandler struct {
	deps     CatalogDependencies
	maxLimit int
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies, maxLimit int) *CatalogHandler {
	return &CatalogHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetCatalog handles GET /catalog?category=QB&limit=N requests.
// Both parameters are optional.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_catalog"
	q := r.URL.Query()

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	var category model.Category
	if s := strings.TrimSpace(q.Get("category")); s != "" {
		category = model.ParseCategory(s)
	}

	athletes, err := h.deps.Catalog(r.Context(), category, limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toAthletes(athletes))
}

// HandleLookup handles GET /lookup?q=pattern requests. The kind of the
// result is reported in the body; a query never fails on zero or several
// matches.
func (h *CatalogHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	const op = "api.lookup"
	pattern := strings.TrimSpace(r.URL.Query().Get("q"))
	if pattern == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	res, err := h.deps.Lookup(r.Context(), pattern)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toLookup(res))
}
