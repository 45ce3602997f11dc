package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/setpage"
)

type setPageService interface {
	ListSets(ctx context.Context) ([]domain.Set, error)
	GetPage(ctx context.Context, input setpage.GetPageInput) (setpage.Page, error)
}

// SetsHandler serves the catalog browse endpoints.
type SetsHandler struct {
	svc setPageService
	log *slog.Logger
}

// NewSetsHandler creates a SetsHandler.
func NewSetsHandler(svc setPageService, logger *slog.Logger) *SetsHandler {
	return &SetsHandler{
		svc: svc,
		log: logger.With("handler", "sets"),
	}
}

// ListSets handles GET /sets.
func (h *SetsHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.svc.ListSets(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]setResponse, len(sets))
	for i, s := range sets {
		out[i] = toSetResponse(s)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sets": out})
}

// GetPage handles GET /sets/{setID}/cards.
//
// Query parameters: search, filter (all|need|have|duplicates),
// sort (number|name|rarity|price), order (asc|desc),
// mode (regular|master, overrides the saved setting).
func (h *SetsHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.svc.GetPage(r.Context(), setpage.GetPageInput{
		SetID: chi.URLParam(r, "setID"),
		Mode:  domain.CollectionMode(q.Get("mode")),
		Filter: domain.CardFilter{
			Search:   q.Get("search"),
			Mode:     domain.FilterMode(q.Get("filter")),
			SortBy:   domain.SortKey(q.Get("sort")),
			SortDesc: q.Get("order") == "desc",
		},
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSetPageResponse(page))
}
