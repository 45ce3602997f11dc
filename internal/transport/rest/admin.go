package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pokebinder/pokebinder-backend/internal/service/pricesync"
	"github.com/pokebinder/pokebinder-backend/internal/transport/middleware"
)

type priceSyncService interface {
	SyncSets(ctx context.Context, setIDs []string) (pricesync.Report, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	prices      priceSyncService
	defaultSets []string
	log         *slog.Logger
}

// NewAdminHandler creates an AdminHandler. defaultSets is the configured
// sync list used when a request names no sets.
func NewAdminHandler(prices priceSyncService, defaultSets []string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		prices:      prices,
		defaultSets: defaultSets,
		log:         logger.With("handler", "admin"),
	}
}

type syncPricesRequest struct {
	Sets []string `json:"sets"`
}

// SyncPrices handles POST /admin/prices/sync. The sync runs synchronously
// so the operator sees the report in the response.
func (h *AdminHandler) SyncPrices(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req syncPricesRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sets := req.Sets
	if len(sets) == 0 {
		sets = h.defaultSets
	}
	if len(sets) == 0 {
		writeError(w, http.StatusBadRequest, "no sets to sync")
		return
	}

	report, err := h.prices.SyncSets(r.Context(), sets)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sets_synced":   report.SetsSynced,
		"sets_skipped":  report.SetsSkipped,
		"cards_updated": report.CardsUpdated,
		"failed":        report.Failed,
	})
}
