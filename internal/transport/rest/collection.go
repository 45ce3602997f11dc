package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/collection"
)

type collectionService interface {
	AddVariant(ctx context.Context, input collection.AddVariantInput) (*domain.CardSummary, error)
	RemoveVariant(ctx context.Context, input collection.RemoveVariantInput) (*domain.CardSummary, error)
	ResetSet(ctx context.Context, input collection.ResetSetInput) (int64, error)
	Overview(ctx context.Context) (domain.CollectionOverview, error)
}

// CollectionHandler serves the collection mutation and overview endpoints.
type CollectionHandler struct {
	svc collectionService
	log *slog.Logger
}

// NewCollectionHandler creates a CollectionHandler.
func NewCollectionHandler(svc collectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		svc: svc,
		log: logger.With("handler", "collection"),
	}
}

type mutateVariantRequest struct {
	CardID    string `json:"card_id"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
}

type mutateVariantResponse struct {
	// Card is nil when the mutation removed the card's last copy.
	Card *cardSummaryResponse `json:"card"`
}

// AddVariant handles POST /collection/cards.
func (h *CollectionHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	var req mutateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.svc.AddVariant(r.Context(), collection.AddVariantInput{
		CardID:    req.CardID,
		Variant:   domain.CardVariant(req.Variant),
		Quantity:  req.Quantity,
		Condition: domain.CardCondition(req.Condition),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mutateVariantResponse{Card: toCardSummaryResponse(summary)})
}

// RemoveVariant handles DELETE /collection/cards.
func (h *CollectionHandler) RemoveVariant(w http.ResponseWriter, r *http.Request) {
	var req mutateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.svc.RemoveVariant(r.Context(), collection.RemoveVariantInput{
		CardID:    req.CardID,
		Variant:   domain.CardVariant(req.Variant),
		Quantity:  req.Quantity,
		Condition: domain.CardCondition(req.Condition),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mutateVariantResponse{Card: toCardSummaryResponse(summary)})
}

// ResetSet handles DELETE /collection/sets/{setID}.
func (h *CollectionHandler) ResetSet(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.ResetSet(r.Context(), collection.ResetSetInput{
		SetID: chi.URLParam(r, "setID"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"rows_removed": removed})
}

type overviewResponse struct {
	UniqueCards    int     `json:"unique_cards"`
	TotalCopies    int     `json:"total_copies"`
	DuplicateCount int     `json:"duplicate_count"`
	TotalValue     float64 `json:"total_value"`
}

// Overview handles GET /collection/overview.
func (h *CollectionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		UniqueCards:    overview.UniqueCards,
		TotalCopies:    overview.TotalCopies,
		DuplicateCount: overview.DuplicateCount,
		TotalValue:     overview.TotalValue,
	})
}
