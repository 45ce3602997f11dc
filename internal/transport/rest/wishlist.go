package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/wishlist"
)

type wishlistService interface {
	Add(ctx context.Context, input wishlist.AddInput) (domain.WishlistItem, error)
	Remove(ctx context.Context, cardID string, variant domain.CardVariant) error
	List(ctx context.Context) ([]wishlist.Entry, error)
}

// WishlistHandler serves the wishlist endpoints.
type WishlistHandler struct {
	svc wishlistService
	log *slog.Logger
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(svc wishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		svc: svc,
		log: logger.With("handler", "wishlist"),
	}
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]wishlistEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toWishlistEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

type addWishlistRequest struct {
	CardID  string  `json:"card_id"`
	Variant string  `json:"variant"`
	Note    *string `json:"note"`
}

// Add handles POST /wishlist.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Add(r.Context(), wishlist.AddInput{
		CardID:  req.CardID,
		Variant: domain.CardVariant(req.Variant),
		Note:    req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"card_id": item.CardID,
		"variant": item.Variant.String(),
		"note":    item.Note,
	})
}

// Remove handles DELETE /wishlist/{cardID}. The variant comes from the
// query string and defaults to normal.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	variant := r.URL.Query().Get("variant")
	if variant == "" {
		variant = domain.VariantNormal.String()
	}

	err := h.svc.Remove(r.Context(), chi.URLParam(r, "cardID"), domain.CardVariant(variant))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
