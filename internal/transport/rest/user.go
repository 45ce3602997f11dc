package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/user"
)

type userService interface {
	GetProfile(ctx context.Context) (domain.User, error)
	GetSettings(ctx context.Context) (domain.UserSettings, error)
	UpdateSettings(ctx context.Context, input user.UpdateSettingsInput) (domain.UserSettings, error)
}

// UserHandler serves the profile and settings endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: logger.With("handler", "user"),
	}
}

type profileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `json:"role"`
}

// Profile handles GET /me.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        profile.ID.String(),
		Email:     profile.Email,
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
		Role:      profile.Role.String(),
	})
}

// GetSettings handles GET /me/settings.
func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

type updateSettingsRequest struct {
	CollectionMode *string `json:"collection_mode"`
	Currency       *string `json:"currency"`
}

// UpdateSettings handles PATCH /me/settings.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := user.UpdateSettingsInput{Currency: req.Currency}
	if req.CollectionMode != nil {
		mode := domain.CollectionMode(*req.CollectionMode)
		input.CollectionMode = &mode
	}

	settings, err := h.svc.UpdateSettings(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}
