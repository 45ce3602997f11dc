// Package user exposes the user profile and collection preferences.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error)
	UpsertSettings(ctx context.Context, settings domain.UserSettings) (domain.UserSettings, error)
}

// Service implements profile and settings access.
type Service struct {
	users userRepo
	log   *slog.Logger
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{
		users: users,
		log:   log.With("service", "user"),
	}
}

// GetProfile returns the caller's user record.
func (s *Service) GetProfile(ctx context.Context) (domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}
	return s.users.GetByID(ctx, userID)
}

// GetSettings returns the caller's settings, defaults when never saved.
func (s *Service) GetSettings(ctx context.Context) (domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserSettings{}, domain.ErrUnauthorized
	}
	return s.users.GetSettings(ctx, userID)
}

// UpdateSettingsInput contains the parameters for UpdateSettings.
// Nil fields keep their current value.
type UpdateSettingsInput struct {
	CollectionMode *domain.CollectionMode
	Currency       *string
}

var supportedCurrencies = map[string]bool{
	"EUR": true,
	"USD": true,
	"GBP": true,
	"JPY": true,
}

// Validate checks the provided fields.
func (in *UpdateSettingsInput) Validate() error {
	if in.CollectionMode == nil && in.Currency == nil {
		return domain.NewValidationError("settings", "nothing to update")
	}
	if in.CollectionMode != nil && !in.CollectionMode.IsValid() {
		return domain.NewValidationError("collection_mode", fmt.Sprintf("unknown mode %q", *in.CollectionMode))
	}
	if in.Currency != nil {
		upper := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if !supportedCurrencies[upper] {
			return domain.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", *in.Currency))
		}
		in.Currency = &upper
	}
	return nil
}

// UpdateSettings applies a partial settings update. Switching the
// collection mode never touches stored collection rows; completion is
// re-derived from the same data under the new mode.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.UserSettings{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.UserSettings{}, err
	}

	current, err := s.users.GetSettings(ctx, userID)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}

	if input.CollectionMode != nil {
		current.CollectionMode = *input.CollectionMode
	}
	if input.Currency != nil {
		current.Currency = *input.Currency
	}

	updated, err := s.users.UpsertSettings(ctx, current)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("upsert settings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID.String()),
		slog.String("mode", updated.CollectionMode.String()),
	)

	return updated, nil
}
