// Package user implements the user and user-settings repository using
// PostgreSQL. Identity itself lives with the external auth provider; this
// table mirrors display data and holds collection preferences.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getByIDSQL = `
SELECT id, email, username, avatar_url, role, created_at, updated_at
FROM users
WHERE id = $1`

const getSettingsSQL = `
SELECT user_id, collection_mode, currency, updated_at
FROM user_settings
WHERE user_id = $1`

const upsertSettingsSQL = `
INSERT INTO user_settings (user_id, collection_mode, currency, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id)
DO UPDATE SET collection_mode = EXCLUDED.collection_mode,
              currency = EXCLUDED.currency,
              updated_at = now()
RETURNING user_id, collection_mode, currency, updated_at`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var u domain.User
	err := querier.QueryRow(ctx, getByIDSQL, userID).
		Scan(&u.ID, &u.Email, &u.Username, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", userID.String())
	}

	return u, nil
}

// GetSettings returns the user's settings, or defaults when the user has
// never saved any.
func (r *Repo) GetSettings(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var s domain.UserSettings
	err := querier.QueryRow(ctx, getSettingsSQL, userID).
		Scan(&s.UserID, &s.CollectionMode, &s.Currency, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultUserSettings(userID), nil
		}
		return domain.UserSettings{}, postgres.MapError(err, "user settings", userID.String())
	}

	return s, nil
}

// UpsertSettings saves the user's settings, creating the row on first save.
func (r *Repo) UpsertSettings(ctx context.Context, s domain.UserSettings) (domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var saved domain.UserSettings
	err := querier.QueryRow(ctx, upsertSettingsSQL, s.UserID, s.CollectionMode, s.Currency).
		Scan(&saved.UserID, &saved.CollectionMode, &saved.Currency, &saved.UpdatedAt)
	if err != nil {
		return domain.UserSettings{}, postgres.MapError(err, "user settings", s.UserID.String())
	}

	return saved, nil
}
