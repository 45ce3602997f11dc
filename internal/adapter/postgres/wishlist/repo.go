// Package wishlist implements the wishlist repository using PostgreSQL.
package wishlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// Repo provides wishlist persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new wishlist repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const itemColumns = "id, user_id, card_id, variant, note, created_at"

const upsertSQL = `
INSERT INTO wishlists (user_id, card_id, variant, note)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, card_id, variant)
DO UPDATE SET note = EXCLUDED.note
RETURNING ` + itemColumns

const deleteSQL = `
DELETE FROM wishlists
WHERE user_id = $1 AND card_id = $2 AND variant = $3`

const listByUserSQL = `
SELECT ` + itemColumns + `
FROM wishlists
WHERE user_id = $1
ORDER BY created_at DESC`

// Upsert adds a card variant to the user's wishlist. Re-adding the same
// variant only refreshes the note.
func (r *Repo) Upsert(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	saved, err := scanItem(querier.QueryRow(ctx, upsertSQL, item.UserID, item.CardID, item.Variant, item.Note))
	if err != nil {
		return domain.WishlistItem{}, postgres.MapError(err, "wishlist item", item.CardID)
	}

	return saved, nil
}

// Delete removes one wishlist entry. Returns domain.ErrNotFound when the
// user never wished for that variant.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteSQL, userID, cardID, variant)
	if err != nil {
		return postgres.MapError(err, "wishlist item", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// ListByUser returns the user's wishlist, newest first.
// Returns an empty slice (not nil) for an empty wishlist.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var it domain.WishlistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.CardID, &it.Variant, &it.Note, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("list wishlist: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func scanItem(row pgx.Row) (domain.WishlistItem, error) {
	var it domain.WishlistItem
	err := row.Scan(&it.ID, &it.UserID, &it.CardID, &it.Variant, &it.Note, &it.CreatedAt)
	return it, err
}
