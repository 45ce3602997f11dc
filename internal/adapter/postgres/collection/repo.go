// Package collection implements the collection-row repository using
// PostgreSQL. One row exists per (user, card, variant, condition); a row
// whose quantity would reach zero is deleted, never stored.
package collection

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// Repo provides collection-row persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new collection repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const rowColumns = "id, user_id, card_id, variant, quantity, condition, created_at, updated_at"

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape statements
// ---------------------------------------------------------------------------

const upsertSQL = `
INSERT INTO user_collections (user_id, card_id, variant, quantity, condition)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, card_id, variant, condition)
DO UPDATE SET quantity = user_collections.quantity + EXCLUDED.quantity,
              updated_at = now()
RETURNING ` + rowColumns

const getForUpdateSQL = `
SELECT ` + rowColumns + `
FROM user_collections
WHERE user_id = $1 AND card_id = $2 AND variant = $3 AND condition = $4
FOR UPDATE`

const setQuantitySQL = `
UPDATE user_collections
SET quantity = $2, updated_at = now()
WHERE id = $1
RETURNING ` + rowColumns

const deleteRowSQL = `DELETE FROM user_collections WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByUser returns every collection row of the user, in unspecified order.
// Returns an empty slice (not nil) when the user owns nothing.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CollectionRow, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// ListByUserAndCards returns the user's rows scoped to the given card ids.
// An empty id list returns an empty slice without touching the database.
func (r *Repo) ListByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) ([]domain.CollectionRow, error) {
	if len(cardIDs) == 0 {
		return []domain.CollectionRow{}, nil
	}
	return r.list(ctx, squirrel.Eq{"user_id": userID, "card_id": cardIDs})
}

func (r *Repo) list(ctx context.Context, where squirrel.Eq) ([]domain.CollectionRow, error) {
	sql, args, err := builder.
		Select(rowColumns).
		From("user_collections").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list collection rows: %w", err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list collection rows: %w", err)
	}

	return result, nil
}

// GetForUpdate returns the row for (user, card, variant, condition) with a
// row lock, for use inside a transaction. Returns domain.ErrNotFound when
// no such row exists.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition) (domain.CollectionRow, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row, err := scanRow(querier.QueryRow(ctx, getForUpdateSQL, userID, cardID, variant, condition))
	if err != nil {
		return domain.CollectionRow{}, postgres.MapError(err, "collection row", cardID)
	}

	return row, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert inserts a row with the given quantity, or adds the quantity to the
// existing row for the same (user, card, variant, condition).
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition, quantity int) (domain.CollectionRow, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row, err := scanRow(querier.QueryRow(ctx, upsertSQL, userID, cardID, variant, quantity, condition))
	if err != nil {
		return domain.CollectionRow{}, postgres.MapError(err, "collection row", cardID)
	}

	return row, nil
}

// SetQuantity updates the quantity of an existing row. The caller must
// never set zero — delete the row instead (enforced by a check constraint).
func (r *Repo) SetQuantity(ctx context.Context, rowID uuid.UUID, quantity int) (domain.CollectionRow, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row, err := scanRow(querier.QueryRow(ctx, setQuantitySQL, rowID, quantity))
	if err != nil {
		return domain.CollectionRow{}, postgres.MapError(err, "collection row", rowID.String())
	}

	return row, nil
}

// Delete removes a single row by primary key.
func (r *Repo) Delete(ctx context.Context, rowID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteRowSQL, rowID)
	if err != nil {
		return postgres.MapError(err, "collection row", rowID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collection row %s: %w", rowID, domain.ErrNotFound)
	}

	return nil
}

// DeleteByUserAndCards removes every row the user holds for the given card
// ids in one statement (bulk set reset). Returns the number of rows removed.
func (r *Repo) DeleteByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) (int64, error) {
	if len(cardIDs) == 0 {
		return 0, nil
	}

	sql, args, err := builder.
		Delete("user_collections").
		Where(squirrel.Eq{"user_id": userID, "card_id": cardIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reset query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("reset collection rows: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanRow(row pgx.Row) (domain.CollectionRow, error) {
	var cr domain.CollectionRow
	err := row.Scan(
		&cr.ID, &cr.UserID, &cr.CardID, &cr.Variant,
		&cr.Quantity, &cr.Condition, &cr.CreatedAt, &cr.UpdatedAt,
	)
	return cr, err
}

func scanRows(rows pgx.Rows) ([]domain.CollectionRow, error) {
	result := []domain.CollectionRow{}
	for rows.Next() {
		var cr domain.CollectionRow
		if err := rows.Scan(
			&cr.ID, &cr.UserID, &cr.CardID, &cr.Variant,
			&cr.Quantity, &cr.Condition, &cr.CreatedAt, &cr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cr)
	}
	return result, rows.Err()
}
