// Package card implements the catalog repository (sets and cards) using
// PostgreSQL. The catalog is reference data: user traffic only reads it,
// writes come from the importer and the price sync job.
package card

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/pokebinder/pokebinder-backend/internal/adapter/postgres"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new catalog repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const cardColumns = `id, set_id, number, name, rarity,
       avg_sell_price, low_price, trend_price,
       reverse_holo_sell, reverse_holo_low, reverse_holo_trend,
       prices_updated_at`

const getSetSQL = `
SELECT id, name, series, printed_total, release_date
FROM sets
WHERE id = $1`

const listSetsSQL = `
SELECT id, name, series, printed_total, release_date
FROM sets
ORDER BY release_date DESC, id`

const getCardSQL = `
SELECT ` + cardColumns + `
FROM cards
WHERE id = $1`

const listBySetSQL = `
SELECT ` + cardColumns + `
FROM cards
WHERE set_id = $1
ORDER BY id`

const listCardIDsBySetSQL = `SELECT id FROM cards WHERE set_id = $1`

const updatePricingSQL = `
UPDATE cards
SET avg_sell_price = $2, low_price = $3, trend_price = $4,
    reverse_holo_sell = $5, reverse_holo_low = $6, reverse_holo_trend = $7,
    prices_updated_at = $8
WHERE id = $1`

const upsertSetSQL = `
INSERT INTO sets (id, name, series, printed_total, release_date)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, series = EXCLUDED.series,
    printed_total = EXCLUDED.printed_total, release_date = EXCLUDED.release_date`

const upsertCardSQL = `
INSERT INTO cards (id, set_id, number, name, rarity,
                   avg_sell_price, low_price, trend_price,
                   reverse_holo_sell, reverse_holo_low, reverse_holo_trend)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE
SET set_id = EXCLUDED.set_id, number = EXCLUDED.number,
    name = EXCLUDED.name, rarity = EXCLUDED.rarity`

// GetSet returns one set by id.
func (r *Repo) GetSet(ctx context.Context, setID string) (domain.Set, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var s domain.Set
	err := querier.QueryRow(ctx, getSetSQL, setID).
		Scan(&s.ID, &s.Name, &s.Series, &s.PrintedTotal, &s.ReleaseDate)
	if err != nil {
		return domain.Set{}, postgres.MapError(err, "set", setID)
	}

	return s, nil
}

// ListSets returns all sets, newest first.
func (r *Repo) ListSets(ctx context.Context) ([]domain.Set, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, listSetsSQL)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	sets := []domain.Set{}
	for rows.Next() {
		var s domain.Set
		if err := rows.Scan(&s.ID, &s.Name, &s.Series, &s.PrintedTotal, &s.ReleaseDate); err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		sets = append(sets, s)
	}

	return sets, rows.Err()
}

// GetCard returns one catalog card by id.
func (r *Repo) GetCard(ctx context.Context, cardID string) (domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCard(querier.QueryRow(ctx, getCardSQL, cardID))
	if err != nil {
		return domain.Card{}, postgres.MapError(err, "card", cardID)
	}

	return c, nil
}

// ListBySet returns every card of a set ordered by id.
// Returns an empty slice (not nil) for an unknown or empty set.
func (r *Repo) ListBySet(ctx context.Context, setID string) ([]domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, listBySetSQL, setID)
	if err != nil {
		return nil, fmt.Errorf("list cards by set: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list cards by set: %w", err)
	}

	return cards, nil
}

// ListByIDs returns the catalog cards for the given ids, in unspecified
// order. Unknown ids are silently absent from the result.
func (r *Repo) ListByIDs(ctx context.Context, cardIDs []string) ([]domain.Card, error) {
	if len(cardIDs) == 0 {
		return []domain.Card{}, nil
	}

	sql, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(cardColumns).
		From("cards").
		Where(squirrel.Eq{"id": cardIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list-by-ids query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards by ids: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list cards by ids: %w", err)
	}

	return cards, nil
}

// ListCardIDsBySet returns only the card ids of a set (for bulk reset).
func (r *Repo) ListCardIDsBySet(ctx context.Context, setID string) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, listCardIDsBySetSQL, setID)
	if err != nil {
		return nil, fmt.Errorf("list card ids by set: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list card ids by set: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdatePricing replaces all price points of one card.
func (r *Repo) UpdatePricing(ctx context.Context, cardID string, p domain.CardPricing, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, updatePricingSQL, cardID,
		p.AvgSellPrice, p.LowPrice, p.TrendPrice,
		p.ReverseHoloSell, p.ReverseHoloLow, p.ReverseHoloTrend,
		updatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "card", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// UpsertSet inserts or updates one set.
func (r *Repo) UpsertSet(ctx context.Context, s domain.Set) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	_, err := querier.Exec(ctx, upsertSetSQL, s.ID, s.Name, s.Series, s.PrintedTotal, s.ReleaseDate)
	if err != nil {
		return postgres.MapError(err, "set", s.ID)
	}

	return nil
}

// UpsertCards batch-upserts catalog cards using a pgx batch. Pricing fields
// are only written on insert; the price sync job owns them afterwards.
func (r *Repo) UpsertCards(ctx context.Context, cards []domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	batch := &pgx.Batch{}
	for _, c := range cards {
		batch.Queue(upsertCardSQL, c.ID, c.SetID, c.Number, c.Name, c.Rarity,
			c.Pricing.AvgSellPrice, c.Pricing.LowPrice, c.Pricing.TrendPrice,
			c.Pricing.ReverseHoloSell, c.Pricing.ReverseHoloLow, c.Pricing.ReverseHoloTrend,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range cards {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "card", cards[i].ID)
		}
	}

	return nil
}

func scanCard(row pgx.Row) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.ID, &c.SetID, &c.Number, &c.Name, &c.Rarity,
		&c.Pricing.AvgSellPrice, &c.Pricing.LowPrice, &c.Pricing.TrendPrice,
		&c.Pricing.ReverseHoloSell, &c.Pricing.ReverseHoloLow, &c.Pricing.ReverseHoloTrend,
		&c.PricesUpdatedAt,
	)
	return c, err
}

func scanCards(rows pgx.Rows) ([]domain.Card, error) {
	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(
			&c.ID, &c.SetID, &c.Number, &c.Name, &c.Rarity,
			&c.Pricing.AvgSellPrice, &c.Pricing.LowPrice, &c.Pricing.TrendPrice,
			&c.Pricing.ReverseHoloSell, &c.Pricing.ReverseHoloLow, &c.Pricing.ReverseHoloTrend,
			&c.PricesUpdatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
