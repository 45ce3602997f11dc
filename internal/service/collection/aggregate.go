package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// Aggregate folds raw collection rows into one summary per card id.
//
// Rows carrying an unknown variant are skipped entirely — they contribute
// to no bucket and not to TotalQuantity, keeping the sum invariant intact —
// and are logged at WARN. Rows with a non-positive quantity are skipped the
// same way. Both cases are rejected at the persistence boundary, so hitting
// one here means legacy or hand-edited data.
//
// The input order does not matter; DateAdded is the earliest created_at and
// LastUpdated the latest updated_at across contributing rows.
func (s *Service) Aggregate(rows []domain.CollectionRow) map[string]*domain.CardSummary {
	summaries := make(map[string]*domain.CardSummary)

	for _, row := range rows {
		if !row.Variant.IsValid() {
			s.log.Warn("skipping collection row with unknown variant",
				slog.String("card_id", row.CardID),
				slog.String("variant", row.Variant.String()),
			)
			continue
		}
		if row.Quantity <= 0 {
			s.log.Warn("skipping collection row with non-positive quantity",
				slog.String("card_id", row.CardID),
				slog.Int("quantity", row.Quantity),
			)
			continue
		}

		summary, ok := summaries[row.CardID]
		if !ok {
			summary = domain.NewCardSummary(row.CardID, row.CreatedAt)
			summary.LastUpdated = row.UpdatedAt
			summaries[row.CardID] = summary
		}

		summary.Variants[row.Variant] += row.Quantity
		summary.TotalQuantity += row.Quantity
		if row.CreatedAt.Before(summary.DateAdded) {
			summary.DateAdded = row.CreatedAt
		}
		if row.UpdatedAt.After(summary.LastUpdated) {
			summary.LastUpdated = row.UpdatedAt
		}
	}

	// A card whose every row was skipped must not linger with a zero total.
	for cardID, summary := range summaries {
		if summary.TotalQuantity == 0 {
			delete(summaries, cardID)
		}
	}

	return summaries
}

// Summaries loads and aggregates the user's whole collection.
func (s *Service) Summaries(ctx context.Context, userID uuid.UUID) (map[string]*domain.CardSummary, error) {
	rows, err := s.rows.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list collection rows: %w", err)
	}

	return s.Aggregate(rows), nil
}

// SummariesForCards loads and aggregates the user's rows scoped to the
// given card ids.
func (s *Service) SummariesForCards(ctx context.Context, userID uuid.UUID, cardIDs []string) (map[string]*domain.CardSummary, error) {
	rows, err := s.rows.ListByUserAndCards(ctx, userID, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("list collection rows: %w", err)
	}

	return s.Aggregate(rows), nil
}
