package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

// AddVariant adds copies of one card variant to the caller's collection and
// returns the card's summary re-derived from the persisted rows inside the
// same transaction, so the caller never carries stale optimistic state.
func (s *Service) AddVariant(ctx context.Context, input AddVariantInput) (*domain.CardSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Reject unknown cards before touching the collection.
	if _, err := s.catalog.GetCard(ctx, input.CardID); err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	key := mutationKey(userID, input.CardID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var summary *domain.CardSummary
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.rows.Upsert(ctx, userID, input.CardID, input.Variant, input.Condition, input.Quantity); err != nil {
			return fmt.Errorf("upsert row: %w", err)
		}

		var err error
		summary, err = s.summaryForCard(ctx, userID, input.CardID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant added",
		slog.String("user_id", userID.String()),
		slog.String("card_id", input.CardID),
		slog.String("variant", input.Variant.String()),
		slog.Int("quantity", input.Quantity),
	)

	return summary, nil
}

// RemoveVariant removes copies of one card variant. When the row's quantity
// reaches zero the row is deleted — a zero-quantity row is never persisted.
// The returned summary is nil when the card leaves the collection entirely.
func (s *Service) RemoveVariant(ctx context.Context, input RemoveVariantInput) (*domain.CardSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	key := mutationKey(userID, input.CardID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var summary *domain.CardSummary
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		row, err := s.rows.GetForUpdate(ctx, userID, input.CardID, input.Variant, input.Condition)
		if err != nil {
			return fmt.Errorf("get row: %w", err)
		}

		remaining := row.Quantity - input.Quantity
		if remaining > 0 {
			if _, err := s.rows.SetQuantity(ctx, row.ID, remaining); err != nil {
				return fmt.Errorf("set quantity: %w", err)
			}
		} else {
			if err := s.rows.Delete(ctx, row.ID); err != nil {
				return fmt.Errorf("delete row: %w", err)
			}
		}

		summary, err = s.summaryForCard(ctx, userID, input.CardID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant removed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", input.CardID),
		slog.String("variant", input.Variant.String()),
		slog.Int("quantity", input.Quantity),
	)

	return summary, nil
}

// ResetSet deletes every row the caller holds for the set's cards in one
// destructive batch. Returns the number of rows removed.
func (s *Service) ResetSet(ctx context.Context, input ResetSetInput) (int64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	cardIDs, err := s.catalog.ListCardIDsBySet(ctx, input.SetID)
	if err != nil {
		return 0, fmt.Errorf("list set card ids: %w", err)
	}
	if len(cardIDs) == 0 {
		return 0, fmt.Errorf("set %s: %w", input.SetID, domain.ErrNotFound)
	}

	removed, err := s.rows.DeleteByUserAndCards(ctx, userID, cardIDs)
	if err != nil {
		return 0, fmt.Errorf("reset set: %w", err)
	}

	s.log.InfoContext(ctx, "set reset",
		slog.String("user_id", userID.String()),
		slog.String("set_id", input.SetID),
		slog.Int64("rows_removed", removed),
	)

	return removed, nil
}

// summaryForCard re-derives one card's summary from its persisted rows.
// Returns nil when the user holds no rows for the card.
func (s *Service) summaryForCard(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardSummary, error) {
	rows, err := s.rows.ListByUserAndCards(ctx, userID, []string{cardID})
	if err != nil {
		return nil, fmt.Errorf("reload card rows: %w", err)
	}

	summaries := s.Aggregate(rows)
	return summaries[cardID], nil
}
