package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

// Overview returns whole-collection totals for the caller: unique cards,
// total copies, duplicates, and the summed value of every owned copy.
func (s *Service) Overview(ctx context.Context) (domain.CollectionOverview, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.CollectionOverview{}, domain.ErrUnauthorized
	}

	summaries, err := s.Summaries(ctx, userID)
	if err != nil {
		return domain.CollectionOverview{}, err
	}

	cardIDs := make([]string, 0, len(summaries))
	for cardID := range summaries {
		cardIDs = append(cardIDs, cardID)
	}

	cards, err := s.catalog.ListByIDs(ctx, cardIDs)
	if err != nil {
		return domain.CollectionOverview{}, fmt.Errorf("list owned cards: %w", err)
	}

	pricingByID := make(map[string]domain.CardPricing, len(cards))
	for _, c := range cards {
		pricingByID[c.ID] = c.Pricing
	}

	overview := domain.CollectionOverview{}
	for cardID, summary := range summaries {
		overview.UniqueCards++
		overview.TotalCopies += summary.TotalQuantity
		overview.DuplicateCount += summary.DuplicateCount()
		// Cards missing from the catalog (stale import) simply value at 0.
		overview.TotalValue += CardValue(pricingByID[cardID], summary.Variants)
	}

	s.log.DebugContext(ctx, "overview computed",
		slog.String("user_id", userID.String()),
		slog.Int("unique_cards", overview.UniqueCards),
	)

	return overview, nil
}
