// Package setpage assembles the browse view for one set: catalog cards
// joined with the caller's aggregated collection state, filtered, sorted,
// and summarized.
package setpage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/collection"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type catalogRepo interface {
	GetSet(ctx context.Context, setID string) (domain.Set, error)
	ListBySet(ctx context.Context, setID string) ([]domain.Card, error)
	ListSets(ctx context.Context) ([]domain.Set, error)
}

type aggregator interface {
	SummariesForCards(ctx context.Context, userID uuid.UUID, cardIDs []string) (map[string]*domain.CardSummary, error)
}

type settingsRepo interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error)
}

// VariantRule computes the set of variants a card can legally have.
// It is a pure function of catalog data (rarity/era).
type VariantRule func(domain.Card) domain.VariantSet

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the set browse view.
type Service struct {
	catalog   catalogRepo
	summaries aggregator
	settings  settingsRepo
	variants  VariantRule
	log       *slog.Logger
}

// NewService creates a new set page service.
func NewService(log *slog.Logger, catalog catalogRepo, summaries aggregator, settings settingsRepo, variants VariantRule) *Service {
	return &Service{
		catalog:   catalog,
		summaries: summaries,
		settings:  settings,
		variants:  variants,
		log:       log.With("service", "setpage"),
	}
}

// ListSets returns all catalog sets, newest first.
func (s *Service) ListSets(ctx context.Context) ([]domain.Set, error) {
	return s.catalog.ListSets(ctx)
}

// GetPage assembles the browse view for one set under the caller's active
// collection mode. When the input does not override the mode, the user's
// saved setting applies.
func (s *Service) GetPage(ctx context.Context, input GetPageInput) (Page, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Page{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Page{}, err
	}

	set, err := s.catalog.GetSet(ctx, input.SetID)
	if err != nil {
		return Page{}, fmt.Errorf("get set: %w", err)
	}

	cards, err := s.catalog.ListBySet(ctx, input.SetID)
	if err != nil {
		return Page{}, fmt.Errorf("list set cards: %w", err)
	}

	cardIDs := make([]string, len(cards))
	for i, c := range cards {
		cardIDs[i] = c.ID
	}

	// The collection rows and the user's settings are independent reads.
	var (
		summaries map[string]*domain.CardSummary
		settings  domain.UserSettings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.summaries.SummariesForCards(gctx, userID, cardIDs)
		if err != nil {
			return fmt.Errorf("aggregate collection: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.GetSettings(gctx, userID)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page{}, err
	}

	mode := input.Mode
	if !mode.IsValid() {
		mode = settings.CollectionMode
	}

	views := s.buildViews(cards, summaries)
	progress := computeProgress(views)
	filtered, counts := applyPipeline(views, input.Filter, mode)

	s.log.DebugContext(ctx, "set page assembled",
		slog.String("user_id", userID.String()),
		slog.String("set_id", set.ID),
		slog.String("mode", mode.String()),
		slog.Int("cards", len(filtered)),
	)

	return Page{
		Set:             set,
		Mode:            mode,
		Cards:           filtered,
		NeedCount:       counts.Need,
		HaveCount:       counts.Have,
		DuplicatesCount: counts.Duplicates,
		Progress:        progress,
	}, nil
}

// buildViews joins catalog cards with their summaries and derives the
// per-card completion, duplicate and valuation state once, so the filter
// pipeline never recomputes it.
func (s *Service) buildViews(cards []domain.Card, summaries map[string]*domain.CardSummary) []CardView {
	views := make([]CardView, len(cards))
	for i, card := range cards {
		summary := summaries[card.ID]
		available := s.variants(card)
		collected, mastered := collection.EvaluateCompletion(summary, available)

		view := CardView{
			Card:      card,
			Summary:   summary,
			Available: available,
			Collected: collected,
			Mastered:  mastered,
		}
		if summary != nil {
			view.Value = collection.CardValue(card.Pricing, summary.Variants)
			view.HasDuplicates = summary.HasDuplicates()
			view.DuplicateCount = summary.DuplicateCount()
		}
		views[i] = view
	}
	return views
}
