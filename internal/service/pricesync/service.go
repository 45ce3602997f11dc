// Package pricesync pulls current card prices from the external feed and
// merges them into the catalog. It runs from the pricesync binary on a
// schedule and from the admin trigger endpoint.
package pricesync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pokebinder/pokebinder-backend/internal/adapter/provider/pricefeed"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

type priceFeed interface {
	SetPrices(ctx context.Context, setID string) ([]pricefeed.CardPrices, error)
}

type catalogRepo interface {
	UpdatePricing(ctx context.Context, cardID string, p domain.CardPricing, updatedAt time.Time) error
}

// setWorkers bounds concurrent feed fetches so one sync run cannot flood
// the upstream API.
const setWorkers = 4

// Service implements the price sync run.
type Service struct {
	feed    priceFeed
	catalog catalogRepo
	log     *slog.Logger
}

// NewService creates a new price sync service.
func NewService(log *slog.Logger, feed priceFeed, catalog catalogRepo) *Service {
	return &Service{
		feed:    feed,
		catalog: catalog,
		log:     log.With("service", "pricesync"),
	}
}

// Report summarizes one sync run.
type Report struct {
	SetsSynced   int
	SetsSkipped  []string
	CardsUpdated int
	Failed       []string
}

// SyncSets fetches and stores prices for the given sets. Sets are fetched
// concurrently; a set unknown to the feed is skipped, a failing set is
// recorded and does not abort the others.
func (s *Service) SyncSets(ctx context.Context, setIDs []string) (Report, error) {
	if len(setIDs) == 0 {
		return Report{}, fmt.Errorf("no sets to sync")
	}

	start := time.Now()
	results := make([]setResult, len(setIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(setWorkers)
	for i, setID := range setIDs {
		g.Go(func() error {
			results[i] = s.syncOne(gctx, setID)
			return nil
		})
	}
	// Workers never return errors; failures live in results.
	_ = g.Wait()

	report := Report{}
	for _, res := range results {
		switch {
		case res.err != nil:
			report.Failed = append(report.Failed, res.setID)
			s.log.ErrorContext(ctx, "set sync failed",
				slog.String("set_id", res.setID),
				slog.String("error", res.err.Error()),
			)
		case res.skipped:
			report.SetsSkipped = append(report.SetsSkipped, res.setID)
		default:
			report.SetsSynced++
			report.CardsUpdated += res.updated
		}
	}

	s.log.InfoContext(ctx, "price sync finished",
		slog.Int("sets_synced", report.SetsSynced),
		slog.Int("cards_updated", report.CardsUpdated),
		slog.Int("sets_failed", len(report.Failed)),
		slog.Duration("took", time.Since(start)),
	)

	if report.SetsSynced == 0 && len(report.Failed) > 0 {
		return report, fmt.Errorf("all %d sets failed", len(report.Failed))
	}
	return report, nil
}

type setResult struct {
	setID   string
	updated int
	skipped bool
	err     error
}

func (s *Service) syncOne(ctx context.Context, setID string) setResult {
	prices, err := s.feed.SetPrices(ctx, setID)
	if err != nil {
		return setResult{setID: setID, err: err}
	}
	if prices == nil {
		s.log.WarnContext(ctx, "set unknown to price feed", slog.String("set_id", setID))
		return setResult{setID: setID, skipped: true}
	}

	updated := 0
	for _, p := range prices {
		updatedAt := p.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now()
		}
		if err := s.catalog.UpdatePricing(ctx, p.CardID, p.Pricing, updatedAt); err != nil {
			// A price row for a card the catalog has not imported yet is
			// not worth failing the whole set over.
			s.log.WarnContext(ctx, "skip price update",
				slog.String("card_id", p.CardID),
				slog.String("error", err.Error()),
			)
			continue
		}
		updated++
	}

	return setResult{setID: setID, updated: updated}
}
