// Package catalogimport loads catalog dumps into the database. Dumps are
// NDJSON files, one set or card object per line, as exported from the
// upstream card catalog.
package catalogimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	ndjson "github.com/scizorman/go-ndjson"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

type catalogRepo interface {
	UpsertSet(ctx context.Context, s domain.Set) error
	UpsertCards(ctx context.Context, cards []domain.Card) error
}

// Service implements the catalog import.
type Service struct {
	catalog catalogRepo
	log     *slog.Logger
}

// NewService creates a new catalog import service.
func NewService(log *slog.Logger, catalog catalogRepo) *Service {
	return &Service{
		catalog: catalog,
		log:     log.With("service", "catalogimport"),
	}
}

// dump wire formats
type setRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Series       string `json:"series"`
	PrintedTotal int    `json:"printed_total"`
	ReleaseDate  string `json:"release_date"`
}

type cardRecord struct {
	ID     string `json:"id"`
	SetID  string `json:"set_id"`
	Number string `json:"number"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

// Report summarizes one import run.
type Report struct {
	SetsImported  int
	CardsImported int
	Skipped       int
}

// cardBatchSize keeps one insert batch at a size Postgres handles
// comfortably.
const cardBatchSize = 500

// ImportSets reads a set dump and upserts every valid record.
func (s *Service) ImportSets(ctx context.Context, r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read sets dump: %w", err)
	}

	var records []setRecord
	if err := ndjson.Unmarshal(data, &records); err != nil {
		return Report{}, fmt.Errorf("parse sets dump: %w", err)
	}

	report := Report{}
	for _, rec := range records {
		if rec.ID == "" || rec.Name == "" {
			report.Skipped++
			s.log.WarnContext(ctx, "skip set record", slog.String("id", rec.ID))
			continue
		}

		set := domain.Set{
			ID:           rec.ID,
			Name:         rec.Name,
			Series:       rec.Series,
			PrintedTotal: rec.PrintedTotal,
		}
		if rec.ReleaseDate != "" {
			released, err := time.Parse("2006-01-02", rec.ReleaseDate)
			if err != nil {
				report.Skipped++
				s.log.WarnContext(ctx, "skip set record, bad release date",
					slog.String("id", rec.ID),
					slog.String("release_date", rec.ReleaseDate),
				)
				continue
			}
			set.ReleaseDate = released
		}

		if err := s.catalog.UpsertSet(ctx, set); err != nil {
			return report, fmt.Errorf("upsert set %s: %w", rec.ID, err)
		}
		report.SetsImported++
	}

	s.log.InfoContext(ctx, "sets imported",
		slog.Int("imported", report.SetsImported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

// ImportCards reads a card dump and upserts every valid record in batches.
func (s *Service) ImportCards(ctx context.Context, r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read cards dump: %w", err)
	}

	var records []cardRecord
	if err := ndjson.Unmarshal(data, &records); err != nil {
		return Report{}, fmt.Errorf("parse cards dump: %w", err)
	}

	report := Report{}
	batch := make([]domain.Card, 0, cardBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.catalog.UpsertCards(ctx, batch); err != nil {
			return fmt.Errorf("upsert cards: %w", err)
		}
		report.CardsImported += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, rec := range records {
		if rec.ID == "" || rec.SetID == "" || rec.Name == "" {
			report.Skipped++
			s.log.WarnContext(ctx, "skip card record", slog.String("id", rec.ID))
			continue
		}

		batch = append(batch, domain.Card{
			ID:     rec.ID,
			SetID:  rec.SetID,
			Number: rec.Number,
			Name:   rec.Name,
			Rarity: rec.Rarity,
		})
		if len(batch) == cardBatchSize {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := flush(); err != nil {
		return report, err
	}

	s.log.InfoContext(ctx, "cards imported",
		slog.Int("imported", report.CardsImported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}
