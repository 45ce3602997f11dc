package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

var (
	t0 = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(24 * time.Hour)
	t2 = t0.Add(48 * time.Hour)
)

func row(cardID string, variant domain.CardVariant, qty int, created, updated time.Time) domain.CollectionRow {
	return domain.CollectionRow{
		CardID:    cardID,
		Variant:   variant,
		Quantity:  qty,
		Condition: domain.ConditionNearMint,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestAggregate_BucketsPerVariant(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	rows := []domain.CollectionRow{
		row("base1-4", domain.VariantNormal, 2, t0, t0),
		row("base1-4", domain.VariantHolo, 1, t1, t1),
		// Same variant, different condition: rows merge into one bucket.
		row("base1-4", domain.VariantNormal, 1, t2, t2),
		row("base1-58", domain.VariantNormal, 1, t0, t0),
	}

	summaries := svc.Aggregate(rows)
	require.Len(t, summaries, 2)

	s := summaries["base1-4"]
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Variants.Get(domain.VariantNormal))
	assert.Equal(t, 1, s.Variants.Get(domain.VariantHolo))
	assert.Equal(t, 4, s.TotalQuantity)
	assert.Equal(t, s.TotalQuantity, s.Variants.Total())
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	rows := []domain.CollectionRow{
		row("base1-4", domain.VariantNormal, 2, t1, t1),
		row("base1-4", domain.VariantHolo, 1, t0, t2),
	}
	reversed := []domain.CollectionRow{rows[1], rows[0]}

	a := svc.Aggregate(rows)["base1-4"]
	b := svc.Aggregate(reversed)["base1-4"]

	assert.Equal(t, a, b)
}

func TestAggregate_Timestamps(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	summaries := svc.Aggregate([]domain.CollectionRow{
		row("base1-4", domain.VariantNormal, 1, t1, t1),
		row("base1-4", domain.VariantHolo, 1, t0, t2),
	})

	s := summaries["base1-4"]
	require.NotNil(t, s)
	assert.Equal(t, t0, s.DateAdded)
	assert.Equal(t, t2, s.LastUpdated)
}

func TestAggregate_SkipsUnknownVariant(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	summaries := svc.Aggregate([]domain.CollectionRow{
		row("base1-4", domain.VariantNormal, 2, t0, t0),
		row("base1-4", "shiny_vault", 5, t0, t0),
	})

	s := summaries["base1-4"]
	require.NotNil(t, s)
	// The unknown row contributes to no bucket and not to the total.
	assert.Equal(t, 2, s.TotalQuantity)
	assert.Equal(t, s.TotalQuantity, s.Variants.Total())
}

func TestAggregate_SkipsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	summaries := svc.Aggregate([]domain.CollectionRow{
		row("base1-4", domain.VariantNormal, -3, t0, t0),
		row("base1-4", domain.VariantNormal, 0, t0, t0),
	})

	// Every row was skipped, so the card must not appear at all.
	assert.Empty(t, summaries)
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	assert.Empty(t, svc.Aggregate(nil))
}
