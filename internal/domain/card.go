package domain

import "time"

// Set is a printed card set from the catalog.
type Set struct {
	ID           string
	Name         string
	Series       string
	PrintedTotal int
	ReleaseDate  time.Time
}

// Card is a catalog card. IDs follow the upstream catalog convention
// ("<set>-<number>", e.g. "base1-4") and are stable across imports.
type Card struct {
	ID              string
	SetID           string
	Number          string
	Name            string
	Rarity          string
	Pricing         CardPricing
	PricesUpdatedAt *time.Time
}

// CardPricing holds the catalog price points for a card. Any field may be
// nil — an unpriced card is valid and contributes zero to valuations.
type CardPricing struct {
	AvgSellPrice     *float64
	LowPrice         *float64
	TrendPrice       *float64
	ReverseHoloSell  *float64
	ReverseHoloLow   *float64
	ReverseHoloTrend *float64
}

// UnitPrice resolves the price of a single copy of the given variant.
// Base variants resolve avg sell → low → trend → 0. Reverse holo tries its
// dedicated fields first and falls back to the base chain. Pokeball,
// masterball and 1st edition printings have no dedicated catalog fields
// and use the base chain.
func (p CardPricing) UnitPrice(variant CardVariant) float64 {
	if variant == VariantReverseHolo {
		if price, ok := firstPrice(p.ReverseHoloSell, p.ReverseHoloLow, p.ReverseHoloTrend); ok {
			return price
		}
	}
	price, _ := firstPrice(p.AvgSellPrice, p.LowPrice, p.TrendPrice)
	return price
}

// firstPrice returns the first non-nil, non-negative price.
func firstPrice(candidates ...*float64) (float64, bool) {
	for _, c := range candidates {
		if c != nil && *c >= 0 {
			return *c, true
		}
	}
	return 0, false
}
