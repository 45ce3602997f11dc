package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionRow is the persisted unit of ownership: one row per
// (user, card, variant, condition). A quantity of zero is never stored —
// the row is deleted instead.
type CollectionRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CardID    string
	Variant   CardVariant
	Quantity  int
	Condition CardCondition
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardSummary is the in-memory aggregate of all rows for one (user, card).
// It is never persisted; every fetch rebuilds it from the rows.
type CardSummary struct {
	CardID        string
	Variants      VariantCounts
	TotalQuantity int
	DateAdded     time.Time
	LastUpdated   time.Time
}

// NewCardSummary returns an empty summary for the given card with all
// variant buckets at zero and both timestamps set to ts.
func NewCardSummary(cardID string, ts time.Time) *CardSummary {
	counts := make(VariantCounts, len(AllVariants()))
	for _, v := range AllVariants() {
		counts[v] = 0
	}
	return &CardSummary{
		CardID:      cardID,
		Variants:    counts,
		DateAdded:   ts,
		LastUpdated: ts,
	}
}

// HasDuplicates reports whether any single variant bucket holds more than
// one copy. One normal plus one holo is not a duplicate even though the
// total is two; only extra copies within the same variant count.
func (s *CardSummary) HasDuplicates() bool {
	for _, n := range s.Variants {
		if n > 1 {
			return true
		}
	}
	return false
}

// DuplicateCount returns the number of copies beyond the first within
// each variant bucket, summed over all buckets.
func (s *CardSummary) DuplicateCount() int {
	count := 0
	for _, n := range s.Variants {
		if n > 1 {
			count += n - 1
		}
	}
	return count
}

// IsCollected reports whether the user owns at least one copy of any variant.
func (s *CardSummary) IsCollected() bool {
	return s != nil && s.TotalQuantity > 0
}

// IsMastered reports whether the user owns at least one copy of every
// variant the card can legally have. A card with no available variants is
// vacuously mastered when it is collected.
func (s *CardSummary) IsMastered(available VariantSet) bool {
	if !s.IsCollected() {
		return false
	}
	for v := range available {
		if s.Variants.Get(v) <= 0 {
			return false
		}
	}
	return true
}

// IsComplete reports completion under the given collection mode.
func (s *CardSummary) IsComplete(mode CollectionMode, available VariantSet) bool {
	if mode == ModeMaster {
		return s.IsMastered(available)
	}
	return s.IsCollected()
}

// CollectionOverview holds per-user totals across the whole collection.
type CollectionOverview struct {
	UniqueCards    int
	TotalCopies    int
	DuplicateCount int
	TotalValue     float64
}

// WishlistItem is a card variant the user wants but may not own yet.
type WishlistItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CardID    string
	Variant   CardVariant
	Note      *string
	CreatedAt time.Time
}
