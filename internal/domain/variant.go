package domain

// CardVariant represents a distinct printing style of the same card,
// tracked as a separate collectible unit. Persisted values use snake_case.
type CardVariant string

const (
	VariantNormal            CardVariant = "normal"
	VariantHolo              CardVariant = "holo"
	VariantReverseHolo       CardVariant = "reverse_holo"
	VariantPokeballPattern   CardVariant = "pokeball_pattern"
	VariantMasterballPattern CardVariant = "masterball_pattern"
	VariantFirstEdition      CardVariant = "1st_edition"
)

func (v CardVariant) String() string { return string(v) }

func (v CardVariant) IsValid() bool {
	switch v {
	case VariantNormal, VariantHolo, VariantReverseHolo,
		VariantPokeballPattern, VariantMasterballPattern, VariantFirstEdition:
		return true
	}
	return false
}

// AllVariants returns every variant in a fixed order. The order is the
// canonical iteration order for counting and valuation, so the same
// summary always produces the same result.
func AllVariants() []CardVariant {
	return []CardVariant{
		VariantNormal,
		VariantHolo,
		VariantReverseHolo,
		VariantPokeballPattern,
		VariantMasterballPattern,
		VariantFirstEdition,
	}
}

// VariantSet is the set of variants a card can legally have.
// The rule producing it is rarity/era dependent and injected by the caller.
type VariantSet map[CardVariant]struct{}

// NewVariantSet builds a VariantSet from the given variants.
// Invalid variants are dropped.
func NewVariantSet(variants ...CardVariant) VariantSet {
	s := make(VariantSet, len(variants))
	for _, v := range variants {
		if v.IsValid() {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports whether the set contains v.
func (s VariantSet) Has(v CardVariant) bool {
	_, ok := s[v]
	return ok
}

// VariantCounts holds the number of owned copies per variant.
// It is keyed by the CardVariant tag itself so the aggregator, the
// completion evaluator and the valuation calculator all share one mapping.
type VariantCounts map[CardVariant]int

// Get returns the count for v, zero when absent.
func (c VariantCounts) Get(v CardVariant) int { return c[v] }

// Total returns the sum over all variant buckets.
func (c VariantCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
