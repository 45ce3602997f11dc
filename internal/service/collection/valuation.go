package collection

import "github.com/pokebinder/pokebinder-backend/internal/domain"

// CardValue computes the monetary value of all owned copies of one card:
// the sum over every variant bucket of count times the resolved unit price.
// Missing price fields degrade to zero for that bucket only; the result is
// never negative and never NaN.
func CardValue(pricing domain.CardPricing, counts domain.VariantCounts) float64 {
	total := 0.0
	for _, v := range domain.AllVariants() {
		n := counts.Get(v)
		if n <= 0 {
			continue
		}
		total += float64(n) * pricing.UnitPrice(v)
	}
	return total
}

// EvaluateCompletion returns both completion verdicts for one card so the
// caller can pick per active collection mode without recomputation. A nil
// summary means the card is not in the collection at all.
func EvaluateCompletion(summary *domain.CardSummary, available domain.VariantSet) (collected, mastered bool) {
	return summary.IsCollected(), summary.IsMastered(available)
}
