package setpage

import (
	"github.com/montanaflynn/stats"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// CardView is one card on the set page: catalog data joined with the
// caller's collection state.
type CardView struct {
	Card           domain.Card
	Summary        *domain.CardSummary // nil when the card is not in the collection
	Available      domain.VariantSet
	Collected      bool
	Mastered       bool
	HasDuplicates  bool
	DuplicateCount int
	Value          float64
}

// Page is the assembled browse view for one set.
type Page struct {
	Set  domain.Set
	Mode domain.CollectionMode

	// Cards is the filtered, sorted view list.
	Cards []CardView

	// NeedCount and HaveCount partition the cards that match the text
	// search, before the mode filter narrows the list. With an empty
	// search, NeedCount+HaveCount equals the set size. DuplicatesCount
	// sums the copies beyond the first per variant over the same scope.
	NeedCount       int
	HaveCount       int
	DuplicatesCount int

	Progress Progress
}

// Progress describes set completion and collection value over the whole
// set, independent of any active filter.
type Progress struct {
	TotalCards     int
	CollectedCount int
	MasteredCount  int
	TotalValue     float64

	// MeanCardValue and MedianCardValue are computed over collected
	// cards only; both are zero when nothing is collected.
	MeanCardValue   float64
	MedianCardValue float64
}

// computeProgress derives set-level completion and valuation stats.
func computeProgress(views []CardView) Progress {
	p := Progress{TotalCards: len(views)}

	var values []float64
	for _, v := range views {
		if v.Collected {
			p.CollectedCount++
			values = append(values, v.Value)
		}
		if v.Mastered {
			p.MasteredCount++
		}
		p.TotalValue += v.Value
	}

	if len(values) > 0 {
		// Mean and Median only fail on empty input, which is excluded above.
		p.MeanCardValue, _ = stats.Mean(values)
		p.MedianCardValue, _ = stats.Median(values)
	}

	return p
}
