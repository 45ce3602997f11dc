package setpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func view(id, number, name, rarity string, price float64, collected, mastered, dup bool) CardView {
	v := CardView{
		Card: domain.Card{
			ID:     id,
			Number: number,
			Name:   name,
			Rarity: rarity,
		},
		Collected:     collected,
		Mastered:      mastered,
		HasDuplicates: dup,
	}
	if price > 0 {
		v.Card.Pricing.AvgSellPrice = ptr(price)
	}
	if collected {
		v.Summary = &domain.CardSummary{
			CardID:        id,
			TotalQuantity: 1,
			Variants:      domain.VariantCounts{domain.VariantNormal: 1},
		}
	}
	if dup {
		// Three copies of one variant: two spares.
		v.DuplicateCount = 2
		v.Summary = &domain.CardSummary{
			CardID:        id,
			TotalQuantity: 3,
			Variants:      domain.VariantCounts{domain.VariantNormal: 3},
		}
	}
	return v
}

func testViews() []CardView {
	return []CardView{
		view("base1-4", "4", "Charizard", "Rare Holo", 120, true, false, false),
		view("base1-58", "58", "Pikachu", "Common", 2, true, true, true),
		view("base1-15", "15", "Venusaur", "Rare Holo", 80, false, false, false),
		view("base1-100", "100", "Lightning Energy", "Common", 0.1, false, false, false),
	}
}

func TestApplyPipeline_CountsPartition(t *testing.T) {
	t.Parallel()

	views := testViews()
	filtered, counts := applyPipeline(views, domain.CardFilter{
		Mode:   domain.FilterAll,
		SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	assert.Len(t, filtered, 4)
	assert.Equal(t, len(views), counts.Need+counts.Have)
	assert.Equal(t, 2, counts.Have)
	assert.Equal(t, 2, counts.Need)
	// The duplicate card holds three copies of one variant: two spares.
	assert.Equal(t, 2, counts.Duplicates)
}

func TestApplyPipeline_DuplicatesCountSumsSpareCopies(t *testing.T) {
	t.Parallel()

	// Every copy beyond the first counts, per card and per variant, so a
	// single card never contributes just 1 for a taller stack.
	views := []CardView{
		view("s-1", "1", "A", "Common", 0, true, false, true), // 2 spares
		view("s-2", "2", "B", "Common", 0, true, false, false),
	}
	views[1].DuplicateCount = 1
	views[1].HasDuplicates = true

	_, counts := applyPipeline(views, domain.CardFilter{
		Mode:   domain.FilterAll,
		SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	assert.Equal(t, 3, counts.Duplicates)
}

func TestApplyPipeline_MasterModeCounts(t *testing.T) {
	t.Parallel()

	// In master mode only the mastered card counts as "have".
	_, counts := applyPipeline(testViews(), domain.CardFilter{
		Mode:   domain.FilterAll,
		SortBy: domain.SortByNumber,
	}, domain.ModeMaster)

	assert.Equal(t, 1, counts.Have)
	assert.Equal(t, 3, counts.Need)
}

func TestApplyPipeline_Search(t *testing.T) {
	t.Parallel()

	filtered, counts := applyPipeline(testViews(), domain.CardFilter{
		Search: "saur",
		Mode:   domain.FilterAll,
		SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	require.Len(t, filtered, 1)
	assert.Equal(t, "Venusaur", filtered[0].Card.Name)
	// Counts cover the search scope, not the whole set.
	assert.Equal(t, 1, counts.Need)
	assert.Equal(t, 0, counts.Have)
}

func TestApplyPipeline_SearchByNumber(t *testing.T) {
	t.Parallel()

	filtered, _ := applyPipeline(testViews(), domain.CardFilter{
		Search: "58",
		Mode:   domain.FilterAll,
		SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	require.Len(t, filtered, 1)
	assert.Equal(t, "Pikachu", filtered[0].Card.Name)
}

func TestApplyPipeline_FilterNeedAndHavePartition(t *testing.T) {
	t.Parallel()

	views := testViews()

	need, _ := applyPipeline(views, domain.CardFilter{
		Mode: domain.FilterNeed, SortBy: domain.SortByNumber,
	}, domain.ModeRegular)
	have, _ := applyPipeline(views, domain.CardFilter{
		Mode: domain.FilterHave, SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	assert.Len(t, need, 2)
	assert.Len(t, have, 2)
	assert.Equal(t, len(views), len(need)+len(have))
}

func TestApplyPipeline_FilterDuplicates(t *testing.T) {
	t.Parallel()

	filtered, _ := applyPipeline(testViews(), domain.CardFilter{
		Mode: domain.FilterDuplicates, SortBy: domain.SortByNumber,
	}, domain.ModeRegular)

	require.Len(t, filtered, 1)
	assert.Equal(t, "base1-58", filtered[0].Card.ID)
}

func TestApplyPipeline_Idempotent(t *testing.T) {
	t.Parallel()

	filter := domain.CardFilter{Mode: domain.FilterNeed, SortBy: domain.SortByName}

	once, _ := applyPipeline(testViews(), filter, domain.ModeRegular)
	twice, _ := applyPipeline(once, filter, domain.ModeRegular)

	assert.Equal(t, once, twice)
}

func TestApplyPipeline_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	views := testViews()
	wantFirst := views[0].Card.ID

	_, _ = applyPipeline(views, domain.CardFilter{
		Mode: domain.FilterAll, SortBy: domain.SortByName, SortDesc: true,
	}, domain.ModeRegular)

	assert.Equal(t, wantFirst, views[0].Card.ID)
}

func TestSortViews_NumberIsNumeric(t *testing.T) {
	t.Parallel()

	views := []CardView{
		view("s-100", "100", "C", "Common", 0, false, false, false),
		view("s-9", "9", "A", "Common", 0, false, false, false),
		view("s-21", "21", "B", "Common", 0, false, false, false),
	}
	sortViews(views, domain.SortByNumber, false)

	assert.Equal(t, []string{"9", "21", "100"}, numbers(views))
}

func TestSortViews_PromoPrefixNumbers(t *testing.T) {
	t.Parallel()

	views := []CardView{
		view("s-tg12", "TG12", "A", "Common", 0, false, false, false),
		view("s-tg3", "TG03", "B", "Common", 0, false, false, false),
		view("s-plain", "no-digits", "C", "Common", 0, false, false, false),
	}
	sortViews(views, domain.SortByNumber, false)

	assert.Equal(t, []string{"no-digits", "TG03", "TG12"}, numbers(views))
}

func TestSortViews_ReversalMirrors(t *testing.T) {
	t.Parallel()

	asc := testViews()
	sortViews(asc, domain.SortByPrice, false)
	desc := testViews()
	sortViews(desc, domain.SortByPrice, true)

	require.Equal(t, len(asc), len(desc))
	for i := range asc {
		assert.Equal(t, asc[i].Card.ID, desc[len(desc)-1-i].Card.ID)
	}
}

func TestSortViews_StableOnEqualKeys(t *testing.T) {
	t.Parallel()

	// All prices equal: catalog order must survive the sort.
	views := []CardView{
		view("s-1", "1", "A", "Common", 5, false, false, false),
		view("s-2", "2", "B", "Common", 5, false, false, false),
		view("s-3", "3", "C", "Common", 5, false, false, false),
	}
	sortViews(views, domain.SortByPrice, false)

	assert.Equal(t, []string{"s-1", "s-2", "s-3"}, ids(views))
}

func TestSortViews_NameCaseInsensitive(t *testing.T) {
	t.Parallel()

	views := []CardView{
		view("s-1", "1", "zubat", "Common", 0, false, false, false),
		view("s-2", "2", "Abra", "Common", 0, false, false, false),
	}
	sortViews(views, domain.SortByName, false)

	assert.Equal(t, "Abra", views[0].Card.Name)
}

func numbers(views []CardView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Card.Number
	}
	return out
}

func ids(views []CardView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Card.ID
	}
	return out
}
