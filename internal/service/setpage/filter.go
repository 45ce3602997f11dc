package setpage

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

type pipelineCounts struct {
	Need       int
	Have       int
	Duplicates int
}

// applyPipeline runs the browse pipeline over the assembled views:
// text search first, then the derived counts over the search scope, then
// the mode filter, then a stable sort. The input slice is not modified.
func applyPipeline(views []CardView, filter domain.CardFilter, mode domain.CollectionMode) ([]CardView, pipelineCounts) {
	searched := searchViews(views, filter.Search)
	counts := countViews(searched, mode)
	filtered := filterViews(searched, filter.Mode, mode)
	sortViews(filtered, filter.SortBy, filter.SortDesc)
	return filtered, counts
}

func searchViews(views []CardView, search string) []CardView {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		out := make([]CardView, len(views))
		copy(out, views)
		return out
	}

	out := make([]CardView, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Card.Name), search) ||
			strings.Contains(strings.ToLower(v.Card.Number), search) {
			out = append(out, v)
		}
	}
	return out
}

func countViews(views []CardView, mode domain.CollectionMode) pipelineCounts {
	var c pipelineCounts
	for _, v := range views {
		if isComplete(v, mode) {
			c.Have++
		} else {
			c.Need++
		}
		c.Duplicates += v.DuplicateCount
	}
	return c
}

func filterViews(views []CardView, fm domain.FilterMode, mode domain.CollectionMode) []CardView {
	if fm == domain.FilterAll {
		return views
	}

	out := make([]CardView, 0, len(views))
	for _, v := range views {
		var keep bool
		switch fm {
		case domain.FilterNeed:
			keep = !isComplete(v, mode)
		case domain.FilterHave:
			keep = isComplete(v, mode)
		case domain.FilterDuplicates:
			keep = v.HasDuplicates
		}
		if keep {
			out = append(out, v)
		}
	}
	return out
}

func isComplete(v CardView, mode domain.CollectionMode) bool {
	if mode == domain.ModeMaster {
		return v.Mastered
	}
	return v.Collected
}

// sortViews sorts in place. The sort is stable so that cards comparing
// equal under the chosen key keep their catalog order.
func sortViews(views []CardView, key domain.SortKey, desc bool) {
	var less func(a, b CardView) bool

	switch key {
	case domain.SortByName:
		less = func(a, b CardView) bool {
			return strings.ToLower(a.Card.Name) < strings.ToLower(b.Card.Name)
		}
	case domain.SortByRarity:
		less = func(a, b CardView) bool {
			return strings.ToLower(a.Card.Rarity) < strings.ToLower(b.Card.Rarity)
		}
	case domain.SortByPrice:
		less = func(a, b CardView) bool {
			return cardPrice(a) < cardPrice(b)
		}
	default:
		less = func(a, b CardView) bool {
			an, bn := numberKey(a.Card.Number), numberKey(b.Card.Number)
			if an != bn {
				return an < bn
			}
			return a.Card.Number < b.Card.Number
		}
	}

	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(views[j], views[i])
		}
		return less(views[i], views[j])
	})
}

// cardPrice is the sort key for price ordering: the base market price of
// the card itself, not the caller's owned value. Cards without pricing
// sort as zero.
func cardPrice(v CardView) float64 {
	return v.Card.Pricing.UnitPrice(domain.VariantNormal)
}

// numberKey extracts the leading integer of a card number. Promo numbers
// like "SV049" or "TG12" carry a prefix, so the first digit run anywhere
// in the string counts; a number with no digits sorts as zero.
func numberKey(number string) int {
	start := -1
	for i, r := range number {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	end := start
	for end < len(number) && number[end] >= '0' && number[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(number[start:end])
	if err != nil {
		return 0
	}
	return n
}
