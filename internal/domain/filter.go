package domain

// CardFilter contains the browse-view filtering and sorting parameters.
// Filtering happens in memory over the already-aggregated set page, not
// in SQL — a set is small enough that re-deriving the view per request is
// cheaper than round-tripping every toggle.
type CardFilter struct {
	// Search matches case-insensitively as a substring of the card name
	// or the card number. Empty means no text filter.
	Search string

	// Mode partitions cards by completion state under the active
	// collection mode, or by duplicate ownership.
	Mode FilterMode

	// SortBy selects the comparator; SortDesc flips its direction.
	SortBy   SortKey
	SortDesc bool
}

// Normalize applies defaults for zero values.
func (f *CardFilter) Normalize() {
	if !f.Mode.IsValid() {
		f.Mode = FilterAll
	}
	if !f.SortBy.IsValid() {
		f.SortBy = SortByNumber
	}
}
