package setpage

import (
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// GetPageInput contains the parameters for GetPage.
type GetPageInput struct {
	SetID string

	// Mode overrides the user's saved collection mode for this request.
	// An empty or unrecognized value means "use the saved setting".
	Mode domain.CollectionMode

	Filter domain.CardFilter
}

// Validate checks required fields and normalizes the filter.
func (in *GetPageInput) Validate() error {
	if in.SetID == "" {
		return domain.NewValidationError("set_id", "must not be empty")
	}
	if in.Filter.Mode != "" && !in.Filter.Mode.IsValid() {
		return domain.NewValidationError("filter", "unknown filter mode")
	}
	if in.Filter.SortBy != "" && !in.Filter.SortBy.IsValid() {
		return domain.NewValidationError("sort", "unknown sort key")
	}

	in.Filter.Normalize()
	return nil
}
