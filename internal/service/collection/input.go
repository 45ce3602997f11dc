package collection

import "github.com/pokebinder/pokebinder-backend/internal/domain"

const maxMutationQuantity = 99

// AddVariantInput describes one add mutation.
type AddVariantInput struct {
	CardID    string
	Variant   domain.CardVariant
	Condition domain.CardCondition
	Quantity  int
}

// Validate checks the input and applies defaults: quantity 1, condition
// near mint. Unknown variants are rejected here — the persistence boundary
// never sees them.
func (in *AddVariantInput) Validate() error {
	var errs []domain.FieldError

	if in.CardID == "" {
		errs = append(errs, domain.FieldError{Field: "cardId", Message: "required"})
	}
	if !in.Variant.IsValid() {
		errs = append(errs, domain.FieldError{Field: "variant", Message: "unknown variant"})
	}
	if in.Condition == "" {
		in.Condition = domain.ConditionNearMint
	} else if !in.Condition.IsValid() {
		errs = append(errs, domain.FieldError{Field: "condition", Message: "unknown condition"})
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 || in.Quantity > maxMutationQuantity {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be between 1 and 99"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RemoveVariantInput describes one remove mutation.
type RemoveVariantInput struct {
	CardID    string
	Variant   domain.CardVariant
	Condition domain.CardCondition
	Quantity  int
}

// Validate checks the input and applies the same defaults as AddVariantInput.
func (in *RemoveVariantInput) Validate() error {
	add := AddVariantInput(*in)
	if err := add.Validate(); err != nil {
		return err
	}
	*in = RemoveVariantInput(add)
	return nil
}

// ResetSetInput describes a bulk reset of one set.
type ResetSetInput struct {
	SetID string
}

// Validate checks the input.
func (in *ResetSetInput) Validate() error {
	if in.SetID == "" {
		return domain.NewValidationError("setId", "required")
	}
	return nil
}
