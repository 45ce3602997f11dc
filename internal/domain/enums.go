package domain

// CardCondition represents the physical grading of a card copy.
type CardCondition string

const (
	ConditionMint          CardCondition = "MINT"
	ConditionNearMint      CardCondition = "NEAR_MINT"
	ConditionExcellent     CardCondition = "EXCELLENT"
	ConditionLightlyPlayed CardCondition = "LIGHTLY_PLAYED"
	ConditionPlayed        CardCondition = "PLAYED"
	ConditionPoor          CardCondition = "POOR"
)

func (c CardCondition) String() string { return string(c) }

func (c CardCondition) IsValid() bool {
	switch c {
	case ConditionMint, ConditionNearMint, ConditionExcellent,
		ConditionLightlyPlayed, ConditionPlayed, ConditionPoor:
		return true
	}
	return false
}

// CollectionMode selects how set completion is judged.
// In regular mode a card counts as complete when any variant is owned;
// in master mode every available variant must be owned.
type CollectionMode string

const (
	ModeRegular CollectionMode = "regular"
	ModeMaster  CollectionMode = "master"
)

func (m CollectionMode) String() string { return string(m) }

func (m CollectionMode) IsValid() bool {
	switch m {
	case ModeRegular, ModeMaster:
		return true
	}
	return false
}

// FilterMode partitions a set's cards for the browse view.
type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterNeed       FilterMode = "need"
	FilterHave       FilterMode = "have"
	FilterDuplicates FilterMode = "duplicates"
)

func (f FilterMode) String() string { return string(f) }

func (f FilterMode) IsValid() bool {
	switch f {
	case FilterAll, FilterNeed, FilterHave, FilterDuplicates:
		return true
	}
	return false
}

// SortKey selects the comparator for the browse view.
type SortKey string

const (
	SortByNumber SortKey = "number"
	SortByName   SortKey = "name"
	SortByRarity SortKey = "rarity"
	SortByPrice  SortKey = "price"
)

func (k SortKey) String() string { return string(k) }

func (k SortKey) IsValid() bool {
	switch k {
	case SortByNumber, SortByName, SortByRarity, SortByPrice:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
