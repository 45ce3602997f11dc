// Package variantrule derives which printing variants a catalog card can
// exist in. The upstream catalog does not carry this directly, so the rule
// reconstructs it from rarity and set conventions.
package variantrule

import (
	"strings"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// patternSets are the sets printed with pokeball and masterball pattern
// reverse holos in addition to the standard treatments.
var patternSets = map[string]bool{
	"sv3pt5": true, // 151
	"sv8pt5": true, // prismatic evolutions
}

// firstEditionSets are the WotC-era sets with a 1st edition print run.
var firstEditionSets = map[string]bool{
	"base1":  true,
	"base2":  true,
	"base3":  true,
	"base4":  true,
	"base5":  true,
	"gym1":   true,
	"gym2":   true,
	"neo1":   true,
	"neo2":   true,
	"neo3":   true,
	"neo4":   true,
	"ecard1": true,
	"ecard2": true,
	"ecard3": true,
}

// Available returns the variant set a card can legally be printed in.
// Unknown rarities fall back to the plain normal printing so a catalog
// gap never blocks collecting the card.
func Available(card domain.Card) domain.VariantSet {
	rarity := strings.ToLower(card.Rarity)

	variants := make(domain.VariantSet)

	switch {
	case rarity == "" || rarity == "common" || rarity == "uncommon":
		variants[domain.VariantNormal] = struct{}{}
		variants[domain.VariantReverseHolo] = struct{}{}
	case rarity == "rare":
		variants[domain.VariantNormal] = struct{}{}
		variants[domain.VariantReverseHolo] = struct{}{}
	case strings.Contains(rarity, "holo") && !strings.Contains(rarity, "reverse"):
		variants[domain.VariantHolo] = struct{}{}
		variants[domain.VariantReverseHolo] = struct{}{}
	default:
		// Ultra, secret, illustration and promo rarities are printed in a
		// single holofoil treatment.
		variants[domain.VariantHolo] = struct{}{}
	}

	if patternSets[card.SetID] && variants.Has(domain.VariantReverseHolo) {
		variants[domain.VariantPokeballPattern] = struct{}{}
		variants[domain.VariantMasterballPattern] = struct{}{}
	}

	if firstEditionSets[card.SetID] {
		variants[domain.VariantFirstEdition] = struct{}{}
	}

	return variants
}
