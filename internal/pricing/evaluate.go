// Package pricing implements the listing evaluation rule: among the
// listings matching an item, the cheapest is compared against the
// second-cheapest (the reference price) to detect extreme discounts.
package pricing

import (
	"errors"
	"sort"
	"strings"

	"github.com/mabiwatch/mabiwatch/internal/market"
)

// ErrInsufficientData indicates fewer than two usable listings, so no
// reference price exists. Not a failure, just nothing to evaluate.
var ErrInsufficientData = errors.New("insufficient listing data")

// Evaluation holds the two price points extracted from a listing set.
// LowestPrice <= ReferencePrice always holds.
type Evaluation struct {
	LowestPrice    int64
	ReferencePrice int64
}

// DiscountRatio returns the savings fraction of the lowest price relative
// to the reference price.
func (e Evaluation) DiscountRatio() float64 {
	return 1 - float64(e.LowestPrice)/float64(e.ReferencePrice)
}

// Qualifies reports whether the lowest price is at or below the given
// fraction of the reference price.
func (e Evaluation) Qualifies(threshold float64) bool {
	return float64(e.LowestPrice) <= float64(e.ReferencePrice)*threshold
}

// Evaluate extracts the lowest and second-lowest unit prices among the
// listings whose display name contains itemName. The keyword search
// upstream returns near-matches, so the substring filter (case-sensitive)
// plus the two-listing minimum guards against a single stale or mis-tagged
// listing producing a false positive.
func Evaluate(itemName string, listings []market.Listing) (Evaluation, error) {
	matched := make([]market.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(l.DisplayName, itemName) {
			matched = append(matched, l)
		}
	}

	if len(matched) < 2 {
		return Evaluation{}, ErrInsufficientData
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PricePerUnit < matched[j].PricePerUnit
	})

	eval := Evaluation{
		LowestPrice:    matched[0].PricePerUnit,
		ReferencePrice: matched[1].PricePerUnit,
	}

	// A zero reference price makes the ratio meaningless.
	if eval.ReferencePrice == 0 {
		return Evaluation{}, ErrInsufficientData
	}

	return eval, nil
}
