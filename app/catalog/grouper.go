package catalog

import "strconv"

// Grouping is an insertion-ordered mapping from canonical model name to
// the offers sharing that name. Group creation order follows the first
// offer seen for each name.
type Grouping struct {
	order  []string
	groups map[string][]Offer
}

// Keys returns the canonical model names in insertion order.
func (g *Grouping) Keys() []string {
	return g.order
}

// Get returns the offers grouped under the given canonical model name.
func (g *Grouping) Get(model string) []Offer {
	return g.groups[model]
}

// Len returns the number of groups.
func (g *Grouping) Len() int {
	return len(g.order)
}

// Grouper groups offers by canonical product identity. The grouping key
// is the literal canonical model name: no fuzzy matching is attempted, so
// vendors reporting slightly different standardized names for the same
// physical product produce separate groups.
type Grouper struct{}

func NewGrouper() *Grouper {
	return &Grouper{}
}

func (g *Grouper) Run(offers []Offer) *Grouping {
	grouping := &Grouping{groups: make(map[string][]Offer)}
	for _, offer := range offers {
		key := offer.Model
		if _, ok := grouping.groups[key]; !ok {
			grouping.order = append(grouping.order, key)
		}
		grouping.groups[key] = append(grouping.groups[key], offer)
	}
	return grouping
}

// GenerationRank extracts a numeric sort key from a generation label: the
// integer value of the first run of decimal digits, or 0 when the label
// has no digits. Ranks are not comparable across brands ("Ryzen 5000"
// ranks 5000 against Intel's 14); callers needing cross-brand ordering
// must pre-filter by brand.
func GenerationRank(generation string) int {
	start := -1
	for i, r := range generation {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoiDigits(generation[start:i])
		}
	}
	if start >= 0 {
		return atoiDigits(generation[start:])
	}
	return 0
}

// atoiDigits parses a run of decimal digits, degrading to 0 when the run
// does not fit in an int.
func atoiDigits(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
