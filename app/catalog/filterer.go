package catalog

import (
	"math"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filterer evaluates a FilterState and a sort key against a flattened
// offer list. Evaluation is a fresh full pass on every call; the dataset
// is bounded (tens to low hundreds of offers), so no indexing is done.
type Filterer struct {
	collator *collate.Collator
}

func NewFilterer() *Filterer {
	return &Filterer{
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Run returns the subset of offers matching filters, ordered by sortKey.
// With an empty FilterState the result is a reordering of the input, never
// a reduction.
func (f *Filterer) Run(offers []FlattenedOffer, filters FilterState, sortKey string) []FlattenedOffer {
	matched := make([]FlattenedOffer, 0, len(offers))
	query := searchNormalize(filters.Search)
	for _, o := range offers {
		if !f.matches(o, filters, query) {
			continue
		}
		matched = append(matched, o)
	}
	f.sortOffers(matched, sortKey)
	return matched
}

func (f *Filterer) matches(o FlattenedOffer, filters FilterState, query string) bool {
	if query != "" && !matchesSearch(o, query) {
		return false
	}
	if len(filters.Brands) > 0 && !slices.Contains(filters.Brands, o.Brand) {
		return false
	}
	if len(filters.Generations) > 0 && !slices.Contains(filters.Generations, o.Generation) {
		return false
	}
	if len(filters.Series) > 0 && !slices.Contains(filters.Series, o.Series) {
		return false
	}
	if len(filters.Vendors) > 0 && !slices.Contains(filters.Vendors, o.Vendor) {
		return false
	}
	if len(filters.Cores) > 0 && !slices.Contains(filters.Cores, o.Cores) {
		return false
	}
	if len(filters.Threads) > 0 && !slices.Contains(filters.Threads, o.Threads) {
		return false
	}
	if filters.InStockOnly && !o.InStock {
		return false
	}
	if filters.MinPrice != nil && o.Price < *filters.MinPrice {
		return false
	}
	if filters.MaxPrice != nil && o.Price > *filters.MaxPrice {
		return false
	}
	// Offers lacking a spec fail any active bound on that dimension: a
	// missing value reads as -Inf against a minimum and +Inf against a
	// maximum.
	if filters.MinBaseClockGHz != nil && boundValue(o.BaseClockGHz, false) < *filters.MinBaseClockGHz {
		return false
	}
	if filters.MaxBaseClockGHz != nil && boundValue(o.BaseClockGHz, true) > *filters.MaxBaseClockGHz {
		return false
	}
	if filters.MinTDPWatt != nil && boundValue(o.TDPWatt, false) < *filters.MinTDPWatt {
		return false
	}
	if filters.MaxTDPWatt != nil && boundValue(o.TDPWatt, true) > *filters.MaxTDPWatt {
		return false
	}
	return true
}

func boundValue(v *float64, max bool) float64 {
	if v != nil {
		return *v
	}
	if max {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func matchesSearch(o FlattenedOffer, query string) bool {
	fields := []string{
		o.Model,
		string(o.Brand),
		o.Series,
		o.Generation,
		o.Vendor,
		// Combined fields catch compact queries spanning two attributes,
		// e.g. "i513600k" against "Core i5" + "13600K".
		string(o.Brand) + " " + o.Model,
		o.Series + " " + o.Model,
	}
	for _, field := range fields {
		if strings.Contains(searchNormalize(field), query) {
			return true
		}
	}
	return false
}

// searchNormalize lower-cases and strips everything that is not a letter
// or digit, so "Core i5-13600K" and "i513600k" compare equal as
// substrings.
func searchNormalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sortOffers orders offers in place by a compound "<field>-<direction>"
// token. Direction defaults to ascending; an unrecognized field leaves the
// input order untouched.
func (f *Filterer) sortOffers(offers []FlattenedOffer, sortKey string) {
	field, dir, ok := strings.Cut(sortKey, "-")
	if !ok {
		dir = "asc"
	}
	factor := 1
	if dir == "desc" {
		factor = -1
	}

	var cmp func(a, b FlattenedOffer) int
	switch field {
	case "price":
		cmp = func(a, b FlattenedOffer) int {
			switch {
			case a.Price < b.Price:
				return -1
			case a.Price > b.Price:
				return 1
			}
			return 0
		}
	case "brand":
		cmp = func(a, b FlattenedOffer) int {
			return f.collator.CompareString(string(a.Brand), string(b.Brand))
		}
	case "generation":
		cmp = func(a, b FlattenedOffer) int {
			return a.GenerationRank - b.GenerationRank
		}
	case "series":
		cmp = func(a, b FlattenedOffer) int {
			return f.collator.CompareString(a.Series, b.Series)
		}
	default:
		return
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return cmp(offers[i], offers[j])*factor < 0
	})
}
