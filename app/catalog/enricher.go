package catalog

import (
	"math"
	"sort"
	"time"
)

// Enricher turns grouped offers into the two read-side views: grouped
// Products with derived fields, and a FlattenedOffer row per (product,
// vendor) pair.
type Enricher struct {
	now func() time.Time
}

func NewEnricher() *Enricher {
	return &Enricher{now: time.Now}
}

// Run builds both views. Products are sorted ascending by BestPrice; the
// flattened list preserves group insertion order. Canonical display
// attributes (brand, specs, generation, series) are taken from the first
// offer of each group; conflicting specs on later offers are discarded.
func (e *Enricher) Run(grouping *Grouping) ([]Product, []FlattenedOffer) {
	products := make([]Product, 0, grouping.Len())
	flattened := make([]FlattenedOffer, 0)
	seen := e.now()

	for _, model := range grouping.Keys() {
		group := grouping.Get(model)
		if len(group) == 0 {
			continue
		}
		first := group[0]
		id := Slugify(first.Model)
		rank := GenerationRank(first.Generation)

		offers := make([]ProductOffer, 0, len(group))
		bestPrice := math.Inf(1)
		for _, o := range group {
			inStock := !math.IsInf(o.Price, 0) && !math.IsNaN(o.Price) && o.Price > 0
			offers = append(offers, ProductOffer{
				Store:    o.Vendor,
				Price:    o.Price,
				URL:      o.URL,
				InStock:  inStock,
				LastSeen: seen,
			})
			if o.Price < bestPrice {
				bestPrice = o.Price
			}
		}
		// Degenerate case: a group with no finite prices gets BestPrice 0.
		// Cannot happen after normalization, but must not fail.
		if math.IsInf(bestPrice, 0) {
			bestPrice = 0
		}

		products = append(products, Product{
			ID:             id,
			Brand:          first.Brand,
			Model:          first.Model,
			Generation:     first.Generation,
			Series:         first.Series,
			Cores:          intSpec(first.Specs.Cores),
			Threads:        intSpec(first.Specs.Threads),
			BaseClockGHz:   first.Specs.BaseClockGHz,
			BoostClockGHz:  nil,
			TDPWatt:        first.Specs.TDPWatt,
			Offers:         offers,
			BestPrice:      bestPrice,
			GenerationRank: rank,
		})

		for _, o := range group {
			flattened = append(flattened, FlattenedOffer{
				ID:             id + "-" + Slugify(o.Vendor),
				Brand:          first.Brand,
				Model:          first.Model,
				Generation:     first.Generation,
				Series:         first.Series,
				Cores:          intSpec(first.Specs.Cores),
				Threads:        intSpec(first.Specs.Threads),
				BaseClockGHz:   first.Specs.BaseClockGHz,
				TDPWatt:        first.Specs.TDPWatt,
				Vendor:         o.Vendor,
				Price:          o.Price,
				URL:            o.URL,
				InStock:        !math.IsInf(o.Price, 0) && !math.IsNaN(o.Price) && o.Price > 0,
				GenerationRank: rank,
			})
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].BestPrice < products[j].BestPrice
	})

	return products, flattened
}

func intSpec(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
