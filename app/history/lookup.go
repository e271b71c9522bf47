package history

import (
	"errors"
	"fmt"
	"slices"

	"cpuscout/app/catalog"
)

// ErrNotFound is returned for an unknown product slug, an unknown vendor,
// or a vendor subset that empties the result set. Callers must be able to
// distinguish "no such product" from an empty-but-successful response, so
// these cases are never reported as empty success.
var ErrNotFound = errors.New("not found")

// VendorPalette labels a vendor with its display color.
type VendorPalette interface {
	Color(vendor string) string
}

type Series struct {
	Vendor string        `json:"vendor"`
	Brand  catalog.Brand `json:"brand"`
	Color  string        `json:"color,omitempty"`
	Data   []Point       `json:"data"`
}

type Result struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Slug   string   `json:"slug"`
	Vendor string   `json:"vendor,omitempty"`
	Series []Series `json:"series"`
}

// Lookup resolves price-history queries against an enriched product list.
type Lookup struct {
	generator *Generator
	palette   VendorPalette
}

func NewLookup(generator *Generator, palette VendorPalette) *Lookup {
	return &Lookup{generator: generator, palette: palette}
}

// BySlug returns one labeled series per vendor offering the product,
// optionally restricted to a vendor subset.
func (l *Lookup) BySlug(products []catalog.Product, slug string, vendors []string) (*Result, error) {
	product := findProduct(products, slug)
	if product == nil {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}

	series := make([]Series, 0, len(product.Offers))
	for _, offer := range product.Offers {
		if len(vendors) > 0 && !slices.Contains(vendors, offer.Store) {
			continue
		}
		series = append(series, l.vendorSeries(product, offer))
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no offers for %q matching vendors %v: %w", slug, vendors, ErrNotFound)
	}

	return &Result{
		Kind:   "multi",
		Title:  productTitle(product),
		Slug:   slug,
		Series: series,
	}, nil
}

// ByOffer returns the single series for one (product, vendor) pair. The
// vendor is matched by its slug, so "micro-center" resolves "Micro
// Center".
func (l *Lookup) ByOffer(products []catalog.Product, slug, vendor string) (*Result, error) {
	product := findProduct(products, slug)
	if product == nil {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}

	want := catalog.Slugify(vendor)
	for _, offer := range product.Offers {
		if catalog.Slugify(offer.Store) != want {
			continue
		}
		return &Result{
			Kind:   "single",
			Title:  fmt.Sprintf("%s — %s", productTitle(product), offer.Store),
			Slug:   slug,
			Vendor: offer.Store,
			Series: []Series{l.vendorSeries(product, offer)},
		}, nil
	}
	return nil, fmt.Errorf("offer %q/%q: %w", slug, vendor, ErrNotFound)
}

func (l *Lookup) vendorSeries(product *catalog.Product, offer catalog.ProductOffer) Series {
	s := Series{
		Vendor: offer.Store,
		Brand:  product.Brand,
		Data:   l.generator.Run(offer.Price),
	}
	if l.palette != nil {
		s.Color = l.palette.Color(offer.Store)
	}
	return s
}

func findProduct(products []catalog.Product, slug string) *catalog.Product {
	for i := range products {
		if products[i].ID == slug {
			return &products[i]
		}
	}
	return nil
}

func productTitle(p *catalog.Product) string {
	return fmt.Sprintf("%s %s %s", p.Brand, p.Series, p.Model)
}
