package history

import (
	"errors"
	"testing"
	"time"

	"cpuscout/app/catalog"
)

type staticPalette map[string]string

func (p staticPalette) Color(vendor string) string { return p[vendor] }

func testProducts() []catalog.Product {
	seen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []catalog.Product{
		{
			ID: "core-i5-12400f", Brand: catalog.BrandIntel,
			Model: "Core i5-12400F", Series: "Core i5",
			Offers: []catalog.ProductOffer{
				{Store: "Newegg", Price: 129.99, URL: "http://a", InStock: true, LastSeen: seen},
				{Store: "Micro Center", Price: 124.99, URL: "http://b", InStock: true, LastSeen: seen},
			},
		},
	}
}

func testLookup() *Lookup {
	return NewLookup(fixedGenerator(30), staticPalette{"Newegg": "#4C8FFF"})
}

func TestLookup_BySlug(t *testing.T) {
	result, err := testLookup().BySlug(testProducts(), "core-i5-12400f", nil)
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	if result.Kind != "multi" {
		t.Errorf("Expected kind 'multi', got %q", result.Kind)
	}
	if result.Title != "Intel Core i5 Core i5-12400F" {
		t.Errorf("Unexpected title: %q", result.Title)
	}
	if len(result.Series) != 2 {
		t.Fatalf("Expected a series per vendor, got %d", len(result.Series))
	}
	if result.Series[0].Color != "#4C8FFF" {
		t.Errorf("Expected palette color on Newegg series, got %q", result.Series[0].Color)
	}
	if len(result.Series[0].Data) != 30 {
		t.Errorf("Expected 30-day series, got %d points", len(result.Series[0].Data))
	}
}

func TestLookup_BySlugVendorSubset(t *testing.T) {
	result, err := testLookup().BySlug(testProducts(), "core-i5-12400f", []string{"Micro Center"})
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	if len(result.Series) != 1 || result.Series[0].Vendor != "Micro Center" {
		t.Errorf("Expected only the Micro Center series, got %+v", result.Series)
	}
}

func TestLookup_UnknownSlugIsNotFound(t *testing.T) {
	_, err := testLookup().BySlug(testProducts(), "no-such-cpu", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookup_EmptyVendorSubsetIsNotFound(t *testing.T) {
	// A vendor filter that empties the result is NOT-FOUND, never an
	// empty success.
	_, err := testLookup().BySlug(testProducts(), "core-i5-12400f", []string{"Best Buy"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookup_ByOffer(t *testing.T) {
	result, err := testLookup().ByOffer(testProducts(), "core-i5-12400f", "micro-center")
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	if result.Kind != "single" {
		t.Errorf("Expected kind 'single', got %q", result.Kind)
	}
	if result.Vendor != "Micro Center" {
		t.Errorf("Expected vendor matched by slug, got %q", result.Vendor)
	}
	if result.Title != "Intel Core i5 Core i5-12400F — Micro Center" {
		t.Errorf("Unexpected title: %q", result.Title)
	}
}

func TestLookup_ByOfferUnknownVendor(t *testing.T) {
	_, err := testLookup().ByOffer(testProducts(), "core-i5-12400f", "bestbuy")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
