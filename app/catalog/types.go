package catalog

import (
	"encoding/json"
	"strings"
	"time"
)

// Brand is the enumerated CPU vendor brand. Records carrying anything
// other than "AMD" resolve to Intel (the dataset's dominant brand);
// see ParseBrand.
type Brand string

const (
	BrandIntel Brand = "Intel"
	BrandAMD   Brand = "AMD"
)

// ParseBrand maps a raw brand string onto the Brand enum. The fallback to
// Intel for unrecognized values is deliberate and matches the upstream
// dataset's conventions.
func ParseBrand(s string) Brand {
	if strings.EqualFold(strings.TrimSpace(s), string(BrandAMD)) {
		return BrandAMD
	}
	return BrandIntel
}

// FlexValue holds a JSON field that may arrive as a number, a numeric
// string with units or punctuation ("$129.99", "3.5 GHz"), or be absent.
// The number/string distinction is preserved: genuine numbers are used
// as-is, only strings go through the stripping rule in Float.
type FlexValue struct {
	raw   string
	num   float64
	isNum bool
	set   bool
}

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v.raw = str
		v.set = true
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v.num = num
		v.isNum = true
		v.set = true
		return nil
	}
	v.raw = string(data)
	v.set = true
	return nil
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.raw)
}

// IsSet reports whether the field was present in the source record.
func (v FlexValue) IsSet() bool {
	return v.set
}

// RawRecord is one untrusted vendor price record as it appears in the
// source dataset. No field is guaranteed well-typed; numeric fields may be
// strings with noise.
type RawRecord struct {
	Name         string    `json:"name"`
	Link         string    `json:"link"`
	Price        FlexValue `json:"price"`
	Vendor       string    `json:"vendor"`
	StandardName string    `json:"standard_name"`
	Brand        string    `json:"brand"`
	Generation   string    `json:"generation"`
	Series       string    `json:"series"`
	Cores        FlexValue `json:"cores"`
	Threads      FlexValue `json:"threads"`
	BaseClockGHz FlexValue `json:"base_clock_ghz"`
	TDPWatt      FlexValue `json:"tdp_watt"`
}

// Specs holds the optional per-offer spec fields. A nil pointer means the
// source record did not carry the field; zero is never substituted.
type Specs struct {
	Cores        *float64 `json:"cores,omitempty"`
	Threads      *float64 `json:"threads,omitempty"`
	BaseClockGHz *float64 `json:"baseClockGhz,omitempty"`
	TDPWatt      *float64 `json:"tdpWatt,omitempty"`
}

// Offer is one vendor's validated listing for one product. ID is
// slug(model)-slug(vendor).
type Offer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	Price      float64 `json:"price"`
	Vendor     string  `json:"vendor"`
	Model      string  `json:"standardName"`
	Brand      Brand   `json:"brand"`
	Generation string  `json:"generation"`
	Series     string  `json:"series"`
	Specs      Specs   `json:"specs"`
}

// ProductOffer is one vendor entry inside a grouped Product. InStock is
// derived (price finite and positive); the dataset carries no real stock
// signal.
type ProductOffer struct {
	Store    string    `json:"store"`
	Price    float64   `json:"price"`
	URL      string    `json:"url"`
	InStock  bool      `json:"inStock"`
	LastSeen time.Time `json:"lastSeen"`
}

// Product is the canonical grouping of all offers sharing a normalized
// model name. Display attributes come from the first offer seen in the
// group. BoostClockGHz is always nil: the source data has no boost clock
// field.
type Product struct {
	ID             string         `json:"id"`
	Brand          Brand          `json:"brand"`
	Model          string         `json:"model"`
	Generation     string         `json:"generation"`
	Series         string         `json:"series"`
	Cores          int            `json:"cores"`
	Threads        int            `json:"threads"`
	BaseClockGHz   *float64       `json:"baseClockGHz,omitempty"`
	BoostClockGHz  *float64       `json:"boostClockGHz,omitempty"`
	TDPWatt        *float64       `json:"tdpW,omitempty"`
	Offers         []ProductOffer `json:"offers"`
	BestPrice      float64        `json:"bestPrice"`
	GenerationRank int            `json:"generationRank"`
}

// FlattenedOffer joins a product's shared attributes with one specific
// offer's vendor, price and URL. It is the unit the filter/sort engine
// operates on: one row per (product, vendor) pair.
type FlattenedOffer struct {
	ID             string   `json:"id"`
	Brand          Brand    `json:"brand"`
	Model          string   `json:"model"`
	Generation     string   `json:"generation"`
	Series         string   `json:"series"`
	Cores          int      `json:"cores"`
	Threads        int      `json:"threads"`
	BaseClockGHz   *float64 `json:"baseClockGHz,omitempty"`
	TDPWatt        *float64 `json:"tdpW,omitempty"`
	Vendor         string   `json:"vendor"`
	Price          float64  `json:"price"`
	URL            string   `json:"url"`
	InStock        bool     `json:"inStock"`
	GenerationRank int      `json:"generationRank"`
}

// FilterState is a declarative filter configuration. Every field is
// optional: an empty set or nil bound imposes no constraint on that
// dimension.
type FilterState struct {
	Brands      []Brand
	Generations []string
	Series      []string
	Vendors     []string
	Cores       []int
	Threads     []int

	Search      string
	InStockOnly bool

	MinPrice        *float64
	MaxPrice        *float64
	MinBaseClockGHz *float64
	MaxBaseClockGHz *float64
	MinTDPWatt      *float64
	MaxTDPWatt      *float64
}
