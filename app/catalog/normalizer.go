package catalog

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Normalizer converts loosely-typed RawRecords into validated Offers.
// Upstream data is assumed noisy: malformed records are dropped, never
// reported as errors.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run normalizes a batch of records, silently skipping every record that
// fails validation. It also returns how many records were dropped.
func (n *Normalizer) Run(records []RawRecord) ([]Offer, int) {
	offers := make([]Offer, 0, len(records))
	dropped := 0
	for _, rec := range records {
		offer, ok := n.normalizeRecord(rec)
		if !ok {
			dropped++
			continue
		}
		offers = append(offers, offer)
	}
	return offers, dropped
}

// normalizeRecord coerces one record into an Offer. A record is rejected
// when its price is missing, non-finite or non-positive, or when it has no
// URL.
func (n *Normalizer) normalizeRecord(rec RawRecord) (Offer, bool) {
	price, ok := rec.Price.Float()
	if !ok || price <= 0 {
		return Offer{}, false
	}
	if rec.Link == "" {
		return Offer{}, false
	}

	model := cmp.Or(rec.StandardName, rec.Name)
	id := Slugify(model) + "-" + Slugify(rec.Vendor)

	return Offer{
		ID:         id,
		Name:       rec.Name,
		URL:        rec.Link,
		Price:      price,
		Vendor:     rec.Vendor,
		Model:      model,
		Brand:      ParseBrand(rec.Brand),
		Generation: rec.Generation,
		Series:     rec.Series,
		Specs: Specs{
			Cores:        optionalFloat(rec.Cores),
			Threads:      optionalFloat(rec.Threads),
			BaseClockGHz: optionalFloat(rec.BaseClockGHz),
			TDPWatt:      optionalFloat(rec.TDPWatt),
		},
	}, true
}

// Float coerces the value to a float64. Numeric values are used as-is;
// textual values keep digits and decimal points only, everything else is
// stripped before parsing. The second return is false when the field is
// absent or does not yield a finite number.
func (v FlexValue) Float() (float64, bool) {
	if !v.set {
		return 0, false
	}
	if v.isNum {
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return 0, false
		}
		return v.num, true
	}
	var b strings.Builder
	for _, r := range v.raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func optionalFloat(v FlexValue) *float64 {
	if f, ok := v.Float(); ok {
		return &f
	}
	return nil
}

// Slugify lower-cases s, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
