package catalog

import (
	"encoding/json"
	"testing"
)

func rawRecord(t *testing.T, src string) RawRecord {
	t.Helper()
	var rec RawRecord
	if err := json.Unmarshal([]byte(src), &rec); err != nil {
		t.Fatalf("Failed to unmarshal record: %v", err)
	}
	return rec
}

func TestNormalizer_ValidRecord(t *testing.T) {
	normalizer := NewNormalizer()

	rec := rawRecord(t, `{
		"name": "Core i5-12400F",
		"link": "http://x",
		"price": "129.99",
		"vendor": "Newegg",
		"standard_name": "Core i5-12400F",
		"brand": "Intel",
		"generation": "12th Gen",
		"series": "Core i5"
	}`)

	offer, ok := normalizer.normalizeRecord(rec)
	if !ok {
		t.Fatal("Expected record to normalize")
	}

	if offer.ID != "core-i5-12400f-newegg" {
		t.Errorf("Expected ID 'core-i5-12400f-newegg', got %q", offer.ID)
	}
	if offer.Price != 129.99 {
		t.Errorf("Expected price 129.99, got %v", offer.Price)
	}
	if offer.Model != "Core i5-12400F" {
		t.Errorf("Expected model 'Core i5-12400F', got %q", offer.Model)
	}
	if offer.Brand != BrandIntel {
		t.Errorf("Expected brand Intel, got %q", offer.Brand)
	}
}

func TestNormalizer_RejectsInvalidRecords(t *testing.T) {
	normalizer := NewNormalizer()

	cases := []struct {
		name string
		src  string
	}{
		{"missing price", `{"name": "A", "link": "http://x", "vendor": "V"}`},
		{"zero price", `{"name": "A", "link": "http://x", "price": 0, "vendor": "V"}`},
		{"negative price", `{"name": "A", "link": "http://x", "price": -10, "vendor": "V"}`},
		{"negative fractional price", `{"name": "A", "link": "http://x", "price": -129.99, "vendor": "V"}`},
		{"non-numeric price", `{"name": "A", "link": "http://x", "price": "call us", "vendor": "V"}`},
		{"missing link", `{"name": "A", "price": 100, "vendor": "V"}`},
		{"empty link", `{"name": "A", "link": "", "price": 100, "vendor": "V"}`},
	}

	for _, tc := range cases {
		if _, ok := normalizer.normalizeRecord(rawRecord(t, tc.src)); ok {
			t.Errorf("Expected record with %s to be rejected", tc.name)
		}
	}
}

func TestNormalizer_RunDropsSilently(t *testing.T) {
	normalizer := NewNormalizer()

	records := []RawRecord{
		rawRecord(t, `{"name": "A", "link": "http://a", "price": 100, "vendor": "V1"}`),
		rawRecord(t, `{"name": "B", "link": "", "price": 100, "vendor": "V1"}`),
		rawRecord(t, `{"name": "C", "link": "http://c", "price": "n/a", "vendor": "V2"}`),
	}

	offers, dropped := normalizer.Run(records)
	if len(offers) != 1 {
		t.Errorf("Expected 1 offer, got %d", len(offers))
	}
	if dropped != 2 {
		t.Errorf("Expected 2 dropped records, got %d", dropped)
	}
}

func TestNormalizer_StandardNameFallback(t *testing.T) {
	normalizer := NewNormalizer()

	rec := rawRecord(t, `{"name": "Ryzen 5 5600X Box", "link": "http://x", "price": 150, "vendor": "Amazon"}`)

	offer, ok := normalizer.normalizeRecord(rec)
	if !ok {
		t.Fatal("Expected record to normalize")
	}
	if offer.Model != "Ryzen 5 5600X Box" {
		t.Errorf("Expected fallback to raw name, got %q", offer.Model)
	}
	if offer.ID != "ryzen-5-5600x-box-amazon" {
		t.Errorf("Unexpected ID: %q", offer.ID)
	}
}

func TestNormalizer_SpecCoercion(t *testing.T) {
	normalizer := NewNormalizer()

	rec := rawRecord(t, `{
		"name": "A", "link": "http://x", "price": "$ 1,299.00", "vendor": "V",
		"cores": "6 cores", "threads": 12, "base_clock_ghz": "3.5 GHz"
	}`)

	offer, ok := normalizer.normalizeRecord(rec)
	if !ok {
		t.Fatal("Expected record to normalize")
	}
	if offer.Price != 1299.00 {
		t.Errorf("Expected price 1299.00, got %v", offer.Price)
	}
	if offer.Specs.Cores == nil || *offer.Specs.Cores != 6 {
		t.Errorf("Expected 6 cores, got %v", offer.Specs.Cores)
	}
	if offer.Specs.Threads == nil || *offer.Specs.Threads != 12 {
		t.Errorf("Expected 12 threads, got %v", offer.Specs.Threads)
	}
	if offer.Specs.BaseClockGHz == nil || *offer.Specs.BaseClockGHz != 3.5 {
		t.Errorf("Expected base clock 3.5, got %v", offer.Specs.BaseClockGHz)
	}
	// Absent spec stays unset, never zero
	if offer.Specs.TDPWatt != nil {
		t.Errorf("Expected TDP to be unset, got %v", *offer.Specs.TDPWatt)
	}
}

func TestFlexValue_Float(t *testing.T) {
	cases := []struct {
		json string
		want float64
		ok   bool
	}{
		{`129.99`, 129.99, true},
		{`"129.99"`, 129.99, true},
		{`"$1,299"`, 1299, true},
		{`"3.5 GHz"`, 3.5, true},
		// Genuine numbers pass through as-is: the sign survives and
		// scientific notation is not mangled by the textual stripping
		// rule.
		{`-10`, -10, true},
		{`1.5e2`, 150, true},
		{`0`, 0, true},
		// Textual stripping drops the sign, like every other non-digit.
		{`"-10"`, 10, true},
		{`"no number"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
	}

	for _, tc := range cases {
		var v FlexValue
		if err := json.Unmarshal([]byte(tc.json), &v); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.json, err)
		}
		got, ok := v.Float()
		if ok != tc.ok || got != tc.want {
			t.Errorf("Float(%s) = (%v, %v), want (%v, %v)", tc.json, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseBrand_Fallback(t *testing.T) {
	cases := []struct {
		in   string
		want Brand
	}{
		{"Intel", BrandIntel},
		{"AMD", BrandAMD},
		{"amd", BrandAMD},
		{" AMD ", BrandAMD},
		{"", BrandIntel},
		{"Qualcomm", BrandIntel},
	}

	for _, tc := range cases {
		if got := ParseBrand(tc.in); got != tc.want {
			t.Errorf("ParseBrand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Core i5-12400F", "core-i5-12400f"},
		{"Micro Center", "micro-center"},
		{"  AMD Ryzen 7  ", "amd-ryzen-7"},
		{"--weird__input--", "weird-input"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
