package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoad_ValidDataset(t *testing.T) {
	path := writeFile(t, "processors.json", `[
		{"name": "Core i5-12400F", "link": "http://x", "price": "129.99", "vendor": "Newegg"},
		{"name": "Ryzen 5 5600X", "link": "http://y", "price": 159, "vendor": "Amazon"}
	]`)

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if snap.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", snap.Len())
	}
	if snap.Records[0].Vendor != "Newegg" {
		t.Errorf("Unexpected first record vendor: %q", snap.Records[0].Vendor)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt to be stamped")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"not": "an array"}`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for non-array dataset")
	}
}
