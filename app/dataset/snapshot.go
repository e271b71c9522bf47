// Package dataset loads the raw vendor price records into an immutable
// in-memory snapshot. The snapshot is built once at startup and injected
// into the read API; there is no incremental update path.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cpuscout/app/catalog"
)

type Snapshot struct {
	Records  []catalog.RawRecord
	Path     string
	LoadedAt time.Time
}

// Load reads and decodes the record file. Decode failures are fatal here:
// per-record noise is the normalizer's concern, a file that is not a JSON
// array is an operator error.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var records []catalog.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	return &Snapshot{
		Records:  records,
		Path:     path,
		LoadedAt: time.Now(),
	}, nil
}

func (s *Snapshot) Len() int {
	return len(s.Records)
}
