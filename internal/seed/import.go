// Package seed merges a JSON export into the realtime store, for seeding and
// migration tooling.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"quickbite/internal/realtime"
)

// roots are the store roots the importer recognises, in import order.
var roots = []string{"active_orders", "delivery_boys", "drivers", "route_cache", "users"}

// Report summarises one import run.
type Report struct {
	// Merged maps each recognised root to the number of records patched.
	Merged map[string]int
	// Skipped lists unrecognised top-level keys, which are ignored.
	Skipped []string
}

// Import reads a JSON document whose top-level keys are store roots and
// patches each recognised root. Records are merged per child key, never
// replacing the root wholesale, so an import never erases records it does
// not mention.
func Import(ctx context.Context, store realtime.Store, r io.Reader) (*Report, error) {
	if store == nil || !store.Ready() {
		return nil, realtime.ErrUnavailable
	}

	// Top-level values of unrecognised keys may be any shape, so decode
	// lazily and only parse the roots we act on.
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding import document: %w", err)
	}

	report := &Report{Merged: make(map[string]int)}
	for _, root := range roots {
		raw, ok := doc[root]
		if !ok {
			continue
		}
		var records map[string]any
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", root, err)
		}
		if len(records) == 0 {
			report.Merged[root] = 0
			continue
		}
		if err := store.Patch(ctx, root, records); err != nil {
			return nil, fmt.Errorf("patching %s: %w", root, err)
		}
		report.Merged[root] = len(records)
	}

	for key := range doc {
		if !recognized(key) {
			report.Skipped = append(report.Skipped, key)
		}
	}
	sort.Strings(report.Skipped)
	return report, nil
}

func recognized(key string) bool {
	for _, root := range roots {
		if key == root {
			return true
		}
	}
	return false
}
