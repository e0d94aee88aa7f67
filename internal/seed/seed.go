// Package seed writes the built-in default catalog on first startup so the
// selection dropdowns are never empty. Runs are idempotent: existing data
// is never touched.
package seed

import (
	"encoding/json"
	"fmt"

	"github.com/takumikoubou/mitsumori/internal/catalog"
	"github.com/takumikoubou/mitsumori/internal/kvstore"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(kv kvstore.Store) (Stats, error) {
	stats := Stats{}

	if err := ensureCatalog(kv, &stats); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func ensureCatalog(kv kvstore.Store, stats *Stats) error {
	_, exists, err := kv.Get(catalog.StorageKey)
	if err != nil {
		return fmt.Errorf("check catalog existence: %w", err)
	}
	if exists {
		return nil
	}

	raw, err := json.Marshal(catalog.DefaultItems())
	if err != nil {
		return fmt.Errorf("encode default catalog: %w", err)
	}
	if err := kv.Put(catalog.StorageKey, raw); err != nil {
		return fmt.Errorf("insert default catalog: %w", err)
	}
	stats.Inserts++
	return nil
}
