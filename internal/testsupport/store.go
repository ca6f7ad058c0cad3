package testsupport

import (
	"context"
	"testing"

	"datadeck/internal/config"
	"datadeck/internal/dataset"
	"datadeck/internal/records"
	"datadeck/internal/value"
)

// MustOpenStore opens a records.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(cfg)
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedRecord appends a record with a map output built from alternating
// key/value string pairs.
func SeedRecord(t testing.TB, store *records.Store, agentType string, kv ...string) {
	t.Helper()

	entries := make([]value.Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, value.Field(kv[i], value.String(kv[i+1])))
	}
	rec := dataset.Record{AgentType: agentType, Output: value.Map(entries...)}
	if _, err := store.Append(context.Background(), rec, ""); err != nil {
		t.Fatalf("store.Append: %v", err)
	}
}
