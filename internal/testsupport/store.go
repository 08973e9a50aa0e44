package testsupport

import (
	"context"
	"strings"
	"testing"

	"brunnhilde/internal/records"
)

// MustOpenStore opens an in-memory records.Store and registers cleanup.
func MustOpenStore(t testing.TB) *records.Store {
	t.Helper()

	store, err := records.OpenMemory()
	if err != nil {
		t.Fatalf("records.OpenMemory: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustLoad opens an in-memory store and loads the given records through the
// scanner CSV path.
func MustLoad(t testing.TB, recs ...records.Record) *records.Store {
	t.Helper()

	store := MustOpenStore(t)
	if _, err := store.Load(context.Background(), strings.NewReader(ScanCSV(recs...))); err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	return store
}
