package backup

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"cripes/internal/constants"
	"cripes/internal/storage"
)

func setupStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "cripes.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestExportAbsentKeysAreNull(t *testing.T) {
	store := setupStore(t)

	data, err := Export(store)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	for _, key := range constants.CollectionKeys {
		raw, ok := doc[key]
		if !ok {
			t.Errorf("export is missing key %q", key)
			continue
		}
		if string(raw) != "null" {
			t.Errorf("expected null for absent key %q, got %s", key, raw)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := setupStore(t)

	habits := []byte(`[{"id":"a","name":"Run"}]`)
	settings := []byte(`{"displayName":"Casey"}`)
	if err := store.SetRaw(constants.KeyHabits, habits); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if err := store.SetRaw(constants.KeySettings, settings); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	data, err := Export(store)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dest := setupStore(t)
	if err := Import(dest, data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	raw, ok, err := dest.GetRaw(constants.KeyHabits)
	if err != nil || !ok {
		t.Fatalf("GetRaw after import: ok=%v err=%v", ok, err)
	}
	if string(raw) != string(habits) {
		t.Errorf("habits did not round-trip: got %s", raw)
	}

	// Null keys must not be written on import.
	if _, ok, _ := dest.GetRaw(constants.KeyRewards); ok {
		t.Error("null collection was written during import")
	}
}

func TestImportMalformedAbortsWithoutWrites(t *testing.T) {
	store := setupStore(t)
	original := []byte(`[{"id":"a","name":"Run"}]`)
	if err := store.SetRaw(constants.KeyHabits, original); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	if err := Import(store, []byte(`{"habits": [truncated`)); err == nil {
		t.Fatal("expected error for malformed backup")
	}

	raw, ok, err := store.GetRaw(constants.KeyHabits)
	if err != nil || !ok {
		t.Fatalf("GetRaw failed: ok=%v err=%v", ok, err)
	}
	if string(raw) != string(original) {
		t.Errorf("malformed import mutated storage: got %s", raw)
	}
}

func TestImportPartialDocument(t *testing.T) {
	store := setupStore(t)
	if err := store.SetRaw(constants.KeySettings, []byte(`{"displayName":"Keep"}`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	// A document carrying only habits leaves other collections alone.
	partial := []byte(`{"habits":[{"id":"b","name":"Read"}]}`)
	if err := Import(store, partial); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	raw, ok, _ := store.GetRaw(constants.KeySettings)
	if !ok || string(raw) != `{"displayName":"Keep"}` {
		t.Errorf("partial import touched an absent collection: got %s", raw)
	}

	raw, ok, _ = store.GetRaw(constants.KeyHabits)
	if !ok || string(raw) != `[{"id":"b","name":"Read"}]` {
		t.Errorf("partial import did not write habits: got %s", raw)
	}
}

func TestImportIgnoresUnknownKeys(t *testing.T) {
	store := setupStore(t)

	doc := []byte(`{"mystery":[1,2,3],"habits":[]}`)
	if err := Import(store, doc); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if _, ok, _ := store.GetRaw("mystery"); ok {
		t.Error("unknown key was written to storage")
	}
}
