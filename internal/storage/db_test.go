package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cripes/internal/constants"
	"cripes/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "cripes.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return NewDB(store)
}

func testHabit(id, name string) models.Habit {
	return models.Habit{
		ID:        id,
		Name:      name,
		Category:  "Physical",
		Frequency: models.FrequencyRule{Type: models.FrequencyDaily},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestSaveHabitPreservesPosition(t *testing.T) {
	db := setupTestDB(t)

	for _, h := range []models.Habit{testHabit("a", "First"), testHabit("b", "Second"), testHabit("c", "Third")} {
		if err := db.SaveHabit(h); err != nil {
			t.Fatalf("SaveHabit failed: %v", err)
		}
	}

	// Update the middle habit; it must stay in the middle.
	updated := testHabit("b", "Second (renamed)")
	if err := db.SaveHabit(updated); err != nil {
		t.Fatalf("SaveHabit update failed: %v", err)
	}

	habits := db.Habits()
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
	if habits[1].ID != "b" || habits[1].Name != "Second (renamed)" {
		t.Errorf("expected updated habit at position 1, got %q at position 1", habits[1].Name)
	}
	if habits[0].ID != "a" || habits[2].ID != "c" {
		t.Errorf("neighbor order changed: got %s, %s", habits[0].ID, habits[2].ID)
	}
}

func TestDeleteHabitUnknownIDIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	if err := db.SaveHabit(testHabit("a", "Only")); err != nil {
		t.Fatalf("SaveHabit failed: %v", err)
	}
	if err := db.DeleteHabit("missing"); err != nil {
		t.Fatalf("DeleteHabit of unknown id should not error: %v", err)
	}
	if len(db.Habits()) != 1 {
		t.Errorf("expected habit to survive unrelated delete")
	}
}

func TestDefaultsNotPersisted(t *testing.T) {
	db := setupTestDB(t)

	settings := db.Settings()
	if settings.DisplayName != constants.DefaultDisplayName {
		t.Errorf("expected default display name, got %q", settings.DisplayName)
	}
	if got := db.Categories(); len(got) != 6 {
		t.Errorf("expected 6 default categories, got %d", len(got))
	}
	if got := db.Templates(); len(got) != 2 {
		t.Errorf("expected 2 default templates, got %d", len(got))
	}

	// Reading a default must not write it to storage.
	for _, key := range []string{constants.KeySettings, constants.KeyCategories, constants.KeyTemplates} {
		if _, ok, _ := db.Provider().GetRaw(key); ok {
			t.Errorf("reading defaults persisted collection %q", key)
		}
	}
}

func TestCorruptCollectionFallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Provider().SetRaw(constants.KeySettings, []byte("{not json")); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	settings := db.Settings()
	if settings.DisplayName != constants.DefaultDisplayName {
		t.Errorf("corrupt settings should fall back to defaults, got %q", settings.DisplayName)
	}

	if err := db.Provider().SetRaw(constants.KeyHabits, []byte(`"wrong shape"`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if got := db.Habits(); got != nil {
		t.Errorf("corrupt habits should read as empty, got %d", len(got))
	}
}

func TestTypeMismatchCollectionFallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)

	// Valid JSON, wrong element type. Unmarshal fails midway, so the
	// partially filled slice must not leak out.
	if err := db.Provider().SetRaw(constants.KeyHabits, []byte(`[{"id":"a","name":"Ok"},{"id":123}]`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if got := db.Habits(); got != nil {
		t.Errorf("type-mismatched habits should read as empty, got %d", len(got))
	}

	if err := db.Provider().SetRaw(constants.KeyCompletions, []byte(`[{"id":"c1","habitId":7}]`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if got := db.Completions(); got != nil {
		t.Errorf("type-mismatched completions should read as empty, got %d", len(got))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	settings := db.Settings()
	settings.DisplayName = "Casey"
	settings.RemindersEnabled = false
	if err := db.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got := db.Settings()
	if got.DisplayName != "Casey" || got.RemindersEnabled {
		t.Errorf("settings did not round-trip: %+v", got)
	}
}

func TestCompletionsAddAndRemove(t *testing.T) {
	db := setupTestDB(t)

	completion := models.Completion{
		ID:        "c1",
		HabitID:   "h1",
		LocalDate: "2026-09-01",
		Kind:      models.CompletionPrimary,
		CreatedAt: time.Now(),
	}
	if err := db.AddCompletion(completion); err != nil {
		t.Fatalf("AddCompletion failed: %v", err)
	}

	// Removal matches on (habit, date), not on kind.
	if err := db.RemoveCompletion("h1", "2026-09-01"); err != nil {
		t.Fatalf("RemoveCompletion failed: %v", err)
	}
	if got := db.Completions(); len(got) != 0 {
		t.Errorf("expected empty completions, got %d", len(got))
	}
}

func TestDeleteCompletionByID(t *testing.T) {
	db := setupTestDB(t)

	for _, c := range []models.Completion{
		{ID: "c1", HabitID: "h1", LocalDate: "2026-08-30", Kind: models.CompletionPrimary},
		{ID: "c2", HabitID: "h1", LocalDate: "2026-08-31", Kind: models.CompletionBackup},
		{ID: "c3", HabitID: "h2", LocalDate: "2026-08-31", Kind: models.CompletionPrimary},
	} {
		if err := db.AddCompletion(c); err != nil {
			t.Fatalf("AddCompletion failed: %v", err)
		}
	}

	if err := db.DeleteCompletionByID("c2"); err != nil {
		t.Fatalf("DeleteCompletionByID failed: %v", err)
	}

	completions := db.Completions()
	if len(completions) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(completions))
	}
	for _, c := range completions {
		if c.ID == "c2" {
			t.Error("deleted completion still present")
		}
	}

	// Unknown id is a no-op, not an error.
	if err := db.DeleteCompletionByID("missing"); err != nil {
		t.Fatalf("DeleteCompletionByID of unknown id should not error: %v", err)
	}
	if got := db.Completions(); len(got) != 2 {
		t.Errorf("unrelated delete changed the collection: %d", len(got))
	}
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cripes.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	db := NewDB(store)
	if err := db.SaveHabit(testHabit("a", "Persist me")); err != nil {
		t.Fatalf("SaveHabit failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	db2 := NewDB(reopened)
	habits := db2.Habits()
	if len(habits) != 1 || habits[0].Name != "Persist me" {
		t.Errorf("habit did not survive reopen: %+v", habits)
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading uninitialized storage")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cripes.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	if err := store.SetRaw(constants.KeyCategories, []byte(`["One","Two"]`)); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	// Upsert must replace, not duplicate.
	if err := store.SetRaw(constants.KeyCategories, []byte(`["Three"]`)); err != nil {
		t.Fatalf("SetRaw upsert failed: %v", err)
	}

	raw, ok, err := store.GetRaw(constants.KeyCategories)
	if err != nil {
		t.Fatalf("GetRaw failed: %v", err)
	}
	if !ok || string(raw) != `["Three"]` {
		t.Errorf("expected upserted value, got %q (present=%v)", raw, ok)
	}

	if _, ok, _ := store.GetRaw("nonexistent"); ok {
		t.Error("expected absent key to report not present")
	}
}

func TestClearAll(t *testing.T) {
	db := setupTestDB(t)

	if err := db.SaveHabit(testHabit("a", "Gone soon")); err != nil {
		t.Fatalf("SaveHabit failed: %v", err)
	}
	if err := db.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if got := db.Habits(); len(got) != 0 {
		t.Errorf("expected no habits after ClearAll, got %d", len(got))
	}
	// Defaults come back after a wipe.
	if got := db.Categories(); len(got) != 6 {
		t.Errorf("expected default categories after ClearAll, got %d", len(got))
	}
}

func TestJSONStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cripes.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}
