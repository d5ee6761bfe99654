package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cripes/internal/constants"
)

func TestWriteAndReadSnapshot(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cripes.json")
	mgr := NewManager(storePath)

	content := []byte(`{"habits":null}`)
	path, err := mgr.WriteSnapshot(content)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	// Read by absolute path and by bare filename.
	data, err := mgr.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot by path failed: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("snapshot content mismatch: %s", data)
	}

	data, err = mgr.ReadSnapshot(filepath.Base(path))
	if err != nil {
		t.Fatalf("ReadSnapshot by name failed: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("snapshot content mismatch by name: %s", data)
	}
}

func TestWriteSnapshotCollisionFallback(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cripes.json")
	mgr := NewManager(storePath)

	first, err := mgr.WriteSnapshot([]byte("one"))
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	second, err := mgr.WriteSnapshot([]byte("two"))
	if err != nil {
		t.Fatalf("second WriteSnapshot failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct snapshot filenames, got %s twice", first)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cripes.json")
	mgr := NewManager(storePath)

	// Fabricate snapshots with known timestamps.
	if err := os.MkdirAll(mgr.GetSnapshotDir(), 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	names := []string{
		constants.SnapshotFilePrefix + "20260830-0900" + constants.SnapshotFileSuffix,
		constants.SnapshotFilePrefix + "20260901-0900" + constants.SnapshotFileSuffix,
		constants.SnapshotFilePrefix + "20260831-0900" + constants.SnapshotFileSuffix,
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(mgr.GetSnapshotDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}
	if filepath.Base(snapshots[0].Path) != names[1] {
		t.Errorf("expected newest snapshot first, got %s", snapshots[0].Path)
	}
}

func TestListSnapshotsIgnoresForeignFiles(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cripes.json")
	mgr := NewManager(storePath)

	if err := os.MkdirAll(mgr.GetSnapshotDir(), 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	foreign := []string{"notes.txt", "other-20260901-0900.json", constants.SnapshotFilePrefix + "garbage" + constants.SnapshotFileSuffix}
	for _, name := range foreign {
		if err := os.WriteFile(filepath.Join(mgr.GetSnapshotDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("expected foreign files to be ignored, got %d entries", len(snapshots))
	}
}

func TestSnapshotRotation(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "cripes.json")
	mgr := NewManager(storePath)

	if err := os.MkdirAll(mgr.GetSnapshotDir(), 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	// Seed more than the retention cap with fabricated timestamps, then
	// trigger rotation with one real write.
	for day := 1; day <= constants.MaxSnapshots+5; day++ {
		name := constants.SnapshotFilePrefix + formatDay(day) + constants.SnapshotFileSuffix
		if err := os.WriteFile(filepath.Join(mgr.GetSnapshotDir(), name), []byte("{}"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	if _, err := mgr.WriteSnapshot([]byte("{}")); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) > constants.MaxSnapshots {
		t.Errorf("expected at most %d snapshots after rotation, got %d", constants.MaxSnapshots, len(snapshots))
	}
}

func formatDay(day int) string {
	return fmt.Sprintf("202608%02d-0900", day)
}
