package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cripes/internal/constants"
)

// SnapshotInfo contains information about a snapshot file
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes timestamped snapshot files next to the store and keeps
// only the most recent few.
type Manager struct {
	snapshotDir string
}

// NewManager creates a manager rooted next to the given storage path.
func NewManager(storePath string) *Manager {
	configDir := filepath.Dir(storePath)
	return &Manager{
		snapshotDir: filepath.Join(configDir, constants.SnapshotDirName),
	}
}

// GetSnapshotDir returns the snapshot directory path
func (m *Manager) GetSnapshotDir() string {
	return m.snapshotDir
}

func (m *Manager) ensureSnapshotDir() error {
	return os.MkdirAll(m.snapshotDir, 0700)
}

// WriteSnapshot stores an export document under a timestamped filename
// and rotates old snapshots.
func (m *Manager) WriteSnapshot(data []byte) (string, error) {
	if err := m.ensureSnapshotDir(); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	// Minute precision first; fall back to seconds, then a counter, when
	// a file with the same name already exists.
	timestamp := time.Now().Format("20060102-1504")
	path := m.snapshotPath(timestamp)

	if _, err := os.Stat(path); err == nil {
		timestamp = time.Now().Format("20060102-150405")
		path = m.snapshotPath(timestamp)

		counter := 1
		for {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				break
			}
			path = m.snapshotPath(fmt.Sprintf("%s-%d", timestamp, counter))
			counter++
			if counter > 100 {
				return "", fmt.Errorf("failed to generate unique snapshot filename")
			}
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not fail the snapshot operation.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old snapshots: %v\n", err)
	}

	return path, nil
}

// ReadSnapshot loads a snapshot by path or bare filename within the
// snapshot directory.
func (m *Manager) ReadSnapshot(nameOrPath string) ([]byte, error) {
	path := nameOrPath
	if !filepath.IsAbs(path) {
		candidate := filepath.Join(m.snapshotDir, nameOrPath)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", nameOrPath, err)
	}
	return data, nil
}

func (m *Manager) snapshotPath(timestamp string) string {
	name := fmt.Sprintf("%s%s%s", constants.SnapshotFilePrefix, timestamp, constants.SnapshotFileSuffix)
	return filepath.Join(m.snapshotDir, name)
}

// ListSnapshots returns all available snapshots, newest first.
func (m *Manager) ListSnapshots() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.snapshotDir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.SnapshotFilePrefix) || !strings.HasSuffix(name, constants.SnapshotFileSuffix) {
			continue
		}

		timestampStr := strings.TrimPrefix(name, constants.SnapshotFilePrefix)
		timestampStr = strings.TrimSuffix(timestampStr, constants.SnapshotFileSuffix)

		// Strip a trailing counter (all digits, not a 4- or 6-char time part)
		parts := strings.Split(timestampStr, "-")
		if len(parts) > 2 {
			lastPart := parts[len(parts)-1]
			if len(lastPart) != 4 && len(lastPart) != 6 && isDigits(lastPart) {
				timestampStr = strings.Join(parts[:len(parts)-1], "-")
			}
		}

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.snapshotDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})

	return snapshots, nil
}

func (m *Manager) rotate() error {
	snapshots, err := m.ListSnapshots()
	if err != nil {
		return err
	}

	if len(snapshots) <= constants.MaxSnapshots {
		return nil
	}

	for i := constants.MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
