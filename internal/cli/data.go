package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cripes/internal/backup"
)

type ExportCmd struct {
	Output string `help:"Write to a file instead of a timestamped snapshot." short:"o" default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	data, err := backup.Export(ctx.DB.Provider())
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Exported to: %s\n", c.Output)
		return nil
	}

	mgr := backup.NewManager(ctx.DB.Provider().GetConfigPath())
	path, err := mgr.WriteSnapshot(data)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Snapshot created: %s\n", filepath.Base(path))
	return nil
}

type ImportCmd struct {
	File  string `arg:"" help:"Path or snapshot filename to import."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.DB.Provider().GetConfigPath())
	data, err := mgr.ReadSnapshot(c.File)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Println("⚠️  WARNING: This will overwrite collections present in the backup file.")
		fmt.Println("A snapshot of your current data will be created before importing.")
		ok, err := Confirm(fmt.Sprintf("Import from %s?", filepath.Base(c.File)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticSnapshot()

	if err := backup.Import(ctx.DB.Provider(), data); err != nil {
		return err
	}

	fmt.Println("✓ Data imported successfully!")
	return nil
}

type SnapshotsCmd struct{}

func (c *SnapshotsCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.DB.Provider().GetConfigPath())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		fmt.Printf("Snapshots are stored in: %s\n", mgr.GetSnapshotDir())
		return nil
	}

	fmt.Printf("Available snapshots (%d total):\n\n", len(snapshots))
	for _, s := range snapshots {
		sizeKB := float64(s.Size) / 1024.0
		timestamp := s.Timestamp.Format("2006-01-02 15:04")
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(s.Path), sizeKB)
	}
	fmt.Printf("\nSnapshot directory: %s\n", mgr.GetSnapshotDir())
	return nil
}

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Println("⚠️  WARNING: This will erase ALL stored data.")
		fmt.Println("A snapshot of your current data will be created first.")
		ok, err := Confirm("Really erase everything?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticSnapshot()

	if err := ctx.DB.ClearAll(); err != nil {
		return err
	}

	fmt.Println("✓ All data erased.")
	return nil
}
