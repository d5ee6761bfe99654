package cli

import (
	"fmt"

	"cripes/internal/backup"
	"cripes/internal/keyring"
	"cripes/internal/validation"
)

type DoctorCmd struct{}

// Run performs health checks on storage, snapshots, and stored data.
func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running health checks...")
	fmt.Println()

	fmt.Printf("Storage path: %s\n", ctx.DB.Provider().GetConfigPath())

	mgr := backup.NewManager(ctx.DB.Provider().GetConfigPath())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		fmt.Printf("✗ Snapshots:  unreadable (%v)\n", err)
	} else {
		fmt.Printf("✓ Snapshots:  %d available\n", len(snapshots))
	}

	if keyring.IsAvailable() {
		fmt.Println("✓ Keyring:    available")
	} else {
		fmt.Println("✗ Keyring:    unavailable (AI features need the CRIPES_API_KEY env var)")
	}

	habits := ctx.DB.Habits()
	fmt.Printf("✓ Habits:     %d (%d active)\n", len(habits), len(ctx.DB.ActiveHabits()))
	fmt.Printf("✓ Entries:    %d journal entries, %d completions\n", len(ctx.DB.Entries()), len(ctx.DB.Completions()))

	v := validation.New()
	conflicts := 0
	for _, result := range []validation.Result{
		v.ValidateHabits(habits, ctx.DB.Categories()),
		v.ValidateCompletions(ctx.DB.Completions(), habits),
		v.ValidateTemplates(ctx.DB.Templates()),
	} {
		conflicts += len(result.Conflicts)
		if result.HasConflicts() {
			fmt.Println()
			fmt.Print(result.FormatReport())
		}
	}

	fmt.Println()
	if conflicts == 0 {
		fmt.Println("All checks passed.")
	} else {
		fmt.Printf("%d conflicts found.\n", conflicts)
	}
	return nil
}
