package handlers

import (
	"context"
	"fmt"

	"github.com/dusky-system/dusky-setup/internal/state"
)

// removeState deletes the completion log - can be replaced in tests.
var removeState = state.Remove

// Reset handles the --reset command.
//
// It deletes the completion log so the next run starts from the first
// step. The single-instance lock is taken first so progress cannot be
// cleared underneath an active run. Resetting when no progress exists
// succeeds quietly.
func Reset(_ context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	handle, err := acquireLock(defaultLockPath())
	if err != nil {
		return err
	}
	defer handle.Release()

	if err := removeState(cfg.StateFile); err != nil {
		return fmt.Errorf("remove completion log: %w", err)
	}

	fmt.Printf("Recorded progress cleared (%s)\n", cfg.StateFile)
	return nil
}
