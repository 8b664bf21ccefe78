package handlers

import (
	"context"

	"github.com/dusky-system/dusky-setup/internal/ui/tui"
)

// runWatch starts the TUI dashboard - can be replaced in tests.
var runWatch = tui.RunWatch

// Watch handles the watch command.
//
// With a terminal it renders the live dashboard; otherwise it falls back
// to printing the plan once, which is all a pipe can use.
func Watch(ctx context.Context, configPath string) error {
	if !isInteractive() {
		return Plan(ctx, configPath, false)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	return runWatch(ctx, cfg)
}
