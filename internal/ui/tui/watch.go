package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dusky-system/dusky-setup/internal/config"
	"github.com/dusky-system/dusky-setup/internal/resolve"
	"github.com/dusky-system/dusky-setup/internal/state"
)

// RunWatch renders the live dashboard until the user quits. Snapshots are
// read on a ticker in a background goroutine and sent into the program.
func RunWatch(ctx context.Context, cfg *config.Config) error {
	m := NewWatchModel(cfg)

	p := tea.NewProgram(m, tea.WithAltScreen())

	go pollStatus(ctx, p, cfg)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// pollStatus re-reads the completion log and script directories every tick
// and pushes the snapshot to the TUI.
func pollStatus(ctx context.Context, p *tea.Program, cfg *config.Config) {
	send := func() bool {
		msg, err := snapshot(cfg)
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return false
		}
		p.Send(msg)
		return true
	}

	if !send() {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}

// snapshot builds the current checklist without touching anything on disk.
func snapshot(cfg *config.Config) (StatusMsg, error) {
	done, err := state.Read(cfg.StateFile)
	if err != nil {
		return StatusMsg{}, fmt.Errorf("read completion log: %w", err)
	}

	scripts := resolve.Scripts{Dirs: cfg.ScriptDirs}
	rows := make([]StepRow, 0, len(cfg.Steps))
	for _, step := range cfg.Steps {
		_, found := scripts.Resolve(step.Name)
		_, completed := done[step.Name]
		rows = append(rows, StepRow{
			Name:    step.Name,
			Tier:    step.Tier,
			Done:    completed,
			Missing: !found,
		})
	}
	return StatusMsg{Rows: rows}, nil
}
