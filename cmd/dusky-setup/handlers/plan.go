package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dusky-system/dusky-setup/internal/config"
	"github.com/dusky-system/dusky-setup/internal/resolve"
	"github.com/dusky-system/dusky-setup/internal/state"
)

// Step status values as shown in the plan.
const (
	statusDone    = "done"
	statusPending = "pending"
	statusMissing = "missing"
)

// readState reads the completion log without creating it - can be
// replaced in tests.
var readState = state.Read

// planRow is one sequence entry in the dry-run plan.
type planRow struct {
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Status      string `json:"status"`
	Path        string `json:"path,omitempty"`
	Description string `json:"description,omitempty"`
}

// Plan handles the --dry-run command.
//
// It reports each step as done, pending or missing without executing
// anything and without creating or modifying any file. The exit code is
// zero regardless of how many scripts are missing.
func Plan(_ context.Context, configPath string, jsonOut bool) error {
	cfg, path, err := loadConfigWithPath(configPath)
	if err != nil {
		return err
	}

	rows, err := planRows(cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		return printPlanJSON(path, rows)
	}

	fmt.Print(renderPlan(path, rows, isInteractive()))
	return nil
}

// planRows builds the plan by reading the completion log and resolving
// every step. Steps already recorded as done are reported as done even
// if their script has since disappeared; they would not run anyway.
func planRows(cfg *config.Config) ([]planRow, error) {
	done, err := readState(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("read completion log: %w", err)
	}

	scripts := resolve.Scripts{Dirs: cfg.ScriptDirs}
	rows := make([]planRow, 0, len(cfg.Steps))
	for _, step := range cfg.Steps {
		row := planRow{Name: step.Name, Tier: string(step.Tier)}

		path, found := scripts.Resolve(step.Name)
		if found {
			row.Path = path
			row.Description = scripts.Describe(path)
		}

		switch {
		case containsName(done, step.Name):
			row.Status = statusDone
		case !found:
			row.Status = statusMissing
		default:
			row.Status = statusPending
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func containsName(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// printPlanJSON writes the plan as indented JSON for tooling.
func printPlanJSON(configPath string, rows []planRow) error {
	out := struct {
		Config string    `json:"config"`
		Steps  []planRow `json:"steps"`
	}{Config: configPath, Steps: rows}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
