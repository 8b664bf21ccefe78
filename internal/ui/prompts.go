package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dusky-system/dusky-setup/internal/config"
	"github.com/dusky-system/dusky-setup/internal/engine"
)

// Prompter collects recovery and confirmation decisions with terminal
// forms. It implements engine.Prompter.
type Prompter struct{}

// Missing asks how to handle a step whose script could not be resolved.
func (Prompter) Missing(ctx context.Context, step config.Step) (engine.Decision, error) {
	decision := engine.DecisionRetry

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[engine.Decision]().
				Title(fmt.Sprintf("No script found for %q", step.Name)).
				Description("The step cannot run until a matching script exists in a script directory.").
				Options(
					huh.NewOption("Retry the lookup", engine.DecisionRetry),
					huh.NewOption("Skip this step", engine.DecisionSkip),
					huh.NewOption("Quit", engine.DecisionQuit),
				).
				Value(&decision),
		),
	).RunWithContext(ctx)
	if err != nil {
		return engine.DecisionQuit, err
	}
	return decision, nil
}

// Confirm asks before executing a step in interactive mode.
func (Prompter) Confirm(ctx context.Context, step config.Step, description string) (engine.Decision, error) {
	decision := engine.DecisionProceed

	title := fmt.Sprintf("Run %q?", step.Name)
	if step.Elevated() {
		title = fmt.Sprintf("Run %q with elevated privileges?", step.Name)
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[engine.Decision]().
				Title(title).
				Description(description).
				Options(
					huh.NewOption("Run it", engine.DecisionProceed),
					huh.NewOption("Skip this step", engine.DecisionSkip),
					huh.NewOption("Quit", engine.DecisionQuit),
				).
				Value(&decision),
		),
	).RunWithContext(ctx)
	if err != nil {
		return engine.DecisionQuit, err
	}
	return decision, nil
}

// Failed asks how to handle a step that exited nonzero.
func (Prompter) Failed(ctx context.Context, step config.Step, exitCode int) (engine.Decision, error) {
	decision := engine.DecisionRetry

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[engine.Decision]().
				Title(fmt.Sprintf("Step %q exited with code %d", step.Name, exitCode)).
				Description("Retry runs the same script with the same arguments.").
				Options(
					huh.NewOption("Retry", engine.DecisionRetry),
					huh.NewOption("Skip this step", engine.DecisionSkip),
					huh.NewOption("Quit", engine.DecisionQuit),
				).
				Value(&decision),
		),
	).RunWithContext(ctx)
	if err != nil {
		return engine.DecisionQuit, err
	}
	return decision, nil
}

// ResumeOrRestart asks whether to continue from recorded progress or
// start the sequence over.
func ResumeOrRestart(ctx context.Context, completed int) (bool, error) {
	resume := true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Previous progress found").
				Description(fmt.Sprintf("%d completed steps are on record and will be bypassed.", completed)).
				Affirmative("Resume").
				Negative("Start fresh").
				Value(&resume),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return resume, nil
}

// ChooseMode asks whether to confirm each step before it runs.
func ChooseMode(ctx context.Context) (bool, error) {
	confirm := false

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Confirm each step?").
				Description("Autonomous mode runs the whole sequence and only prompts on problems.").
				Affirmative("Confirm each step").
				Negative("Run autonomously").
				Value(&confirm),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return confirm, nil
}
