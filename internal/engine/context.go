package engine

import (
	"context"
	"time"

	"github.com/dusky-system/dusky-setup/internal/config"
)

// Decision is a human answer to a recovery or confirmation prompt.
type Decision int

const (
	// DecisionProceed executes the step (confirmation prompts only).
	DecisionProceed Decision = iota
	// DecisionRetry re-attempts resolution or execution unchanged.
	DecisionRetry
	// DecisionSkip moves past the step without recording completion.
	DecisionSkip
	// DecisionQuit aborts the whole run.
	DecisionQuit
)

// String returns the decision's display name.
func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionRetry:
		return "retry"
	case DecisionSkip:
		return "skip"
	case DecisionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Prompter collects the human decisions the state machine needs. Calls
// block until the user answers; the context cancels a pending prompt.
type Prompter interface {
	// Missing asks how to handle an unresolvable step: Retry, Skip or Quit.
	Missing(ctx context.Context, step config.Step) (Decision, error)

	// Confirm asks before executing a step in interactive-confirmation
	// mode: Proceed, Skip or Quit.
	Confirm(ctx context.Context, step config.Step, description string) (Decision, error)

	// Failed asks how to handle a nonzero exit: Retry, Skip or Quit.
	Failed(ctx context.Context, step config.Step, exitCode int) (Decision, error)
}

// PathResolver maps step names to script paths.
type PathResolver interface {
	Resolve(name string) (string, bool)
	Describe(path string) string
}

// CompletionLog is the engine's view of the persisted state.
type CompletionLog interface {
	IsCompleted(name string) bool
	MarkCompleted(name string) error
}

// Options tunes a single run.
type Options struct {
	// Confirm enables the per-step confirmation prompt (interactive mode).
	Confirm bool

	// Pause is the optional delay after each completed step.
	Pause time.Duration
}

// Context wraps the dependencies and options for a run. It is passed
// through the state machine instead of package-level run state.
type Context struct {
	context.Context
	Config   *config.Config
	Log      CompletionLog
	Scripts  PathResolver
	Runner   Runner
	Prompter Prompter
	Observer Observer
	Options  Options
}

// NewContext creates a run context with the default runner and observer.
// Callers override fields before Run as needed.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	log CompletionLog,
	scripts PathResolver,
	prompter Prompter,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Log:      log,
		Scripts:  scripts,
		Runner:   ExecRunner{},
		Prompter: prompter,
		Observer: NewConsoleObserver(),
		Options:  Options{Pause: cfg.PauseAfterStep},
	}
}

// SkipReason records why a step was skipped this session.
type SkipReason string

const (
	// SkipMissing means the script could not be resolved.
	SkipMissing SkipReason = "missing"
	// SkipFailed means the script kept exiting nonzero.
	SkipFailed SkipReason = "failed"
	// SkipDeclined means the user declined the confirmation prompt.
	SkipDeclined SkipReason = "declined"
)

// SkippedStep is a session-summary entry. Skips are never persisted; the
// step is eligible again on the next run.
type SkippedStep struct {
	Name   string
	Reason SkipReason
}

// Summary reports the outcome of a run. It lives in memory only.
type Summary struct {
	Total       int
	Completed   int // completed during this run
	AlreadyDone int
	Skipped     []SkippedStep
	Elapsed     time.Duration
}
