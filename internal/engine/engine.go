package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/dusky-system/dusky-setup/internal/config"
)

// ErrAborted reports that the user quit the run before the end of the
// sequence. Completions recorded before the quit stay recorded.
var ErrAborted = errors.New("run aborted")

// Run drives the sequence through the per-step state machine and returns
// the session summary. The summary is valid even when an error is
// returned; it covers the steps handled up to that point.
func Run(ctx *Context) (*Summary, error) {
	steps := ctx.Config.Steps
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", config.ErrInvalid)
	}

	start := time.Now()
	sum := &Summary{Total: len(steps)}
	defer func() { sum.Elapsed = time.Since(start) }()

	ctx.Observer.Event(Event{
		Type:    EventRunStarted,
		Message: fmt.Sprintf("running %d steps", len(steps)),
	})

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return sum, fmt.Errorf("run canceled: %w", err)
		}
		ctx.Observer.Progress(step.Name, i+1, len(steps))

		path, skipped, err := resolveStep(ctx, step, sum)
		if err != nil {
			return sum, err
		}
		if skipped {
			continue
		}

		if ctx.Log.IsCompleted(step.Name) {
			ctx.Observer.Event(Event{Type: EventStepAlreadyDone, Step: step.Name})
			sum.AlreadyDone++
			continue
		}

		if ctx.Options.Confirm {
			decision, err := ctx.Prompter.Confirm(ctx, step, ctx.Scripts.Describe(path))
			if err != nil {
				return sum, promptErr(step, err)
			}
			switch decision {
			case DecisionSkip:
				recordSkip(ctx, sum, step, SkipDeclined)
				continue
			case DecisionQuit:
				return sum, abortErr(ctx, step)
			}
		}

		if err := executeStep(ctx, step, path, sum); err != nil {
			return sum, err
		}
	}

	ctx.Observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("finished in %v", time.Since(start).Round(time.Millisecond)),
	})
	return sum, nil
}

// resolveStep loops between resolution and the missing-script prompt until
// the step resolves, is skipped, or the run aborts.
func resolveStep(ctx *Context, step config.Step, sum *Summary) (path string, skipped bool, err error) {
	for {
		path, ok := ctx.Scripts.Resolve(step.Name)
		if ok {
			return path, false, nil
		}

		ctx.Observer.Event(Event{Type: EventStepMissing, Step: step.Name, Message: "script not found"})
		decision, err := ctx.Prompter.Missing(ctx, step)
		if err != nil {
			return "", false, promptErr(step, err)
		}
		switch decision {
		case DecisionRetry:
			// Resolve again; the script may exist now.
		case DecisionSkip:
			recordSkip(ctx, sum, step, SkipMissing)
			return "", true, nil
		case DecisionQuit:
			return "", false, abortErr(ctx, step)
		default:
			return "", false, fmt.Errorf("unexpected decision %q at missing prompt", decision)
		}
	}
}

// executeStep spawns the step's child process and loops through the
// failure prompt until it exits zero, is skipped, or the run aborts.
// A retry re-invokes the identical path and argument list.
func executeStep(ctx *Context, step config.Step, path string, sum *Summary) error {
	args := SplitArgs(step.Args)

	for {
		ctx.Observer.Event(Event{Type: EventStepStarted, Step: step.Name, Message: path})
		stepStart := time.Now()

		code, runErr := ctx.Runner.Run(ctx, path, args, step.Elevated())
		if runErr == nil && code == 0 {
			if err := ctx.Log.MarkCompleted(step.Name); err != nil {
				return err
			}
			sum.Completed++
			ctx.Observer.Event(Event{
				Type:    EventStepCompleted,
				Step:    step.Name,
				Message: fmt.Sprintf("done in %v", time.Since(stepStart).Round(time.Millisecond)),
			})
			return pause(ctx)
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %q canceled: %w", step.Name, err)
		}

		failure := Event{Type: EventStepFailed, Step: step.Name, ExitCode: code}
		if runErr != nil {
			failure.Message = runErr.Error()
		}
		ctx.Observer.Event(failure)

		decision, err := ctx.Prompter.Failed(ctx, step, code)
		if err != nil {
			return promptErr(step, err)
		}
		switch decision {
		case DecisionRetry:
			// Loop re-invokes the same name and argument string.
		case DecisionSkip:
			recordSkip(ctx, sum, step, SkipFailed)
			return nil
		case DecisionQuit:
			return abortErr(ctx, step)
		default:
			return fmt.Errorf("unexpected decision %q at failure prompt", decision)
		}
	}
}

func pause(ctx *Context) error {
	if ctx.Options.Pause <= 0 {
		return nil
	}
	select {
	case <-time.After(ctx.Options.Pause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func recordSkip(ctx *Context, sum *Summary, step config.Step, reason SkipReason) {
	sum.Skipped = append(sum.Skipped, SkippedStep{Name: step.Name, Reason: reason})
	ctx.Observer.Event(Event{Type: EventStepSkipped, Step: step.Name, Message: string(reason)})
}

func abortErr(ctx *Context, step config.Step) error {
	ctx.Observer.Event(Event{Type: EventRunAborted, Step: step.Name})
	return fmt.Errorf("aborted at step %q: %w", step.Name, ErrAborted)
}

func promptErr(step config.Step, err error) error {
	return fmt.Errorf("prompt for step %q: %w", step.Name, err)
}
