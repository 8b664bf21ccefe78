// Package engine drives the setup sequence through its per-step state
// machine.
//
// Each step moves through resolution, an optional confirmation, execution,
// and completion recording:
//
//	Pending -> Resolving -> Resolved | MissingPrompt
//	MissingPrompt -> Resolving (retry) | Skipped | Aborted
//	Resolved -> AlreadyDone (recorded complete; no prompt, no execution)
//	Resolved -> ConfirmPrompt (interactive mode) -> Executing | Skipped | Aborted
//	Resolved -> Executing (autonomous mode)
//	Executing -> Completed (exit 0) | FailurePrompt (nonzero exit)
//	FailurePrompt -> Executing (retry, unchanged) | Skipped | Aborted
//
// Steps run strictly one at a time on the calling goroutine. Recoverable
// faults (missing script, nonzero exit) always stop for a human decision;
// autonomous mode only bypasses the routine confirmation prompt. A quit
// aborts the run without retracting completions recorded earlier, and a
// skip records nothing, leaving the step eligible on the next run.
//
// Dependencies are carried in a Context value. The Runner, Prompter,
// Observer and CompletionLog seams keep the state machine testable without
// a terminal or real child processes.
package engine
