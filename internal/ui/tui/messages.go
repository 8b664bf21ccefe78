// Package tui provides a Bubble Tea dashboard that watches setup progress
// live. It reads the completion log and script directories on a ticker and
// never writes anything, so it is safe to run next to an active setup.
package tui

// StatusMsg carries a fresh snapshot of the sequence.
type StatusMsg struct {
	Rows []StepRow
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }
