package engine

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured events as the engine drives the sequence.
// Implementations render or log; they never influence control flow.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports the engine's position in the sequence.
	Progress(step string, current, total int)
}

// Event is one structured engine event.
type Event struct {
	Type      EventType
	Step      string // step name, if the event concerns one
	Message   string // human-readable detail
	ExitCode  int    // child exit code for step.failed
	Timestamp time.Time
}

// EventType classifies engine events.
type EventType string

const (
	// EventRunStarted opens a run.
	EventRunStarted EventType = "run.started"
	// EventRunCompleted closes a run that reached the end of the sequence.
	EventRunCompleted EventType = "run.completed"
	// EventRunAborted closes a run the user quit out of.
	EventRunAborted EventType = "run.aborted"

	// EventStepStarted indicates a step's child process is being spawned.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step exited zero and was recorded.
	EventStepCompleted EventType = "step.completed"
	// EventStepAlreadyDone indicates a step was bypassed as recorded complete.
	EventStepAlreadyDone EventType = "step.already_done"
	// EventStepSkipped indicates the user skipped a step; nothing is recorded.
	EventStepSkipped EventType = "step.skipped"
	// EventStepMissing indicates the step's script could not be resolved.
	EventStepMissing EventType = "step.missing"
	// EventStepFailed indicates the child exited nonzero.
	EventStepFailed EventType = "step.failed"

	// EventPrivilegeAcquired indicates the elevated credential was cached.
	EventPrivilegeAcquired EventType = "privilege.acquired"
	// EventPrivilegeRenewed indicates a background credential refresh.
	EventPrivilegeRenewed EventType = "privilege.renewed"
	// EventPrivilegeRenewalFailed indicates a refresh attempt failed.
	EventPrivilegeRenewalFailed EventType = "privilege.renewal_failed"

	// EventStateReset indicates the completion log was cleared.
	EventStateReset EventType = "state.reset"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a plain console observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(step string, current, total int) {
	log.Printf("[%s] step %d/%d", step, current, total)
}

// formatEvent renders an event for console output.
func formatEvent(event Event) string {
	parts := []string{string(event.Type)}

	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Type == EventStepFailed {
		parts = append(parts, fmt.Sprintf("exit=%d", event.ExitCode))
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}

	return strings.Join(parts, " ")
}
