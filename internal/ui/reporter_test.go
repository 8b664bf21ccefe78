package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dusky-system/dusky-setup/internal/engine"
)

func TestReporterPlainEvents(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Event(engine.Event{Type: engine.EventRunStarted, Message: "running 3 steps"})
	r.Progress("packages", 1, 3)
	r.Event(engine.Event{Type: engine.EventStepStarted, Step: "packages", Message: "/opt/setup.d/packages"})
	r.Event(engine.Event{Type: engine.EventStepCompleted, Step: "packages", Message: "done in 1.2s"})
	r.Event(engine.Event{Type: engine.EventStepAlreadyDone, Step: "theming"})
	r.Event(engine.Event{Type: engine.EventStepFailed, Step: "fonts", ExitCode: 3})
	r.Event(engine.Event{Type: engine.EventStepSkipped, Step: "fonts", Message: "failed"})

	out := buf.String()
	assert.Contains(t, out, "dusky setup running 3 steps")
	assert.Contains(t, out, "(1/3) packages")
	assert.Contains(t, out, "[..] /opt/setup.d/packages")
	assert.Contains(t, out, "[OK] packages done in 1.2s")
	assert.Contains(t, out, "[OK] theming already done")
	assert.Contains(t, out, "[!!] fonts exited 3")
	assert.Contains(t, out, "[>>] fonts skipped (failed)")
}

func TestReporterSuppressesRenewals(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Event(engine.Event{Type: engine.EventPrivilegeRenewed})
	assert.Empty(t, buf.String())

	r.Event(engine.Event{Type: engine.EventPrivilegeRenewalFailed, Message: "sudo: a password is required"})
	assert.Contains(t, buf.String(), "privilege renewal failed")
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()
	sum := &engine.Summary{
		Total:       4,
		Completed:   2,
		AlreadyDone: 1,
		Skipped:     []engine.SkippedStep{{Name: "fonts", Reason: engine.SkipMissing}},
		Elapsed:     1234 * time.Millisecond,
	}

	out := renderSummary(sum, false)
	assert.Contains(t, out, "completed:    2")
	assert.Contains(t, out, "already done: 1")
	assert.Contains(t, out, "skipped:      1")
	assert.Contains(t, out, "fonts (missing)")
	assert.Contains(t, out, "1.2s")
	assert.Contains(t, out, "run again on the next invocation")
}

func TestRenderSummaryNoSkips(t *testing.T) {
	t.Parallel()
	sum := &engine.Summary{Total: 2, Completed: 2, Elapsed: time.Second}

	out := renderSummary(sum, false)
	assert.Contains(t, out, "skipped:      0")
	assert.NotContains(t, out, "next invocation")
}
