package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dusky-system/dusky-setup/internal/engine"
)

// timeRound keeps summary durations readable.
const timeRound = 100 * time.Millisecond

// Reporter renders engine events as console lines. It implements
// engine.Observer. With styling off, the same lines print unstyled.
type Reporter struct {
	out    io.Writer
	styled bool
}

// NewReporter returns a Reporter writing to out.
func NewReporter(out io.Writer, styled bool) *Reporter {
	return &Reporter{out: out, styled: styled}
}

// Printf writes a plain formatted line.
func (r *Reporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Progress announces the step about to be handled.
func (r *Reporter) Progress(step string, current, total int) {
	fmt.Fprintf(r.out, "\n%s %s\n",
		r.style(dimStyle)(fmt.Sprintf("(%d/%d)", current, total)),
		r.style(stepStyle)(step))
}

// Event renders a single engine event.
func (r *Reporter) Event(e engine.Event) {
	switch e.Type {
	case engine.EventRunStarted:
		fmt.Fprintf(r.out, "%s %s\n", r.style(titleStyle)("dusky setup"), r.style(dimStyle)(e.Message))
	case engine.EventRunCompleted:
		fmt.Fprintf(r.out, "\n%s %s\n", r.style(doneStyle)(checkMark), e.Message)
	case engine.EventRunAborted:
		fmt.Fprintf(r.out, "\n%s aborted at %s\n", r.style(failedStyle)(crossMark), e.Step)
	case engine.EventStepStarted:
		fmt.Fprintf(r.out, "%s %s\n", r.style(activeStyle)(runMark), e.Message)
	case engine.EventStepCompleted:
		fmt.Fprintf(r.out, "%s %s %s\n", r.style(doneStyle)(checkMark), e.Step, r.style(dimStyle)(e.Message))
	case engine.EventStepAlreadyDone:
		fmt.Fprintf(r.out, "%s\n", r.style(dimStyle)(fmt.Sprintf("%s %s already done", checkMark, e.Step)))
	case engine.EventStepSkipped:
		fmt.Fprintf(r.out, "%s %s skipped (%s)\n", r.style(warningStyle)(skipMark), e.Step, e.Message)
	case engine.EventStepMissing:
		fmt.Fprintf(r.out, "%s %s: %s\n", r.style(warningStyle)(warnMark), e.Step, e.Message)
	case engine.EventStepFailed:
		if e.Message != "" {
			fmt.Fprintf(r.out, "%s %s: %s\n", r.style(failedStyle)(crossMark), e.Step, e.Message)
			return
		}
		fmt.Fprintf(r.out, "%s %s exited %d\n", r.style(failedStyle)(crossMark), e.Step, e.ExitCode)
	case engine.EventPrivilegeAcquired:
		fmt.Fprintf(r.out, "%s\n", r.style(dimStyle)("elevated privileges cached"))
	case engine.EventPrivilegeRenewed:
		// Background renewals are routine; printing them is noise.
	case engine.EventPrivilegeRenewalFailed:
		fmt.Fprintf(r.out, "%s privilege renewal failed: %s\n", r.style(warningStyle)(warnMark), e.Message)
	case engine.EventStateReset:
		fmt.Fprintf(r.out, "%s\n", r.style(dimStyle)("completion log cleared"))
	}
}

// PrintSummary renders the session summary after a run.
func (r *Reporter) PrintSummary(sum *engine.Summary) {
	fmt.Fprint(r.out, renderSummary(sum, r.styled))
}

func (r *Reporter) style(s lipgloss.Style) styleFunc {
	if !r.styled {
		return plain
	}
	return sf(s)
}

// renderSummary builds the summary block. Split out so it can be
// asserted on as a string.
func renderSummary(sum *engine.Summary, styled bool) string {
	style := func(s lipgloss.Style) styleFunc {
		if !styled {
			return plain
		}
		return sf(s)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(style(titleStyle)("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  completed:    %d\n", sum.Completed)
	fmt.Fprintf(&b, "  already done: %d\n", sum.AlreadyDone)
	fmt.Fprintf(&b, "  skipped:      %d\n", len(sum.Skipped))
	for _, s := range sum.Skipped {
		fmt.Fprintf(&b, "    %s %s\n", style(warningStyle)(skipMark), style(dimStyle)(fmt.Sprintf("%s (%s)", s.Name, s.Reason)))
	}
	fmt.Fprintf(&b, "  elapsed:      %s\n", sum.Elapsed.Round(timeRound))
	if len(sum.Skipped) > 0 {
		b.WriteString(style(dimStyle)("Skipped steps run again on the next invocation.") + "\n")
	}
	return b.String()
}
