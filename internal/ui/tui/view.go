package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dusky-system/dusky-setup/internal/config"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderSteps(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render("dusky setup"))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("%s Error: %v", crossMark, m.Err))
	case allDone(m.Rows):
		status += readyStyle.Render("Complete")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") +
			warningStyle.Render(fmt.Sprintf("%d/%d done", doneCount(m.Rows), len(m.Rows)))
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n", bar, int(progress*100))
}

func renderSteps(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")

	activeIdx := nextPending(m.Rows)
	for i, row := range m.Rows {
		icon, style := rowIcon(row, i == activeIdx, m.SpinnerFrame)

		tier := ""
		if row.Tier == config.TierElevated {
			tier = dimStyle.Render("elevated")
		}
		note := ""
		if row.Missing {
			note = warningStyle.Render(" script not found")
		}

		fmt.Fprintf(b, "    %s %-20s %s%s\n", style(icon), style(row.Name), tier, note)
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	parts := []string{
		fmt.Sprintf("watching: %s", m.StatePath),
		fmt.Sprintf("elapsed: %s", elapsed),
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

// Helper functions

// rowIcon picks the checklist icon for a step row. The active row is the
// first unfinished one; it is presumed to be the step running right now.
func rowIcon(row StepRow, active bool, frame int) (string, styleFunc) {
	switch {
	case row.Done:
		return checkMark, sf(readyStyle)
	case row.Missing:
		return warnMark, sf(warningStyle)
	case active:
		return currentSpinner(frame), sf(activeStyle)
	default:
		return pending, sf(dimStyle)
	}
}

// nextPending returns the index of the first row that is neither done nor
// missing, or -1 when everything is settled.
func nextPending(rows []StepRow) int {
	for i, row := range rows {
		if !row.Done && !row.Missing {
			return i
		}
	}
	return -1
}

func doneCount(rows []StepRow) int {
	n := 0
	for _, row := range rows {
		if row.Done {
			n++
		}
	}
	return n
}

func allDone(rows []StepRow) bool {
	return len(rows) > 0 && doneCount(rows) == len(rows)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if len(m.Rows) == 0 {
		return 0
	}
	return float64(doneCount(m.Rows)) / float64(len(m.Rows))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
