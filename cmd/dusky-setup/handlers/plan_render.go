package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors matching internal/ui/styles.go palette.
var (
	planColorGreen  = lipgloss.Color("#22c55e")
	planColorYellow = lipgloss.Color("#eab308")
	planColorDim    = lipgloss.Color("#6b7280")
	planColorWhite  = lipgloss.Color("#f9fafb")
)

var (
	planTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(planColorWhite)

	planDoneStyle = lipgloss.NewStyle().
			Foreground(planColorGreen)

	planWarnStyle = lipgloss.NewStyle().
			Foreground(planColorYellow)

	planDimStyle = lipgloss.NewStyle().
			Foreground(planColorDim)
)

// renderPlan produces the human-readable dry-run listing. With styled
// off it prints plain text for pipes and logs.
func renderPlan(configPath string, rows []planRow, styled bool) string {
	style := func(s lipgloss.Style) func(string) string {
		if !styled {
			return func(str string) string { return str }
		}
		return func(str string) string { return s.Render(str) }
	}

	var b strings.Builder

	title := fmt.Sprintf("  dusky setup plan: %s", configPath)
	b.WriteString(style(planTitleStyle)(title))
	b.WriteString("\n")
	b.WriteString(style(planDimStyle)("  " + strings.Repeat("═", len(title)-2)))
	b.WriteString("\n\n")

	var done, pending, missing int
	for _, row := range rows {
		var icon string
		var sfn func(string) string
		switch row.Status {
		case statusDone:
			icon, sfn = "[OK]", style(planDoneStyle)
			done++
		case statusMissing:
			icon, sfn = "[??]", style(planWarnStyle)
			missing++
		default:
			icon, sfn = "[  ]", style(planDimStyle)
			pending++
		}

		tier := ""
		if row.Tier == "elevated" {
			tier = " (elevated)"
		}

		fmt.Fprintf(&b, "    %s %-20s %s%s\n", sfn(icon), row.Name, sfn(row.Status), style(planDimStyle)(tier))
		if row.Description != "" && row.Status != statusDone {
			fmt.Fprintf(&b, "         %s\n", style(planDimStyle)(row.Description))
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("  %d done, %d pending, %d missing", done, pending, missing)
	b.WriteString(style(planDimStyle)(summary))
	b.WriteString("\n")

	return b.String()
}
