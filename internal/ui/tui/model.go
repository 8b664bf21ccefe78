package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dusky-system/dusky-setup/internal/config"
)

// StepRow is one sequence entry as shown in the checklist.
type StepRow struct {
	Name    string
	Tier    config.Tier
	Done    bool
	Missing bool
}

// Model is the Bubble Tea model for the watch dashboard.
type Model struct {
	// Sequence state
	Rows      []StepRow
	StatePath string

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width  int
	Height int
	Err    error
}

// NewWatchModel creates the dashboard model with every step pending until
// the first snapshot arrives.
func NewWatchModel(cfg *config.Config) Model {
	rows := make([]StepRow, 0, len(cfg.Steps))
	for _, step := range cfg.Steps {
		rows = append(rows, StepRow{Name: step.Name, Tier: step.Tier})
	}
	return Model{
		Rows:      rows,
		StatePath: cfg.StateFile,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StatusMsg:
		m.Rows = msg.Rows

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
