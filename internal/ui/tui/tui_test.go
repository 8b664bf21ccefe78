package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dusky-system/dusky-setup/internal/config"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCalculateProgress_Empty(t *testing.T) {
	p := calculateProgress(Model{})
	if p != 0 {
		t.Errorf("expected 0, got %v", p)
	}
}

func TestCalculateProgress_Partial(t *testing.T) {
	m := Model{Rows: []StepRow{{Done: true}, {Done: true}, {}, {}}}
	p := calculateProgress(m)
	if p != 0.5 {
		t.Errorf("expected 0.5, got %v", p)
	}
}

func TestModelUpdateStatus(t *testing.T) {
	cfg := &config.Config{Steps: []config.Step{{Name: "analyzer"}, {Name: "packages"}}}
	m := NewWatchModel(cfg)

	if doneCount(m.Rows) != 0 {
		t.Errorf("expected no rows done initially, got %d", doneCount(m.Rows))
	}

	updated, _ := m.Update(StatusMsg{Rows: []StepRow{
		{Name: "analyzer", Done: true},
		{Name: "packages"},
	}})
	m = updated.(Model)

	if doneCount(m.Rows) != 1 {
		t.Errorf("expected 1 row done after update, got %d", doneCount(m.Rows))
	}
}

func TestModelTickAdvancesSpinner(t *testing.T) {
	m := Model{}
	updated, cmd := m.Update(TickMsg{})
	m = updated.(Model)

	if m.SpinnerFrame != 1 {
		t.Errorf("expected spinner frame 1, got %d", m.SpinnerFrame)
	}
	if cmd == nil {
		t.Error("expected tick to schedule the next tick")
	}
}

func TestRenderView_Header(t *testing.T) {
	cfg := &config.Config{Steps: []config.Step{{Name: "analyzer"}}}
	m := NewWatchModel(cfg)

	output := renderView(m)

	if !strings.Contains(output, "dusky setup") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "0/1 done") {
		t.Error("expected progress counter in output")
	}
}

func TestRenderView_Checklist(t *testing.T) {
	m := Model{
		Rows: []StepRow{
			{Name: "analyzer", Done: true},
			{Name: "packages", Tier: config.TierElevated},
			{Name: "fonts", Missing: true},
		},
		StatePath: "/tmp/setup.log",
	}

	output := renderView(m)

	if !strings.Contains(output, "analyzer") {
		t.Error("expected analyzer in output")
	}
	if !strings.Contains(output, checkMark) {
		t.Error("expected a done icon in output")
	}
	if !strings.Contains(output, "elevated") {
		t.Error("expected elevated tier tag in output")
	}
	if !strings.Contains(output, "script not found") {
		t.Error("expected missing note in output")
	}
	if !strings.Contains(output, "/tmp/setup.log") {
		t.Error("expected state path in footer")
	}
}

func TestRenderView_Complete(t *testing.T) {
	m := Model{Rows: []StepRow{{Name: "analyzer", Done: true}}}

	output := renderView(m)

	if !strings.Contains(output, "Complete") {
		t.Error("expected Complete status in output")
	}
}

func TestRowIcon(t *testing.T) {
	icon, _ := rowIcon(StepRow{Done: true}, false, 0)
	if icon != checkMark {
		t.Errorf("expected checkMark, got %q", icon)
	}
	icon, _ = rowIcon(StepRow{Missing: true}, false, 0)
	if icon != warnMark {
		t.Errorf("expected warnMark, got %q", icon)
	}
	icon, _ = rowIcon(StepRow{}, false, 0)
	if icon != pending {
		t.Errorf("expected pending, got %q", icon)
	}
	icon, _ = rowIcon(StepRow{}, true, 0)
	if icon != spinnerFrames[0] {
		t.Errorf("expected spinner frame, got %q", icon)
	}
}

func TestNextPending(t *testing.T) {
	rows := []StepRow{
		{Name: "a", Done: true},
		{Name: "b", Missing: true},
		{Name: "c"},
	}
	if got := nextPending(rows); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
	if got := nextPending([]StepRow{{Done: true}}); got != -1 {
		t.Errorf("expected -1 when settled, got %d", got)
	}
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "analyzer"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	statePath := filepath.Join(dir, "setup.log")
	if err := os.WriteFile(statePath, []byte("analyzer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		ScriptDirs: []string{dir},
		StateFile:  statePath,
		Steps: []config.Step{
			{Name: "analyzer", Tier: config.TierUser},
			{Name: "packages", Tier: config.TierElevated},
		},
	}

	msg, err := snapshot(cfg)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if len(msg.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(msg.Rows))
	}
	if !msg.Rows[0].Done || msg.Rows[0].Missing {
		t.Errorf("expected analyzer done and found, got %+v", msg.Rows[0])
	}
	if msg.Rows[1].Done || !msg.Rows[1].Missing {
		t.Errorf("expected packages pending and missing, got %+v", msg.Rows[1])
	}
}
