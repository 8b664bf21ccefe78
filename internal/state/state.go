// Package state persists step completion across runs.
//
// The completion log is a newline-delimited plain text file of completed
// step names, append-only, flushed after every write. Membership is exact
// full-line match, so a name is never mistaken for a prefix of another
// entry. The log is only ever rewritten by Reset, which truncates it.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Log is the open completion log of a running orchestrator.
type Log struct {
	path string
	f    *os.File
	done map[string]struct{}
}

// Open creates the log file and its parent directory if absent, loads the
// recorded completions, and keeps the file open for appending.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	done, err := Read(path)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Log{path: path, f: f, done: done}, nil
}

// Read loads the completed names from path without creating or modifying
// the file. A missing file reads as an empty set.
func Read(path string) (map[string]struct{}, error) {
	done := make(map[string]struct{})

	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, fs.ErrNotExist) {
		return done, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			done[line] = struct{}{}
		}
	}
	return done, nil
}

// IsCompleted reports whether name has been recorded as completed.
func (l *Log) IsCompleted(name string) bool {
	_, ok := l.done[name]
	return ok
}

// MarkCompleted appends name to the log and flushes before returning, so a
// completion survives any later crash. Marking a recorded name again is a
// no-op.
func (l *Log) MarkCompleted(name string) error {
	if l.IsCompleted(name) {
		return nil
	}
	if _, err := l.f.WriteString(name + "\n"); err != nil {
		return fmt.Errorf("failed to record completion of %q: %w", name, err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to flush state file: %w", err)
	}
	l.done[name] = struct{}{}
	return nil
}

// Reset truncates the log, forgetting all completions.
func (l *Log) Reset() error {
	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("failed to reset state file: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to flush state file: %w", err)
	}
	l.done = make(map[string]struct{})
	return nil
}

// Count returns the number of recorded completions.
func (l *Log) Count() int {
	return len(l.done)
}

// Path returns the log's file location.
func (l *Log) Path() string {
	return l.path
}

// Close releases the log file handle.
func (l *Log) Close() error {
	return l.f.Close()
}

// Remove deletes the log file. A missing file is not an error.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
