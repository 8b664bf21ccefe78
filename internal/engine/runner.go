package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner spawns a step's child process and reports its exit code. A nonzero
// code is not an error: the state machine turns it into a recovery prompt.
// An error means the child could not run at all.
type Runner interface {
	Run(ctx context.Context, path string, args []string, elevated bool) (int, error)
}

// ExecRunner runs step scripts via os/exec with inherited standard streams,
// so the step's own output and prompts reach the user directly.
type ExecRunner struct{}

// Run executes the script, through sudo for elevated steps.
func (ExecRunner) Run(ctx context.Context, path string, args []string, elevated bool) (int, error) {
	argv := commandLine(path, args, elevated)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) // #nosec G204
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to run %q: %w", path, err)
	}
	return 0, nil
}

// commandLine builds the argv for a step, prefixing sudo for elevated ones.
func commandLine(path string, args []string, elevated bool) []string {
	argv := make([]string, 0, len(args)+2)
	if elevated {
		argv = append(argv, "sudo")
	}
	argv = append(argv, path)
	return append(argv, args...)
}

// SplitArgs splits a step's raw argument string on whitespace. This is the
// documented forwarding contract: there is no quoting, so an argument
// containing whitespace cannot be passed through as one word.
func SplitArgs(raw string) []string {
	return strings.Fields(raw)
}
