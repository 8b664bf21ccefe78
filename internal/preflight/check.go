// Package preflight checks for the host tools a run depends on before
// any step executes, so a missing binary surfaces up front instead of
// halfway through the sequence.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is a host binary a run may depend on.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallHint is the command that installs the tool.
	InstallHint string
}

// ElevationTools returns the tools needed when the sequence contains
// elevated steps.
func ElevationTools() []Tool {
	return []Tool{
		{
			Name:        "sudo",
			Required:    true,
			Description: "Runs elevated steps and keeps the credential cache warm",
			InstallHint: "pacman -S sudo",
		},
	}
}

// OptionalTools returns tools setup scripts commonly rely on. Their
// absence is reported but never blocks a run.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "git",
			Required:    false,
			Description: "Used by steps that clone or update repositories",
			InstallHint: "pacman -S git",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (install with: %s)", tool.Name, tool.InstallHint))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckElevation checks the tools needed for elevated steps.
func CheckElevation() *CheckResults {
	return Check(ElevationTools())
}
