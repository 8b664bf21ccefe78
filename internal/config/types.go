package config

import "time"

// Tier is the privilege level a step runs with.
type Tier string

const (
	// TierUser runs the step as the invoking user.
	TierUser Tier = "user"
	// TierElevated runs the step through sudo.
	TierElevated Tier = "elevated"
)

// Step is one unit of work in the sequence. The name doubles as the
// completion-tracking key, so it should be unique within the sequence.
type Step struct {
	// Name is the logical script name, resolved against script_dirs.
	// A name containing a path separator is treated as a direct path.
	Name string `mapstructure:"name" yaml:"name"`

	// Tier selects the privilege level.
	// Default: "user"
	Tier Tier `mapstructure:"tier" yaml:"tier"`

	// Args is forwarded to the script verbatim and split on whitespace.
	// Arguments containing whitespace cannot be quoted through this field;
	// that is the forwarding contract, not an oversight.
	Args string `mapstructure:"args" yaml:"args"`
}

// Elevated reports whether the step needs the elevated credential.
func (s Step) Elevated() bool {
	return s.Tier == TierElevated
}

// PrivilegeConfig controls the elevated credential session.
type PrivilegeConfig struct {
	// RefreshInterval is the cadence of the background credential renewal.
	// Default: 50s
	RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
}

// Config holds the orchestrator configuration.
type Config struct {
	// ScriptDirs is the ordered search list for step scripts. Relative
	// entries resolve against the directory of the configuration file.
	// Default: ["setup.d"]
	ScriptDirs []string `mapstructure:"script_dirs" yaml:"script_dirs"`

	// StateFile is the completion log location.
	// Default: $XDG_STATE_HOME/dusky/setup.log
	StateFile string `mapstructure:"state_file" yaml:"state_file"`

	// PauseAfterStep is an optional delay after each completed step, giving
	// the user a moment to read the step's output.
	// Default: 0s
	PauseAfterStep time.Duration `mapstructure:"pause_after_step" yaml:"pause_after_step"`

	Privilege PrivilegeConfig `mapstructure:"privilege" yaml:"privilege"`

	// Steps is the sequence definition. Read-only for the lifetime of a run.
	Steps []Step `mapstructure:"steps" yaml:"steps"`
}

// NeedsElevation reports whether any step in the sequence is elevated.
func (c *Config) NeedsElevation() bool {
	for _, s := range c.Steps {
		if s.Elevated() {
			return true
		}
	}
	return false
}
