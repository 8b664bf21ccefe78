// Package config defines the setup configuration structure and loading.
//
// A configuration file carries two things: orchestrator settings (script
// search directories, state file location, privilege refresh cadence) and
// the step sequence itself, an ordered list of named scripts with their
// privilege tier and argument string. The file is discovered as
// dusky-setup.yaml in the working directory, then as setup.yaml under the
// XDG config directory, unless an explicit path is given.
package config
