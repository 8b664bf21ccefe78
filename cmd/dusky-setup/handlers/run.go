// Package handlers implements the CLI operations behind the cobra
// commands: running the sequence, the dry-run plan, resetting recorded
// progress, and the watch dashboard.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dusky-system/dusky-setup/internal/config"
	"github.com/dusky-system/dusky-setup/internal/engine"
	"github.com/dusky-system/dusky-setup/internal/lock"
	"github.com/dusky-system/dusky-setup/internal/preflight"
	"github.com/dusky-system/dusky-setup/internal/privilege"
	"github.com/dusky-system/dusky-setup/internal/resolve"
	"github.com/dusky-system/dusky-setup/internal/state"
	"github.com/dusky-system/dusky-setup/internal/ui"
)

// privilegeSession is the handler's view of a privilege session.
type privilegeSession interface {
	Teardown()
}

// Factory function variables - can be replaced in tests.
var (
	// findConfigFile locates the default configuration file.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads and validates a configuration file.
	loadConfigFile = config.LoadFile

	// checkElevation verifies the host tools elevated steps need.
	checkElevation = preflight.CheckElevation

	// acquireLock takes the single-instance lock.
	acquireLock = lock.Acquire

	// defaultLockPath is where the single-instance lock lives.
	defaultLockPath = lock.DefaultPath

	// openState opens the completion log for the run.
	openState = state.Open

	// startPrivilege opens the sudo session for elevated steps.
	startPrivilege = func(ctx context.Context, interval time.Duration, obs engine.Observer) (privilegeSession, error) {
		return privilege.Start(ctx, interval, obs)
	}

	// runEngine drives the sequence.
	runEngine = engine.Run

	// isInteractive reports whether stdout is a terminal.
	isInteractive = ui.IsInteractiveTTY

	// promptResume asks whether to resume recorded progress.
	promptResume = ui.ResumeOrRestart

	// promptMode asks whether to confirm each step.
	promptMode = ui.ChooseMode
)

// Run handles the default command: execute the setup sequence.
//
// It takes the single-instance lock, opens the completion log, offers to
// resume or restart when prior progress exists, opens a privilege session
// when the sequence contains elevated steps, and hands the sequence to
// the engine. Skipped steps are reported in the summary and stay
// eligible for the next invocation.
func Run(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.NeedsElevation() {
		if err := checkElevation().Error(); err != nil {
			return err
		}
	}

	handle, err := acquireLock(defaultLockPath())
	if err != nil {
		return err
	}
	defer handle.Release()

	log, err := openState(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("open completion log: %w", err)
	}
	defer log.Close()

	interactive := isInteractive()
	reporter := ui.NewReporter(os.Stdout, interactive)

	if log.Count() > 0 && interactive {
		resume, err := promptResume(ctx, log.Count())
		if err != nil {
			return err
		}
		if !resume {
			if err := log.Reset(); err != nil {
				return fmt.Errorf("reset completion log: %w", err)
			}
			reporter.Event(engine.Event{Type: engine.EventStateReset})
		}
	}

	confirm := false
	if interactive {
		confirm, err = promptMode(ctx)
		if err != nil {
			return err
		}
	}

	if cfg.NeedsElevation() {
		session, err := startPrivilege(ctx, cfg.Privilege.RefreshInterval, reporter)
		if err != nil {
			return err
		}
		defer session.Teardown()
	}

	ectx := engine.NewContext(ctx, cfg, log, resolve.Scripts{Dirs: cfg.ScriptDirs}, ui.Prompter{})
	ectx.Observer = reporter
	ectx.Options.Confirm = confirm

	sum, err := runEngine(ectx)
	if sum != nil {
		reporter.PrintSummary(sum)
	}
	return err
}

// loadConfig loads and validates the configuration. If configPath is
// empty, it looks for dusky-setup.yaml in the default locations.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, _, err := loadConfigWithPath(configPath)
	return cfg, err
}

// loadConfigWithPath is loadConfig plus the path that was actually used,
// for handlers that display it.
func loadConfigWithPath(configPath string) (*config.Config, string, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, "", fmt.Errorf("no config file found: %w\nCreate dusky-setup.yaml or pass --config", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, configPath, nil
}
