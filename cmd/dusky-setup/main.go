// Package main is the entry point for the dusky-setup CLI.
//
// dusky-setup walks the Dusky post-install sequence: an ordered list of
// setup scripts, some running as the invoking user and some through
// sudo. Completed steps are recorded on disk, so an interrupted run
// resumes where it stopped instead of starting over.
//
// Commands: run (default), watch, version.
//
// For detailed usage information, run:
//
//	dusky-setup --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusky-system/dusky-setup/cmd/dusky-setup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
