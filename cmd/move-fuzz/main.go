// Package main is the entry point for the move-fuzz CLI.
//
// The binary resolves the build configuration of Move fuzz targets and
// renders it as a canonical flag list. All commands live in the
// internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/move-fuzz/internal/cli"
)

// version, commit, and date are set at build time via ldflags. They back
// the --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
