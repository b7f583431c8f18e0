// Package cli: coverage.go implements the "move-fuzz coverage" command.
//
// The coverage command derives the configuration of a coverage build from
// the given build flags and prints the argv that re-enters the build
// entry point with it. The derived value differs from the input only in
// having coverage instrumentation enabled.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/move-fuzz/internal/options"
	"github.com/shinji-kodama/move-fuzz/internal/reexec"
)

// coverageFlags holds the flag values for the coverage command.
type coverageFlags struct {
	subcommand string // --subcommand: entry point to re-enter
	exe        string // --exe: executable to re-enter (default: this binary)
}

// coverageResult is the JSON output of the coverage command.
type coverageResult struct {
	Argv  []string             `json:"argv"`
	Build options.BuildOptions `json:"build"`
}

// NewCoverageCommand creates the "coverage" cobra command.
func NewCoverageCommand() *cobra.Command {
	cov := &coverageFlags{}

	cmd := &cobra.Command{
		Use:   "coverage [build flags] [-- <target> [args...]]",
		Short: "Print the re-entry command for a coverage-instrumented build",
		Long: `Derive the coverage build configuration from the given build flags and
print the command line that re-enters the build entry point with it.

Positional arguments (for example the fuzz target name) are forwarded
after a "--" separator.

Examples:
  move-fuzz coverage -O my_target
  move-fuzz coverage --json --fuzz-dir=fuzz -- my_target corpus/`,

		Args: cobra.ArbitraryArgs,
	}

	flags := bindBuildCommandFlags(cmd)
	cmd.Flags().StringVar(&cov.subcommand, "subcommand", "build", "Subcommand to re-enter with the coverage configuration")
	cmd.Flags().StringVar(&cov.exe, "exe", "", "Executable to re-enter (default: this binary)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCoverage(cmd.Context(), cmd.OutOrStdout(), flags, cov, args)
	}
	return cmd
}

// runCoverage derives the coverage configuration and prints the re-entry argv.
func runCoverage(ctx context.Context, w io.Writer, flags *buildCommandFlags, cov *coverageFlags, args []string) error {
	opts, fuzzDir, err := flags.resolve(ctx)
	if err != nil {
		return err
	}

	// build_std stays as given; whether coverage should force it off is
	// still an open product decision.
	if opts.Cargo.BuildStd {
		logger.Warnw("--build-std is known to conflict with coverage instrumentation; keeping it as requested",
			"subcommand", cov.subcommand)
	}

	derived := opts.WithCoverage()
	cmd, err := reexec.Command(ctx, cov.exe, cov.subcommand, derived, fuzzDir, args...)
	if err != nil {
		return err
	}
	VerboseLog("Coverage re-entry: %v", cmd.Args)

	if IsJSONOutput() {
		data, err := json.MarshalIndent(coverageResult{Argv: cmd.Args, Build: derived}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, shellJoin(cmd.Args))
	return nil
}
