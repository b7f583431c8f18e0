// Package cli implements the cobra-based CLI commands for move-fuzz.
//
// Each subcommand is defined in its own file within this package. This
// file defines the root command, the global flags, and the mapping from
// errors to process exit codes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/move-fuzz/internal/model"
	"github.com/shinji-kodama/move-fuzz/internal/options"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// debug enables debug-level logging on stderr. It is separate from the
	// build option -v/--verbose, which is forwarded to the build driver.
	debug bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text and the global flags, and sets up logging before any subcommand runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "move-fuzz",
		Short: "Build configuration for Move fuzz targets",
		Long: `move-fuzz resolves the options that control how a Move fuzz target is
compiled (optimization level, sanitizer, features, target triple and
instrumentation toggles) and renders them as a canonical flag list that
can be handed to a build subprocess or back to move-fuzz itself.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Errors are formatted by Execute (text or JSON based on --json).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(debug, jsonOutput)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(NewOptionsCommand())
	rootCmd.AddCommand(NewCoverageCommand())

	return rootCmd
}

// Execute runs the root command and exits with the code that matches the
// returned error. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	syncLogger()
	if err == nil {
		return
	}

	code := exitCodeFor(err)
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(os.Stderr, code, cliErr.Message, cliErr.Err)
	} else {
		printError(os.Stderr, code, err.Error(), nil)
	}
	os.Exit(int(code))
}

// exitCodeFor maps an error to a process exit code. CLIError carries its
// own code; configuration errors from the options package are usage
// errors; anything else is a general error.
func exitCodeFor(err error) model.ExitCode {
	var cliErr *model.CLIError
	switch {
	case err == nil:
		return model.ExitSuccess
	case errors.As(err, &cliErr):
		return cliErr.Code
	case options.IsConfigError(err):
		return model.ExitUsageError
	default:
		return model.ExitGeneralError
	}
}

// printError writes an error message in the format selected by --json.
func printError(w io.Writer, code model.ExitCode, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
			"kind":    code.String(),
		}
		if underlying != nil {
			errObj["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
