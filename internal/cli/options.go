// Package cli: options.go implements the "move-fuzz options" command.
//
// The options command parses the build flags (optionally on top of a
// profile), validates them, and prints the canonical configuration: the
// flag list by default, or the structured value as JSON or YAML.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/move-fuzz/internal/options"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// optionsResult is the structured output of the options command.
type optionsResult struct {
	Build   options.BuildOptions   `json:"build" yaml:"build"`
	FuzzDir options.FuzzDirWrapper `json:"fuzzDir" yaml:"fuzzDir"`

	// Args is the canonical flag list: build flags then --fuzz-dir.
	Args []string `json:"args" yaml:"args"`
}

// NewOptionsCommand creates the "options" cobra command.
func NewOptionsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options [build flags]",
		Short: "Resolve build flags and print their canonical form",
		Long: `Parse and validate the build flags and print the resulting configuration.

Only flags that differ from their defaults are printed, so the output is
the shortest flag list that reproduces the same configuration.

Examples:
  move-fuzz options -O --sanitizer=none
  move-fuzz options --profile ci --features=extra
  move-fuzz options --format yaml -Zbuild-std`,

		Args: noPositionalArgs,
	}

	flags := bindBuildCommandFlags(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json, yaml")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runOptions(cmd.Context(), cmd.OutOrStdout(), flags, format)
	}
	return cmd
}

// runOptions resolves the configuration and prints it.
func runOptions(ctx context.Context, w io.Writer, flags *buildCommandFlags, format string) error {
	if IsJSONOutput() {
		format = formatJSON
	}
	if format != formatText && format != formatJSON && format != formatYAML {
		return &options.MalformedValueError{
			Flag:  "--format",
			Value: format,
			Err:   errors.New("valid values: text, json, yaml"),
		}
	}

	opts, fuzzDir, err := flags.resolve(ctx)
	if err != nil {
		return err
	}

	result := optionsResult{
		Build:   opts,
		FuzzDir: fuzzDir,
		Args:    append(append([]string{}, opts.Args()...), fuzzDir.Args()...),
	}
	return printOptionsResult(w, format, result)
}

// printOptionsResult writes result in the requested format.
func printOptionsResult(w io.Writer, format string, result optionsResult) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case formatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
	default:
		fmt.Fprintln(w, shellJoin(result.Args))
	}
	return nil
}
