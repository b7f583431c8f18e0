// Package reexec builds the argument vector used to re-enter this binary
// with a configuration equivalent to the current one, for example when the
// coverage command hands a coverage-instrumented build to a subprocess.
//
// The argv is assembled from the canonical flag tokens of
// options.BuildOptions and options.FuzzDirWrapper, so Parse recovers the
// same values. The command is constructed here but never started; running
// it belongs to the caller.
package reexec

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/shinji-kodama/move-fuzz/internal/options"
)

// Invocation is a decoded re-entry argv.
type Invocation struct {
	Subcommand string
	Build      options.BuildOptions
	FuzzDir    options.FuzzDirWrapper

	// Rest holds the positional arguments that followed "--".
	Rest []string
}

// Args returns the argv (without the executable) for re-entering the given
// subcommand: the subcommand, the build flags, the fuzz-dir flag, and then
// rest after a "--" separator when rest is non-empty.
func Args(subcommand string, build options.BuildOptions, fuzzDir options.FuzzDirWrapper, rest ...string) []string {
	args := []string{subcommand}
	args = append(args, build.Args()...)
	args = append(args, fuzzDir.Args()...)
	if len(rest) > 0 {
		args = append(args, "--")
		args = append(args, rest...)
	}
	return args
}

// Command returns an unstarted *exec.Cmd that runs exe with Args. An empty
// exe means the running executable. Stdio is inherited from this process.
func Command(ctx context.Context, exe, subcommand string, build options.BuildOptions, fuzzDir options.FuzzDirWrapper, rest ...string) (*exec.Cmd, error) {
	if exe == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, err
		}
		exe = self
	}

	cmd := exec.CommandContext(ctx, exe, Args(subcommand, build, fuzzDir, rest...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Parse decodes an argv produced by Args. Flag errors are reported with
// the options package's error kinds.
func Parse(argv []string) (Invocation, error) {
	if len(argv) == 0 || argv[0] == "" || argv[0][0] == '-' {
		return Invocation{}, errors.New("re-entry argv must start with a subcommand")
	}

	flagArgs := argv[1:]
	var rest []string
	for i, arg := range flagArgs {
		if arg == "--" {
			rest = append([]string(nil), flagArgs[i+1:]...)
			flagArgs = flagArgs[:i]
			break
		}
	}

	fs := options.NewFlagSet(argv[0])
	build := options.BindBuildFlags(fs)
	fuzzDir := options.BindFuzzDirFlags(fs)
	if err := options.ParseFlags(fs, flagArgs); err != nil {
		return Invocation{}, err
	}

	opts, err := build.Options()
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Subcommand: argv[0],
		Build:      opts,
		FuzzDir:    fuzzDir.Wrapper(),
		Rest:       rest,
	}, nil
}
