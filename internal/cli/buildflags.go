package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/move-fuzz/internal/model"
	"github.com/shinji-kodama/move-fuzz/internal/options"
	"github.com/shinji-kodama/move-fuzz/internal/profile"
	"github.com/shinji-kodama/move-fuzz/internal/project"
)

// buildCommandFlags holds the flag bindings shared by every command that
// accepts build options.
type buildCommandFlags struct {
	build   *options.BuildFlags
	fuzzDir *options.FuzzDirFlags

	// profile names a preset in the fuzz directory's profiles file.
	profile string
}

// bindBuildCommandFlags registers the build flags, --fuzz-dir and
// --profile on cmd, and routes flag parse failures through the options
// package so they surface as configuration errors.
func bindBuildCommandFlags(cmd *cobra.Command) *buildCommandFlags {
	f := &buildCommandFlags{
		build:   options.BindBuildFlags(cmd.Flags()),
		fuzzDir: options.BindFuzzDirFlags(cmd.Flags()),
	}
	cmd.Flags().StringVar(&f.profile, "profile", "",
		"Apply a named profile from move-fuzz.jsonc or move-fuzz.yaml in the fuzz directory")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return options.ClassifyFlagError(err)
	})
	return f
}

// resolve returns the build options and fuzz directory for this
// invocation. With --profile, every profile in the file must be valid; the
// selected profile's tokens are parsed first and the flags set on the
// command line are parsed after them. A relative or absent --fuzz-dir is
// resolved against the project root.
func (f *buildCommandFlags) resolve(ctx context.Context) (options.BuildOptions, options.FuzzDirWrapper, error) {
	fuzzDir := f.fuzzDir.Wrapper()

	opts, err := f.build.Options()
	if err != nil {
		return options.BuildOptions{}, fuzzDir, err
	}
	VerboseLog("Command-line build options: %q", opts.String())

	if f.profile == "" {
		return opts, fuzzDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return options.BuildOptions{}, fuzzDir, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	root, err := project.FindRoot(ctx, cwd)
	if err != nil {
		return options.BuildOptions{}, fuzzDir, model.WrapCLIError(model.ExitGeneralError, "failed to locate project root", err)
	}
	dir := fuzzDir.Resolve(root)
	VerboseLog("Project root: %s, fuzz directory: %s", root, dir)

	path, err := profile.Find(dir)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return options.BuildOptions{}, fuzzDir, model.WrapCLIError(model.ExitProfileError,
				"--profile was given but the fuzz directory has no profiles file", err)
		}
		return options.BuildOptions{}, fuzzDir, model.WrapCLIError(model.ExitProfileError, "failed to locate profiles file", err)
	}
	VerboseLog("Using profiles file: %s", path)

	file, err := profile.Load(path)
	if err != nil {
		return options.BuildOptions{}, fuzzDir, err
	}
	if err := file.Validate(); err != nil {
		return options.BuildOptions{}, fuzzDir, err
	}

	// Replay what was typed rather than opts.Args(): the canonical form
	// drops default values, which could then never override the profile.
	merged, err := file.Apply(f.profile, f.build.ExplicitArgs())
	if err != nil {
		return options.BuildOptions{}, fuzzDir, err
	}
	VerboseLog("Build options after profile %q: %q", f.profile, merged.String())
	return merged, fuzzDir, nil
}

// noPositionalArgs rejects positional arguments, and a bare "--", as
// unrecognized tokens.
func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &options.UnrecognizedFlagError{Token: args[0]}
	}
	if cmd.ArgsLenAtDash() >= 0 {
		return &options.UnrecognizedFlagError{Token: "--"}
	}
	return nil
}

// shellJoin renders argv as a single line that a POSIX shell splits back
// into the same words.
func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
			quoted[i] = arg
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}
