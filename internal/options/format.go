package options

import (
	"strconv"
	"strings"
)

// Args returns the canonical flag tokens for the Move options.
func (o MoveBuildOptions) Args() []string {
	var args []string
	if o.BytecodeVersion != nil {
		args = append(args, "--bytecode-version="+strconv.FormatUint(uint64(*o.BytecodeVersion), 10))
	}
	if o.FetchDepsOnly {
		args = append(args, "--fetch-deps-only")
	}
	if o.Force {
		args = append(args, "--force")
	}
	if o.SkipFetchLatestGitDeps {
		args = append(args, "--skip-fetch-latest-git-deps")
	}
	return args
}

// String joins Args with single spaces.
func (o MoveBuildOptions) String() string {
	return strings.Join(o.Args(), " ")
}

// Args returns the canonical flag tokens for the Cargo options. The target
// triple is compared against DefaultTarget at call time.
func (o CargoBuildOptions) Args() []string {
	var args []string
	if o.Release {
		args = append(args, "-O")
	}
	if o.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if o.AllFeatures {
		args = append(args, "--all-features")
	}
	if o.Features != nil {
		args = append(args, "--features="+*o.Features)
	}

	// Address is the implicit default; None has an empty compiler name but
	// must still be spelled out.
	switch o.Sanitizer {
	case SanitizerAddress:
	case SanitizerNone:
		args = append(args, "--sanitizer=none")
	default:
		args = append(args, "--sanitizer="+o.Sanitizer.String())
	}

	if o.BuildStd {
		args = append(args, "--build-std")
	}
	if o.CarefulMode {
		args = append(args, "--careful")
	}
	if o.Coverage {
		args = append(args, "--coverage")
	}
	if o.DebugAssertions {
		args = append(args, "--debug-assertions")
	}
	if o.StripDeadCode {
		args = append(args, "--strip-dead-code")
	}
	if o.NoCfgFuzzing {
		args = append(args, "--no-cfg-fuzzing")
	}
	if o.NoTraceCompares {
		args = append(args, "--no-trace-compares")
	}
	if o.Triple != DefaultTarget() {
		args = append(args, "--target="+o.Triple)
	}
	for _, flag := range o.UnstableFlags {
		args = append(args, unstableFlagToken(flag))
	}
	return args
}

// String joins Args with single spaces.
func (o CargoBuildOptions) String() string {
	return strings.Join(o.Args(), " ")
}

// Args returns the canonical flag tokens: Move options, then Cargo
// options, then the top-level flags. The all-defaults value yields nil.
func (o BuildOptions) Args() []string {
	var args []string
	args = append(args, o.Move.Args()...)
	args = append(args, o.Cargo.Args()...)
	if o.Dev {
		args = append(args, "-D")
	}
	if o.Verbose {
		args = append(args, "-v")
	}
	if o.TargetDir != nil {
		args = append(args, "--target-dir="+*o.TargetDir)
	}
	return args
}

// String joins Args with single spaces. Values containing whitespace do
// not survive a split on spaces; use Args when handing flags to a process.
func (o BuildOptions) String() string {
	return strings.Join(o.Args(), " ")
}

// unstableFlagToken renders one -Z token. pflag reads "-Z=x" as the value
// "x", so a value that itself starts with '=' needs the explicit form.
func unstableFlagToken(flag string) string {
	if strings.HasPrefix(flag, "=") {
		return "-Z=" + flag
	}
	return "-Z" + flag
}
