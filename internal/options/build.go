package options

import (
	"errors"
	"fmt"
)

// MoveBuildOptions holds options for the Move compiler front end.
type MoveBuildOptions struct {
	// BytecodeVersion selects the Move bytecode version. Nil means the
	// compiler default.
	BytecodeVersion *uint32 `json:"bytecodeVersion,omitempty" yaml:"bytecodeVersion,omitempty"`

	// FetchDepsOnly only fetches dependency repositories to MOVE_HOME.
	FetchDepsOnly bool `json:"fetchDepsOnly,omitempty" yaml:"fetchDepsOnly,omitempty"`

	// Force recompiles all packages.
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`

	// SkipFetchLatestGitDeps skips fetching the latest git dependencies.
	SkipFetchLatestGitDeps bool `json:"skipFetchLatestGitDeps,omitempty" yaml:"skipFetchLatestGitDeps,omitempty"`
}

// CargoBuildOptions holds options for the native build driver.
type CargoBuildOptions struct {
	// Release builds with optimizations. Excludes BuildOptions.Dev.
	Release bool `json:"release,omitempty" yaml:"release,omitempty"`

	// DebugAssertions enables debug assertions and overflow checks.
	DebugAssertions bool `json:"debugAssertions,omitempty" yaml:"debugAssertions,omitempty"`

	// NoDefaultFeatures disables the default Cargo features.
	NoDefaultFeatures bool `json:"noDefaultFeatures,omitempty" yaml:"noDefaultFeatures,omitempty"`

	// AllFeatures enables every Cargo feature. Excludes NoDefaultFeatures
	// and Features.
	AllFeatures bool `json:"allFeatures,omitempty" yaml:"allFeatures,omitempty"`

	// Features enables the given Cargo features. Nil means none were given;
	// a pointer to "" is a distinct, explicit empty list.
	Features *string `json:"features,omitempty" yaml:"features,omitempty"`

	// Sanitizer selects the instrumentation. Defaults to SanitizerAddress.
	Sanitizer Sanitizer `json:"sanitizer" yaml:"sanitizer"`

	// BuildStd rebuilds the standard library with the fuzz target's settings.
	BuildStd bool `json:"buildStd,omitempty" yaml:"buildStd,omitempty"`

	// CarefulMode builds the standard library with debug assertions and
	// extra UB and initialization checks. Implies BuildStd at build time.
	CarefulMode bool `json:"carefulMode,omitempty" yaml:"carefulMode,omitempty"`

	// Triple is the target triple. Defaults to DefaultTarget().
	Triple string `json:"triple" yaml:"triple"`

	// UnstableFlags are nightly-only -Z flags passed to Cargo, in order.
	// Nil when there are none.
	UnstableFlags []string `json:"unstableFlags,omitempty" yaml:"unstableFlags,omitempty"`

	// Coverage instruments the target with source-based coverage. It is set
	// by the coverage command and is hidden from user-facing help.
	Coverage bool `json:"coverage,omitempty" yaml:"coverage,omitempty"`

	// StripDeadCode opts out of linking dead code.
	StripDeadCode bool `json:"stripDeadCode,omitempty" yaml:"stripDeadCode,omitempty"`

	// NoCfgFuzzing opts out of the cfg(fuzzing) compilation setting.
	NoCfgFuzzing bool `json:"noCfgFuzzing,omitempty" yaml:"noCfgFuzzing,omitempty"`

	// NoTraceCompares builds without sanitizer-coverage-trace-compares.
	NoTraceCompares bool `json:"noTraceCompares,omitempty" yaml:"noTraceCompares,omitempty"`
}

// BuildOptions is the full build configuration of one invocation.
type BuildOptions struct {
	// Dev builds without optimizations. Excludes Cargo.Release.
	Dev bool `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Verbose requests verbose output from the build driver.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	// TargetDir is passed to the build driver as its target directory.
	TargetDir *string `json:"targetDir,omitempty" yaml:"targetDir,omitempty"`

	Move  MoveBuildOptions  `json:"move" yaml:"move"`
	Cargo CargoBuildOptions `json:"cargo" yaml:"cargo"`
}

// DefaultCargoBuildOptions returns the Cargo options used when no flag is given.
func DefaultCargoBuildOptions() CargoBuildOptions {
	return CargoBuildOptions{
		Sanitizer: SanitizerAddress,
		Triple:    DefaultTarget(),
	}
}

// DefaultBuildOptions returns the configuration used when no flag is given.
// It serializes to an empty flag list.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Cargo: DefaultCargoBuildOptions()}
}

// Validate checks the cross-field invariants. It returns a *ConflictError
// for mutually exclusive settings and a *MalformedValueError for values
// that have no command-line form.
func (o BuildOptions) Validate() error {
	if o.Dev && o.Cargo.Release {
		return &ConflictError{Flags: []string{"--dev", "--release"}}
	}
	return o.Cargo.Validate()
}

// Validate checks the Cargo-level invariants.
func (o CargoBuildOptions) Validate() error {
	if o.AllFeatures && o.NoDefaultFeatures {
		return &ConflictError{Flags: []string{"--all-features", "--no-default-features"}}
	}
	if o.AllFeatures && o.Features != nil {
		return &ConflictError{Flags: []string{"--all-features", "--features"}}
	}
	if !o.Sanitizer.IsValid() {
		return &MalformedValueError{
			Flag:  "--sanitizer",
			Value: o.Sanitizer.String(),
			Err:   errors.New("unknown sanitizer"),
		}
	}
	for i, flag := range o.UnstableFlags {
		if flag == "" {
			return &MalformedValueError{
				Flag: "-Z",
				Err:  fmt.Errorf("unstable flag %d is empty", i),
			}
		}
	}
	return nil
}

// WithCoverage returns a copy of o with coverage instrumentation enabled.
// The receiver is left untouched.
func (o BuildOptions) WithCoverage() BuildOptions {
	out := o.clone()
	out.Cargo.Coverage = true
	return out
}

// clone returns a deep copy so that derived values share no memory with o.
func (o BuildOptions) clone() BuildOptions {
	out := o
	if o.TargetDir != nil {
		dir := *o.TargetDir
		out.TargetDir = &dir
	}
	if o.Move.BytecodeVersion != nil {
		v := *o.Move.BytecodeVersion
		out.Move.BytecodeVersion = &v
	}
	if o.Cargo.Features != nil {
		f := *o.Cargo.Features
		out.Cargo.Features = &f
	}
	if o.Cargo.UnstableFlags != nil {
		out.Cargo.UnstableFlags = append([]string(nil), o.Cargo.UnstableFlags...)
	}
	return out
}
