package options

import (
	"errors"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// Long flag names that carry an optional value. Their presence is read
// from FlagSet.Changed rather than from the bound value.
const (
	flagTargetDir       = "target-dir"
	flagFeatures        = "features"
	flagBytecodeVersion = "bytecode-version"
	flagCoverage        = "coverage"
	flagUnstableFlag    = "unstable-flag"
	flagFuzzDir         = "fuzz-dir"
)

// BuildFlags binds the build flag schema to a pflag.FlagSet and turns the
// parsed flags into a BuildOptions value.
type BuildFlags struct {
	fs   *pflag.FlagSet
	opts BuildOptions

	// names lists the flags registered by BindBuildFlags, in the order
	// FlagSet.VisitAll reports them.
	names []string

	// Staging for optional fields; copied into opts only when Changed.
	targetDir       string
	features        string
	bytecodeVersion uint32
	unstableFlags   []string
}

// BindBuildFlags registers every build flag on fs. The --coverage flag is
// registered hidden: it never shows in help, but re-entry argv produced by
// Args still parses.
func BindBuildFlags(fs *pflag.FlagSet) *BuildFlags {
	b := &BuildFlags{fs: fs, opts: DefaultBuildOptions()}
	o := &b.opts

	existing := make(map[string]bool)
	fs.VisitAll(func(f *pflag.Flag) { existing[f.Name] = true })

	fs.BoolVarP(&o.Dev, "dev", "D", false, "Build artifacts in development mode, without optimizations")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "Build target with verbose output from cargo build")
	fs.StringVar(&b.targetDir, flagTargetDir, "", "Target dir option to pass to cargo build")

	fs.Var(decimalUint32Value{p: &b.bytecodeVersion}, flagBytecodeVersion, "Bytecode version to compile move code")
	fs.BoolVar(&o.Move.FetchDepsOnly, "fetch-deps-only", false, "Only fetch dependency repos to MOVE_HOME")
	fs.BoolVar(&o.Move.Force, "force", false, "Force recompilation of all packages")
	fs.BoolVar(&o.Move.SkipFetchLatestGitDeps, "skip-fetch-latest-git-deps", false, "Skip fetching latest git dependencies")

	fs.BoolVarP(&o.Cargo.Release, "release", "O", false, "Build artifacts in release mode, with optimizations")
	fs.BoolVarP(&o.Cargo.DebugAssertions, "debug-assertions", "a", false,
		"Build artifacts with debug assertions and overflow checks enabled (default if not -O)")
	fs.BoolVar(&o.Cargo.NoDefaultFeatures, "no-default-features", false, "Build artifacts with default Cargo features disabled")
	fs.BoolVar(&o.Cargo.AllFeatures, "all-features", false, "Build artifacts with all Cargo features enabled")
	fs.StringVar(&b.features, flagFeatures, "", "Build artifacts with given Cargo feature enabled")
	fs.VarP(sanitizerValue{s: &o.Cargo.Sanitizer}, "sanitizer", "s",
		"Use a specific sanitizer: address, leak, memory, thread, none")
	fs.BoolVar(&o.Cargo.BuildStd, "build-std", false,
		"Pass -Zbuild-std to Cargo, building the standard library with the fuzz target's settings")
	fs.BoolVarP(&o.Cargo.CarefulMode, "careful", "c", false,
		`Enable "careful" mode: build std with debug assertions and extra const UB and init checks (implies --build-std)`)
	fs.StringVar(&o.Cargo.Triple, "target", o.Cargo.Triple, "Target triple of the fuzz target")
	fs.StringArrayVarP(&b.unstableFlags, flagUnstableFlag, "Z", nil, "Unstable (nightly-only) flags to Cargo")
	fs.BoolVar(&o.Cargo.Coverage, flagCoverage, false, "Instrument program code with source-based code coverage")
	fs.BoolVar(&o.Cargo.StripDeadCode, "strip-dead-code", false, "Opt out of linking dead code")
	fs.BoolVar(&o.Cargo.NoCfgFuzzing, "no-cfg-fuzzing", false, "Opt out of the cfg(fuzzing) compilation configuration")
	fs.BoolVar(&o.Cargo.NoTraceCompares, "no-trace-compares", false,
		"Don't build with the sanitizer-coverage-trace-compares LLVM argument")

	_ = fs.MarkHidden(flagCoverage)

	fs.VisitAll(func(f *pflag.Flag) {
		if !existing[f.Name] {
			b.names = append(b.names, f.Name)
		}
	})
	return b
}

// ExplicitArgs returns one --name=value token for every build flag that
// was set on the parsed FlagSet, defaults included, and one token per -Z
// value in the order given. Parsing them after other tokens overrides
// exactly what the user typed.
func (b *BuildFlags) ExplicitArgs() []string {
	var args []string
	for _, name := range b.names {
		if !b.fs.Changed(name) {
			continue
		}
		if name == flagUnstableFlag {
			for _, v := range b.unstableFlags {
				args = append(args, "--"+name+"="+v)
			}
			continue
		}
		args = append(args, "--"+name+"="+b.fs.Lookup(name).Value.String())
	}
	return args
}

// Options returns the BuildOptions described by the parsed flags. It must
// be called after the FlagSet has been parsed. The result shares no memory
// with the binding.
func (b *BuildFlags) Options() (BuildOptions, error) {
	opts := b.opts.clone()
	if b.fs.Changed(flagTargetDir) {
		dir := b.targetDir
		opts.TargetDir = &dir
	}
	if b.fs.Changed(flagFeatures) {
		features := b.features
		opts.Cargo.Features = &features
	}
	if b.fs.Changed(flagBytecodeVersion) {
		version := b.bytecodeVersion
		opts.Move.BytecodeVersion = &version
	}
	if len(b.unstableFlags) > 0 {
		opts.Cargo.UnstableFlags = append([]string(nil), b.unstableFlags...)
	}

	if err := opts.Validate(); err != nil {
		return BuildOptions{}, err
	}
	return opts, nil
}

// ParseBuildOptions parses a complete build flag list. It is the inverse
// of BuildOptions.Args.
func ParseBuildOptions(args []string) (BuildOptions, error) {
	fs := NewFlagSet("build")
	b := BindBuildFlags(fs)
	if err := ParseFlags(fs, args); err != nil {
		return BuildOptions{}, err
	}
	return b.Options()
}

// decimalUint32Value is a pflag.Value for base-10 unsigned integers.
// pflag's own uint32 flag infers the base from the prefix, so "010" would
// parse as 8.
type decimalUint32Value struct {
	p *uint32
}

func (v decimalUint32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

func (v decimalUint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return err
	}
	*v.p = uint32(n)
	return nil
}

func (v decimalUint32Value) Type() string {
	return "uint32"
}

// NewFlagSet returns a quiet FlagSet that reports errors instead of
// printing usage.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// ParseFlags parses args into fs, converts pflag failures into this
// package's error kinds, and rejects any positional leftovers, including a
// bare "--" terminator.
func ParseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return ClassifyFlagError(err)
	}
	if fs.NArg() > 0 {
		return &UnrecognizedFlagError{Token: fs.Arg(0)}
	}
	if fs.ArgsLenAtDash() >= 0 {
		return &UnrecognizedFlagError{Token: "--"}
	}
	return nil
}
