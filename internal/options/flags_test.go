package options

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseBuildOptions_Empty verifies that no flags yield the defaults.
func TestParseBuildOptions_Empty(t *testing.T) {
	opts, err := ParseBuildOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBuildOptions(), opts)
}

// TestParseBuildOptions_EndToEnd parses the documented example and checks
// the resulting Cargo options field by field.
func TestParseBuildOptions_EndToEnd(t *testing.T) {
	args := strings.Fields("-O --features=foo --sanitizer=none -Zunstable1 -Zunstable2")

	opts, err := ParseBuildOptions(args)
	require.NoError(t, err)

	want := DefaultCargoBuildOptions()
	want.Release = true
	want.Features = ptr("foo")
	want.Sanitizer = SanitizerNone
	want.UnstableFlags = []string{"unstable1", "unstable2"}
	assert.Equal(t, want, opts.Cargo)

	again, err := ParseBuildOptions(opts.Args())
	require.NoError(t, err)
	assert.Equal(t, opts, again)
	assert.ElementsMatch(t, args, opts.Args())
}

// TestParseBuildOptions_Forms verifies the accepted spellings: short and
// long names, separate values, and grouped short booleans.
func TestParseBuildOptions_Forms(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, o BuildOptions)
	}{
		{
			name: "short booleans grouped",
			args: []string{"-Dva"},
			check: func(t *testing.T, o BuildOptions) {
				assert.True(t, o.Dev)
				assert.True(t, o.Verbose)
				assert.True(t, o.Cargo.DebugAssertions)
			},
		},
		{
			name: "long booleans",
			args: []string{"--release", "--careful", "--build-std"},
			check: func(t *testing.T, o BuildOptions) {
				assert.True(t, o.Cargo.Release)
				assert.True(t, o.Cargo.CarefulMode)
				assert.True(t, o.Cargo.BuildStd)
			},
		},
		{
			name: "separate values",
			args: []string{"--features", "foo", "--target-dir", "/tmp/t", "-s", "leak", "-Z", "x"},
			check: func(t *testing.T, o BuildOptions) {
				assert.Equal(t, ptr("foo"), o.Cargo.Features)
				assert.Equal(t, ptr("/tmp/t"), o.TargetDir)
				assert.Equal(t, SanitizerLeak, o.Cargo.Sanitizer)
				assert.Equal(t, []string{"x"}, o.Cargo.UnstableFlags)
			},
		},
		{
			name: "explicit address sanitizer equals default",
			args: []string{"--sanitizer=address"},
			check: func(t *testing.T, o BuildOptions) {
				assert.Equal(t, DefaultBuildOptions(), o)
			},
		},
		{
			name: "last scalar wins",
			args: []string{"--features=a", "--features=b"},
			check: func(t *testing.T, o BuildOptions) {
				assert.Equal(t, ptr("b"), o.Cargo.Features)
			},
		},
		{
			name: "bytecode version zero is present",
			args: []string{"--bytecode-version=0"},
			check: func(t *testing.T, o BuildOptions) {
				require.NotNil(t, o.Move.BytecodeVersion)
				assert.Equal(t, uint32(0), *o.Move.BytecodeVersion)
			},
		},
		{
			name: "bytecode version leading zero is decimal",
			args: []string{"--bytecode-version=010"},
			check: func(t *testing.T, o BuildOptions) {
				require.NotNil(t, o.Move.BytecodeVersion)
				assert.Equal(t, uint32(10), *o.Move.BytecodeVersion)
			},
		},
		{
			name: "hidden coverage flag still parses",
			args: []string{"--coverage"},
			check: func(t *testing.T, o BuildOptions) {
				assert.True(t, o.Cargo.Coverage)
			},
		},
		{
			name: "empty target dir is present",
			args: []string{"--target-dir="},
			check: func(t *testing.T, o BuildOptions) {
				assert.Equal(t, ptr(""), o.TargetDir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseBuildOptions(tt.args)
			require.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

// TestParseBuildOptions_Conflicts verifies mutual-exclusion enforcement.
func TestParseBuildOptions_Conflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"dev and release", []string{"--dev", "--release"}, []string{"--dev", "--release"}},
		{"grouped short dev and release", []string{"-DO"}, []string{"--dev", "--release"}},
		{"all and no default features", []string{"--all-features", "--no-default-features"}, []string{"--all-features", "--no-default-features"}},
		{"all features and features", []string{"--features=x", "--all-features"}, []string{"--all-features", "--features"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBuildOptions(tt.args)
			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict), "expected ConflictError, got %v", err)
			assert.Equal(t, tt.want, conflict.Flags)
		})
	}
}

// TestParseBuildOptions_Malformed verifies MalformedValueError for missing
// and type-invalid values.
func TestParseBuildOptions_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		flag  string
		value string
	}{
		{"non-numeric bytecode version", []string{"--bytecode-version=abc"}, "--bytecode-version", "abc"},
		{"negative bytecode version", []string{"--bytecode-version=-1"}, "--bytecode-version", "-1"},
		{"hex bytecode version", []string{"--bytecode-version=0x10"}, "--bytecode-version", "0x10"},
		{"binary bytecode version", []string{"--bytecode-version=0b11"}, "--bytecode-version", "0b11"},
		{"octal bytecode version", []string{"--bytecode-version=0o17"}, "--bytecode-version", "0o17"},
		{"underscored bytecode version", []string{"--bytecode-version=1_000"}, "--bytecode-version", "1_000"},
		{"bytecode version overflow", []string{"--bytecode-version=4294967296"}, "--bytecode-version", "4294967296"},
		{"unknown sanitizer", []string{"--sanitizer=undefined"}, "--sanitizer", "undefined"},
		{"upper-case sanitizer", []string{"-sNONE"}, "--sanitizer", "NONE"},
		{"missing features value", []string{"--features"}, "--features", ""},
		{"missing short unstable value", []string{"-Z"}, "--unstable-flag", ""},
		{"invalid boolean", []string{"--dev=maybe"}, "--dev", "maybe"},
		{"empty unstable flag", []string{"--unstable-flag="}, "-Z", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBuildOptions(tt.args)
			var malformed *MalformedValueError
			require.True(t, errors.As(err, &malformed), "expected MalformedValueError, got %v", err)
			assert.Equal(t, tt.flag, malformed.Flag)
			assert.Equal(t, tt.value, malformed.Value)
		})
	}
}

// TestParseBuildOptions_Unrecognized verifies UnrecognizedFlagError for
// unknown flags and stray positional tokens.
func TestParseBuildOptions_Unrecognized(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		token string
	}{
		{"unknown long flag", []string{"--bogus"}, "--bogus"},
		{"unknown long flag with value", []string{"--bogus=1"}, "--bogus"},
		{"unknown short flag", []string{"-x"}, "-x"},
		{"fuzz dir is not a build flag", []string{"--fuzz-dir=fuzz"}, "--fuzz-dir"},
		{"positional token", []string{"-O", "target"}, "target"},
		{"empty token", []string{""}, ""},
		{"token after terminator", []string{"--", "-O"}, "-O"},
		{"lone terminator", []string{"-O", "--"}, "--"},
		{"bad syntax", []string{"---release"}, "---release"},
		{"help", []string{"--help"}, "--help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBuildOptions(tt.args)
			var unrecognized *UnrecognizedFlagError
			require.True(t, errors.As(err, &unrecognized), "expected UnrecognizedFlagError, got %v", err)
			assert.Equal(t, tt.token, unrecognized.Token)
		})
	}
}

// TestBuildFlags_ExplicitArgs verifies that flags set to their default
// value are still reported, and that -Z values keep their order.
func TestBuildFlags_ExplicitArgs(t *testing.T) {
	fs := NewFlagSet("test")
	fs.String("profile", "", "not a build flag")
	b := BindBuildFlags(fs)

	args := []string{"-O", "--sanitizer=address", "-Zb", "-Za", "--target-dir=", "--profile=ci"}
	require.NoError(t, ParseFlags(fs, args))

	explicit := b.ExplicitArgs()
	assert.Equal(t, []string{
		"--release=true",
		"--sanitizer=address",
		"--target-dir=",
		"--unstable-flag=b",
		"--unstable-flag=a",
	}, explicit)

	opts, err := b.Options()
	require.NoError(t, err)
	reparsed, err := ParseBuildOptions(explicit)
	require.NoError(t, err)
	assert.Equal(t, opts, reparsed)

	// Later explicit tokens override earlier non-default ones.
	overridden, err := ParseBuildOptions([]string{
		"--sanitizer=none", "--target=custom",
		"--sanitizer=address", "--target=" + DefaultTarget(),
	})
	require.NoError(t, err)
	assert.Equal(t, SanitizerAddress, overridden.Cargo.Sanitizer)
	assert.Equal(t, DefaultTarget(), overridden.Cargo.Triple)
}

// TestBuildFlags_ExplicitArgsUnparsed verifies that nothing is reported
// before any flag is set.
func TestBuildFlags_ExplicitArgsUnparsed(t *testing.T) {
	b := BindBuildFlags(NewFlagSet("test"))
	assert.Empty(t, b.ExplicitArgs())
}

// TestBindBuildFlags_CoverageHidden verifies that --coverage is registered
// but does not appear in help output.
func TestBindBuildFlags_CoverageHidden(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindBuildFlags(fs)

	flag := fs.Lookup("coverage")
	require.NotNil(t, flag)
	assert.True(t, flag.Hidden)
	assert.NotContains(t, fs.FlagUsages(), "--coverage")
	assert.Contains(t, fs.FlagUsages(), "--sanitizer")
}

// TestBuildFlags_OptionsIsolated verifies that values returned by Options
// do not alias the binding's internal state.
func TestBuildFlags_OptionsIsolated(t *testing.T) {
	fs := NewFlagSet("test")
	b := BindBuildFlags(fs)
	require.NoError(t, fs.Parse([]string{"-Za", "--features=f"}))

	first, err := b.Options()
	require.NoError(t, err)
	first.Cargo.UnstableFlags[0] = "changed"
	*first.Cargo.Features = "changed"

	second, err := b.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second.Cargo.UnstableFlags)
	assert.Equal(t, ptr("f"), second.Cargo.Features)
}
