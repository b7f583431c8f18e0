package reexec

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/move-fuzz/internal/options"
)

func ptr[T any](v T) *T { return &v }

// TestArgs verifies the argv layout: subcommand, build flags, fuzz dir,
// then the separator and positional arguments.
func TestArgs(t *testing.T) {
	build := options.DefaultBuildOptions()
	build.Cargo.Release = true
	build.Cargo.Sanitizer = options.SanitizerNone
	fuzzDir := options.FuzzDirWrapper{FuzzDir: ptr("/work/fuzz")}

	assert.Equal(t,
		[]string{"build", "-O", "--sanitizer=none", "--fuzz-dir=/work/fuzz", "--", "target_a"},
		Args("build", build, fuzzDir, "target_a"))

	assert.Equal(t, []string{"build"}, Args("build", options.DefaultBuildOptions(), options.FuzzDirWrapper{}))
}

// TestParse_RoundTrip verifies that Parse recovers what Args encoded.
func TestParse_RoundTrip(t *testing.T) {
	build := options.DefaultBuildOptions().WithCoverage()
	build.TargetDir = ptr("/tmp/cov")
	build.Cargo.UnstableFlags = []string{"a", "b"}
	build.Move.BytecodeVersion = ptr(uint32(7))
	fuzzDir := options.FuzzDirWrapper{FuzzDir: ptr("fuzz dir")}

	tests := []struct {
		name string
		rest []string
	}{
		{"no positional arguments", nil},
		{"positional arguments", []string{"target", "--", "-O"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Parse(Args("coverage", build, fuzzDir, tt.rest...))
			require.NoError(t, err)

			assert.Equal(t, "coverage", inv.Subcommand)
			assert.Equal(t, build, inv.Build)
			assert.Equal(t, fuzzDir, inv.FuzzDir)
			assert.Equal(t, tt.rest, inv.Rest)
		})
	}
}

// TestParse_Errors covers a missing subcommand, stray positionals, and
// configuration errors from the build flags.
func TestParse_Errors(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"-O"})
	assert.Error(t, err)

	_, err = Parse([]string{"build", "stray"})
	var unrecognized *options.UnrecognizedFlagError
	require.True(t, errors.As(err, &unrecognized))
	assert.Equal(t, "stray", unrecognized.Token)

	_, err = Parse([]string{"build", "-D", "-O"})
	var conflict *options.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

// TestCommand verifies that the command carries the argv and is not started.
func TestCommand(t *testing.T) {
	build := options.DefaultBuildOptions()
	build.Verbose = true

	cmd, err := Command(context.Background(), "/usr/local/bin/move-fuzz", "build", build, options.FuzzDirWrapper{})
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/move-fuzz", cmd.Path)
	assert.Equal(t, []string{"/usr/local/bin/move-fuzz", "build", "-v"}, cmd.Args)
	assert.Nil(t, cmd.Process)

	self, err := Command(context.Background(), "", "build", build, options.FuzzDirWrapper{})
	require.NoError(t, err)
	assert.NotEmpty(t, self.Path)
}
