package options

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// DefaultFuzzDirName is the fuzz project directory used when --fuzz-dir
// is not given, relative to the project root.
const DefaultFuzzDirName = "fuzz"

// FuzzDirWrapper locates the fuzz project directory. It is parsed and
// serialized independently of BuildOptions.
type FuzzDirWrapper struct {
	// FuzzDir is the path given with --fuzz-dir. Nil when not given.
	FuzzDir *string `json:"fuzzDir,omitempty" yaml:"fuzzDir,omitempty"`
}

// Args returns --fuzz-dir=<path> when a path is set, and nil otherwise.
func (w FuzzDirWrapper) Args() []string {
	if w.FuzzDir == nil {
		return nil
	}
	return []string{"--" + flagFuzzDir + "=" + *w.FuzzDir}
}

// String joins Args with single spaces.
func (w FuzzDirWrapper) String() string {
	return strings.Join(w.Args(), " ")
}

// Resolve returns the effective fuzz directory: the given path, or
// <projectRoot>/fuzz when none was given. Relative paths are joined to
// projectRoot.
func (w FuzzDirWrapper) Resolve(projectRoot string) string {
	if w.FuzzDir == nil {
		return filepath.Join(projectRoot, DefaultFuzzDirName)
	}
	if filepath.IsAbs(*w.FuzzDir) {
		return filepath.Clean(*w.FuzzDir)
	}
	return filepath.Join(projectRoot, *w.FuzzDir)
}

// FuzzDirFlags binds --fuzz-dir to a pflag.FlagSet.
type FuzzDirFlags struct {
	fs   *pflag.FlagSet
	path string
}

// BindFuzzDirFlags registers --fuzz-dir on fs.
func BindFuzzDirFlags(fs *pflag.FlagSet) *FuzzDirFlags {
	f := &FuzzDirFlags{fs: fs}
	fs.StringVar(&f.path, flagFuzzDir, "", "The path to the fuzz project directory")
	return f
}

// Wrapper returns the FuzzDirWrapper described by the parsed flags.
func (f *FuzzDirFlags) Wrapper() FuzzDirWrapper {
	if !f.fs.Changed(flagFuzzDir) {
		return FuzzDirWrapper{}
	}
	path := f.path
	return FuzzDirWrapper{FuzzDir: &path}
}

// ParseFuzzDir parses a flag list holding at most --fuzz-dir. It is the
// inverse of FuzzDirWrapper.Args.
func ParseFuzzDir(args []string) (FuzzDirWrapper, error) {
	fs := NewFlagSet("fuzz-dir")
	f := BindFuzzDirFlags(fs)
	if err := ParseFlags(fs, args); err != nil {
		return FuzzDirWrapper{}, err
	}
	return f.Wrapper(), nil
}
