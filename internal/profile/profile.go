package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/move-fuzz/internal/model"
	"github.com/shinji-kodama/move-fuzz/internal/options"
)

// Standard file names, in lookup order.
const (
	JSONCFileName = "move-fuzz.jsonc"
	YAMLFileName  = "move-fuzz.yaml"
)

// ErrNotFound is returned by Find when the directory holds no profiles file.
var ErrNotFound = errors.New("no profiles file found")

// File is a parsed profiles file.
type File struct {
	// Path is the file the profiles were loaded from.
	Path string `json:"-" yaml:"-"`

	// Profiles maps a profile name to its build flag tokens.
	Profiles map[string][]string `json:"profiles" yaml:"profiles"`
}

// Find returns the path of the profiles file in dir. JSONC takes
// precedence over YAML when both exist.
func Find(dir string) (string, error) {
	for _, name := range []string{JSONCFileName, YAMLFileName, "move-fuzz.yml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Load reads and parses a profiles file. The format is chosen by file
// extension: .yaml and .yml are YAML, anything else is JSONC.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitProfileError,
				fmt.Sprintf("profiles file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, model.WrapCLIError(model.ExitProfileError,
				fmt.Sprintf("failed to parse profiles file at %s", path), err)
		}
	default:
		// Strip comments and trailing commas before handing the bytes to
		// encoding/json.
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, model.WrapCLIError(model.ExitProfileError,
				fmt.Sprintf("failed to parse profiles file at %s", path), err)
		}
	}
	file.Path = path

	if file.Profiles == nil {
		file.Profiles = map[string][]string{}
	}
	return &file, nil
}

// Names returns the profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Args returns a copy of the tokens of the named profile.
func (f *File) Args(name string) ([]string, error) {
	args, ok := f.Profiles[name]
	if !ok {
		return nil, model.NewCLIError(model.ExitProfileError,
			fmt.Sprintf("profile %q is not defined in %s (available: %s)",
				name, f.Path, strings.Join(f.Names(), ", ")))
	}
	return append([]string(nil), args...), nil
}

// Validate parses every profile on its own and reports the first one that
// is not a valid build configuration.
func (f *File) Validate() error {
	for _, name := range f.Names() {
		if _, err := options.ParseBuildOptions(f.Profiles[name]); err != nil {
			return model.WrapCLIError(model.ExitProfileError,
				fmt.Sprintf("profile %q in %s is invalid", name, f.Path), err)
		}
	}
	return nil
}

// Apply parses the named profile's tokens followed by args. Later tokens
// override earlier scalar values; -Z flags accumulate in order.
func (f *File) Apply(name string, args []string) (options.BuildOptions, error) {
	profileArgs, err := f.Args(name)
	if err != nil {
		return options.BuildOptions{}, err
	}
	return options.ParseBuildOptions(append(profileArgs, args...))
}
