// Package profile loads named build-flag presets from the fuzz project
// directory.
//
// A profiles file is either move-fuzz.jsonc (JSON with comments, read via
// github.com/tidwall/jsonc and then encoding/json) or move-fuzz.yaml (read
// via gopkg.in/yaml.v3). Both map a profile name to a list of build flag
// tokens:
//
//	{
//	  // CI runs without instrumentation.
//	  "profiles": {
//	    "ci": ["-O", "--sanitizer=none"],
//	  },
//	}
//
// Profile tokens are placed before the command-line tokens and parsed by
// options.ParseBuildOptions, so a profile obeys the same conflict and
// value rules as flags typed by the user.
package profile
