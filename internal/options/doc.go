// Package options defines the build configuration of the move-fuzz
// command and its command-line form.
//
// A BuildOptions value is built once per invocation, either from parsed
// command-line flags or programmatically (for example the coverage command
// forcing instrumentation on). Downstream code reads its fields directly,
// or calls Args/String to rebuild an equivalent flag list for a
// subprocess or for re-entering this binary.
//
// Serialization and parsing live side by side and obey one law: for every
// value o that passes Validate,
//
//	ParseBuildOptions(o.Args()) == o
//
// Serialization emits a token only for a field that differs from its
// default, so the all-defaults value serializes to nothing. The flag
// schema is declared once on a pflag.FlagSet (BindBuildFlags) and shared
// by the standalone parser and the cobra commands in internal/cli.
package options
