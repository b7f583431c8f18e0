// Package model defines the process-level error types for the move-fuzz CLI.
//
// The package carries no external dependencies. It defines exit codes
// (ExitCode) and a custom error type (CLIError) that carries an exit code
// so the cli package can translate failures into OS process exit statuses.
package model
