package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ConflictError is returned when mutually exclusive flags are set together.
type ConflictError struct {
	// Flags lists the conflicting flags in their long form, e.g. "--dev".
	Flags []string
}

// Error implements the error interface for ConflictError.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting flags: %s cannot be used together", strings.Join(e.Flags, " and "))
}

// MalformedValueError is returned when a value-bearing flag has a missing
// or invalid value.
type MalformedValueError struct {
	// Flag is the flag in its long form, e.g. "--bytecode-version".
	Flag string

	// Value is the offending value. Empty when the value was missing.
	Value string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for MalformedValueError.
func (e *MalformedValueError) Error() string {
	msg := fmt.Sprintf("invalid value %q for %s", e.Value, e.Flag)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// UnrecognizedFlagError is returned for a token that is not a known flag,
// including stray positional arguments.
type UnrecognizedFlagError struct {
	Token string
}

// Error implements the error interface for UnrecognizedFlagError.
func (e *UnrecognizedFlagError) Error() string {
	return fmt.Sprintf("unrecognized flag: %s", e.Token)
}

// IsConfigError reports whether err is one of the three configuration
// error kinds produced by this package.
func IsConfigError(err error) bool {
	var (
		conflict     *ConflictError
		malformed    *MalformedValueError
		unrecognized *UnrecognizedFlagError
	)
	return errors.As(err, &conflict) || errors.As(err, &malformed) || errors.As(err, &unrecognized)
}

// ClassifyFlagError converts a pflag parse failure into one of the
// package's error kinds. pflag reports each failure with its own typed
// error, so the mapping is a direct type switch. Errors it does not
// recognize are returned unchanged.
func ClassifyFlagError(err error) error {
	var (
		malformed     *MalformedValueError
		invalidValue  *pflag.InvalidValueError
		valueRequired *pflag.ValueRequiredError
		notExist      *pflag.NotExistError
		invalidSyntax *pflag.InvalidSyntaxError
	)

	switch {
	case errors.As(err, &malformed):
		// Raised by one of our own flag.Value implementations.
		return malformed
	case errors.As(err, &invalidValue):
		return &MalformedValueError{
			Flag:  "--" + invalidValue.GetFlag().Name,
			Value: invalidValue.GetValue(),
			Err:   invalidValue.Unwrap(),
		}
	case errors.As(err, &valueRequired):
		return &MalformedValueError{
			Flag: "--" + valueRequired.GetFlag().Name,
			Err:  errors.New("flag needs an argument"),
		}
	case errors.As(err, &notExist):
		if shorts := notExist.GetSpecifiedShortnames(); shorts != "" {
			return &UnrecognizedFlagError{Token: "-" + notExist.GetSpecifiedName()}
		}
		return &UnrecognizedFlagError{Token: "--" + notExist.GetSpecifiedName()}
	case errors.As(err, &invalidSyntax):
		return &UnrecognizedFlagError{Token: invalidSyntax.GetSpecifiedFlag()}
	case errors.Is(err, pflag.ErrHelp):
		return &UnrecognizedFlagError{Token: "--help"}
	default:
		return err
	}
}
