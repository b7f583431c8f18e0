package options

import "fmt"

// Sanitizer selects the compile-time instrumentation inserted into the
// fuzz target. The zero value is SanitizerAddress, the implicit default.
type Sanitizer int

const (
	// SanitizerAddress enables AddressSanitizer. It is the default and is
	// never written out when serializing.
	SanitizerAddress Sanitizer = iota

	// SanitizerLeak enables LeakSanitizer.
	SanitizerLeak

	// SanitizerMemory enables MemorySanitizer.
	SanitizerMemory

	// SanitizerThread enables ThreadSanitizer.
	SanitizerThread

	// SanitizerNone disables sanitizer instrumentation. Unlike the default
	// it must be written out explicitly as --sanitizer=none.
	SanitizerNone
)

// sanitizerNames holds the canonical names in declaration order.
var sanitizerNames = [...]string{
	SanitizerAddress: "address",
	SanitizerLeak:    "leak",
	SanitizerMemory:  "memory",
	SanitizerThread:  "thread",
	SanitizerNone:    "",
}

// String returns the name handed to the compiler's -Zsanitizer option.
// SanitizerNone has no name and yields the empty string.
func (s Sanitizer) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Sanitizer(%d)", int(s))
	}
	return sanitizerNames[s]
}

// FlagValue returns the value accepted by --sanitizer. It matches String
// except that SanitizerNone is spelled "none".
func (s Sanitizer) FlagValue() string {
	if s == SanitizerNone {
		return "none"
	}
	return s.String()
}

// IsValid reports whether s is one of the declared sanitizers.
func (s Sanitizer) IsValid() bool {
	return s >= SanitizerAddress && s <= SanitizerNone
}

// ParseSanitizer converts a --sanitizer value to a Sanitizer. Names are
// matched exactly; "ADDRESS" is not a sanitizer.
func ParseSanitizer(value string) (Sanitizer, error) {
	switch value {
	case "address":
		return SanitizerAddress, nil
	case "leak":
		return SanitizerLeak, nil
	case "memory":
		return SanitizerMemory, nil
	case "thread":
		return SanitizerThread, nil
	case "none":
		return SanitizerNone, nil
	}
	return SanitizerAddress, &MalformedValueError{
		Flag:  "--sanitizer",
		Value: value,
		Err:   fmt.Errorf("valid values: address, leak, memory, thread, none"),
	}
}

// MarshalText encodes the sanitizer by its flag value so that JSON and
// YAML renderings parse back with UnmarshalText.
func (s Sanitizer) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid sanitizer %d", int(s))
	}
	return []byte(s.FlagValue()), nil
}

// UnmarshalText decodes a flag value produced by MarshalText.
func (s *Sanitizer) UnmarshalText(text []byte) error {
	parsed, err := ParseSanitizer(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// sanitizerValue adapts a *Sanitizer to pflag.Value.
type sanitizerValue struct {
	s *Sanitizer
}

func (v sanitizerValue) String() string {
	if v.s == nil {
		return SanitizerAddress.FlagValue()
	}
	return v.s.FlagValue()
}

func (v sanitizerValue) Set(value string) error {
	parsed, err := ParseSanitizer(value)
	if err != nil {
		return err
	}
	*v.s = parsed
	return nil
}

func (v sanitizerValue) Type() string {
	return "sanitizer"
}
