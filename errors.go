package fsort

import (
	"fmt"
)

// ConfigError represents a configuration value that cannot admit any work,
// such as a negative buffer size or memory budget. Sub-element positive
// budgets are clamped instead and never produce one.
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

// InputError represents input data rejected before any sort phase begins,
// such as a byte length that is not a multiple of the element size.
type InputError struct {
	// Reason explains why the input is invalid
	Reason string
	// Size is the byte size of the offending input
	Size int64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error (size: %d bytes): %s", e.Size, e.Reason)
}

// NewInputError creates an InputError
func NewInputError(reason string, size int64) error {
	return &InputError{Reason: reason, Size: size}
}

// NewDiskError creates a disk error wrapping the underlying I/O error.
// All disk errors are fatal to the current sort invocation.
func NewDiskError(err error, operation, path string) error {
	if path != "" {
		return fmt.Errorf("disk error during %s on %s: %w", operation, path, err)
	}
	return fmt.Errorf("disk error during %s: %w", operation, err)
}
