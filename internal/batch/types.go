// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ModeSingle reads exactly one DeploymentPackageInput and wraps it.
	ModeSingle Mode = "SINGLE"
	// ModeMultiple reads a BatchInput envelope as-is.
	ModeMultiple Mode = "MULTIPLE"

	// SharedSupportFilesIncluded asks the generator to embed the shared
	// support files in every package.
	SharedSupportFilesIncluded SharedSupportFilesStrategy = "INCLUDED"
	// SharedSupportFilesExcluded asks the generator to leave them out so
	// they can be symlinked from a shared location.
	SharedSupportFilesExcluded SharedSupportFilesStrategy = "EXCLUDED"
)

var (
	// ErrInvalidMode is returned when a Mode value is not recognized.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidStrategy is returned when a SharedSupportFilesStrategy value is not recognized.
	ErrInvalidStrategy = errors.New("invalid shared support files strategy")
)

type (
	// Mode selects how the input stream is shaped.
	Mode string

	// InvalidModeError is returned when a Mode value is not recognized.
	// It wraps ErrInvalidMode for errors.Is() compatibility.
	InvalidModeError struct {
		Value Mode
	}

	// SharedSupportFilesStrategy is the batch-wide policy passed to every
	// generator call.
	SharedSupportFilesStrategy string

	// InvalidStrategyError is returned when a SharedSupportFilesStrategy value is not recognized.
	// It wraps ErrInvalidStrategy for errors.Is() compatibility.
	InvalidStrategyError struct {
		Value SharedSupportFilesStrategy
	}
)

// ParseMode maps a command-line mode name to a Mode. Names are matched exactly.
func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns an error if the Mode is not SINGLE or MULTIPLE.
func (m Mode) Validate() error {
	switch m {
	case ModeSingle, ModeMultiple:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// String returns the command-line name of the Mode.
func (m Mode) String() string { return string(m) }

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q (valid: %s, %s)", e.Value, ModeSingle, ModeMultiple)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// StrategyFromFlag derives the strategy from the include_shared_support_files
// value: an empty value or "true" (any case) includes the files, anything
// else excludes them.
func StrategyFromFlag(value string) SharedSupportFilesStrategy {
	if value == "" || strings.EqualFold(value, "true") {
		return SharedSupportFilesIncluded
	}
	return SharedSupportFilesExcluded
}

// Validate returns an error if the strategy is not INCLUDED or EXCLUDED.
func (s SharedSupportFilesStrategy) Validate() error {
	switch s {
	case SharedSupportFilesIncluded, SharedSupportFilesExcluded:
		return nil
	default:
		return &InvalidStrategyError{Value: s}
	}
}

// Included reports whether shared support files go into each package.
func (s SharedSupportFilesStrategy) Included() bool { return s == SharedSupportFilesIncluded }

// String returns the strategy name.
func (s SharedSupportFilesStrategy) String() string { return string(s) }

// Error implements the error interface.
func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid shared support files strategy %q (valid: %s, %s)",
		e.Value, SharedSupportFilesIncluded, SharedSupportFilesExcluded)
}

// Unwrap returns ErrInvalidStrategy for errors.Is() compatibility.
func (e *InvalidStrategyError) Unwrap() error { return ErrInvalidStrategy }
