// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/internal/codec"
	"github.com/autogen/batchautogen/internal/storage"
)

// Keys of the settings, shared by flags, environment variables and the config file.
const (
	KeyMode                      = "mode"
	KeyInput                     = "input"
	KeyOutput                    = "output"
	KeyInputType                 = "input_type"
	KeyOutputType                = "output_type"
	KeyIncludeSharedSupportFiles = "include_shared_support_files"
	KeyVerbose                   = "verbose"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// RunConfig is the resolved configuration of one invocation. It is built
	// once and not modified afterwards.
	RunConfig struct {
		Mode       batch.Mode     `json:"mode" mapstructure:"mode"`
		Input      string         `json:"input" mapstructure:"input"`
		Output     string         `json:"output" mapstructure:"output"`
		InputType  codec.Encoding `json:"input_type" mapstructure:"input_type"`
		OutputType codec.Encoding `json:"output_type" mapstructure:"output_type"`
		// IncludeSharedSupportFiles keeps the raw setting; see Strategy.
		IncludeSharedSupportFiles string `json:"include_shared_support_files" mapstructure:"include_shared_support_files"`
		Verbose                   bool   `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a RunConfig has invalid fields.
	// It wraps ErrInvalidConfig and every field error for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidLoadOptionsError is returned when LoadOptions has invalid fields.
	// It wraps ErrInvalidLoadOptions for errors.Is() compatibility.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// DefaultRunConfig returns the settings used when nothing else is configured.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Mode:                      batch.ModeMultiple,
		Input:                     "",
		Output:                    "",
		InputType:                 codec.Text,
		OutputType:                codec.Text,
		IncludeSharedSupportFiles: "false",
		Verbose:                   false,
	}
}

// Validate checks every field and reports all failures at once.
func (c RunConfig) Validate() error {
	var errs []error
	if _, err := batch.ParseMode(string(c.Mode)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyMode, err))
	}
	if _, err := codec.ParseEncoding(string(c.InputType)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyInputType, err))
	}
	if _, err := codec.ParseEncoding(string(c.OutputType)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyOutputType, err))
	}
	if _, err := storage.ParseLocation(c.Input); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyInput, err))
	}
	if _, err := storage.ParseLocation(c.Output); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyOutput, err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Strategy derives the shared support files policy from the raw setting.
func (c RunConfig) Strategy() batch.SharedSupportFilesStrategy {
	return batch.StrategyFromFlag(c.IncludeSharedSupportFiles)
}

// InputLocation parses Input.
func (c RunConfig) InputLocation() (storage.Location, error) {
	return storage.ParseLocation(c.Input)
}

// OutputLocation parses Output.
func (c RunConfig) OutputLocation() (storage.Location, error) {
	return storage.ParseLocation(c.Output)
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
