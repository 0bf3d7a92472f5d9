// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/autogen/batchautogen/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + e.Code.String()
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf maps an error returned by the command tree to the process exit
// code. An ExitError always fails the process; a zero or out-of-range code
// becomes ExitFailure.
func exitCodeOf(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.IsSuccess() || exitErr.Code.Validate() != nil {
			return types.ExitFailure
		}
		return exitErr.Code
	}
	return types.FromError(err)
}
