// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/internal/codec"
	"github.com/autogen/batchautogen/internal/config"
	"github.com/autogen/batchautogen/internal/issue"
	"github.com/autogen/batchautogen/internal/storage"
)

// classifyRunError maps a failed run to an issue catalog ID. A catalog
// entry attached to the outermost ActionableError wins over the error kind.
func classifyRunError(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if entry := ae.CatalogIssue(); entry != nil {
			return entry.Id()
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return issue.InterruptedId
	case errors.Is(err, storage.ErrNotFound):
		return issue.InputNotFoundId
	case errors.Is(err, codec.ErrDecode):
		return issue.DecodeFailedId
	case errors.Is(err, codec.ErrEncode):
		return issue.EncodeFailedId
	case errors.Is(err, batch.ErrGeneration):
		return issue.GenerationFailedId
	case isConfigurationError(err):
		return issue.InvalidConfigurationId
	default:
		return 0
	}
}

func isConfigurationError(err error) bool {
	for _, target := range []error{
		batch.ErrInvalidMode,
		batch.ErrInvalidStrategy,
		codec.ErrInvalidEncoding,
		config.ErrInvalidConfig,
		config.ErrInvalidLoadOptions,
		storage.ErrInvalidLocation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// newRunServiceError classifies err and pre-renders its details. The error
// message itself is printed by fang once the command returns.
func newRunServiceError(err error, verbose bool) *ServiceError {
	return newServiceError(err, classifyRunError(err), formatErrorDetails(err, verbose))
}

// formatErrorDetails lists the suggestions of an ActionableError in the chain.
// In verbose mode it adds the full error chain.
func formatErrorDetails(err error, verbose bool) string {
	var b strings.Builder

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.HasSuggestions() {
		b.WriteString(WarningStyle.Render("Suggestions:") + "\n")
		for _, s := range ae.Suggestions {
			fmt.Fprintf(&b, "  • %s\n", s)
		}
	}

	if verbose {
		b.WriteString(VerboseStyle.Render("Error chain:") + "\n")
		for depth, e := 1, err; e != nil; depth, e = depth+1, errors.Unwrap(e) {
			fmt.Fprintf(&b, "  %d. %s\n", depth, e.Error())
		}
	}

	return b.String()
}
