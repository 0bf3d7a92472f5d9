// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/autogen/batchautogen/internal/codec"
	"github.com/autogen/batchautogen/internal/schema"
)

type (
	// Reader produces a BatchInput from exactly one source stream.
	// Any decode failure aborts the whole read; no partial batch is returned.
	Reader interface {
		ReadInput(ctx context.Context, enc codec.Encoding, r io.Reader) (BatchInput, error)
	}

	// SingleReader reads one DeploymentPackageInput and wraps it as a batch of one.
	SingleReader struct{}

	// MultipleReader reads a BatchInput envelope directly.
	MultipleReader struct{}
)

// NewReader returns the reader for mode. The choice is made once per run.
func NewReader(mode Mode) (Reader, error) {
	switch mode {
	case ModeSingle:
		return SingleReader{}, nil
	case ModeMultiple:
		return MultipleReader{}, nil
	default:
		return nil, &InvalidModeError{Value: mode}
	}
}

// ReadInput implements Reader.
func (SingleReader) ReadInput(ctx context.Context, enc codec.Encoding, r io.Reader) (BatchInput, error) {
	if err := ctx.Err(); err != nil {
		return BatchInput{}, fmt.Errorf("read input canceled: %w", err)
	}

	m := schema.New(schema.DeploymentPackageInput)
	if err := codec.Decode(enc, r, m); err != nil {
		return BatchInput{}, err
	}
	rec, err := inputRecordFromMessage(m)
	if err != nil {
		return BatchInput{}, &codec.DecodeError{Encoding: enc, Err: err}
	}
	return BatchInput{Solutions: []InputRecord{rec}}, nil
}

// ReadInput implements Reader.
func (MultipleReader) ReadInput(ctx context.Context, enc codec.Encoding, r io.Reader) (BatchInput, error) {
	if err := ctx.Err(); err != nil {
		return BatchInput{}, fmt.Errorf("read input canceled: %w", err)
	}

	m := schema.New(schema.BatchInput)
	if err := codec.Decode(enc, r, m); err != nil {
		return BatchInput{}, err
	}
	in, err := batchInputFromMessage(m)
	if err != nil {
		return BatchInput{}, &codec.DecodeError{Encoding: enc, Err: err}
	}
	return in, nil
}
