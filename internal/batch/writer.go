// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/autogen/batchautogen/internal/codec"
)

// Writer serializes a complete BatchOutput in one shot.
type Writer struct {
	encoding codec.Encoding
}

// NewWriter creates a Writer for enc.
func NewWriter(enc codec.Encoding) (*Writer, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &Writer{encoding: enc}, nil
}

// Encoding returns the output encoding.
func (w *Writer) Encoding() codec.Encoding { return w.encoding }

// WriteOutput encodes out and writes it to dst with a single Write call.
// Nothing reaches dst when encoding fails.
func (w *Writer) WriteOutput(ctx context.Context, out BatchOutput, dst io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write output canceled: %w", err)
	}

	var buf bytes.Buffer
	if err := codec.Encode(w.encoding, out.Message(), &buf); err != nil {
		return err
	}
	if _, err := dst.Write(buf.Bytes()); err != nil {
		return &codec.EncodeError{Encoding: w.encoding, Err: fmt.Errorf("write output: %w", err)}
	}
	return nil
}
