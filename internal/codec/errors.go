// SPDX-License-Identifier: MPL-2.0

package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDecode is the sentinel matched by every *DecodeError.
	ErrDecode = errors.New("decode failed")
	// ErrEncode is the sentinel matched by every *EncodeError.
	ErrEncode = errors.New("encode failed")
	// ErrInvalidEncoding is returned when an encoding name is not recognized.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

type (
	// DecodeError reports a stream that does not parse as the selected
	// encoding or does not match the target message structure.
	DecodeError struct {
		Encoding Encoding
		Err      error
	}

	// EncodeError reports a message that could not be represented in the
	// selected encoding, or a failed write of the encoded bytes.
	EncodeError struct {
		Encoding Encoding
		Err      error
	}

	// InvalidEncodingError is returned when an Encoding value is not recognized.
	// It wraps ErrInvalidEncoding for errors.Is() compatibility.
	InvalidEncodingError struct {
		Value Encoding
	}
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s input: %v", e.Encoding, e.Err)
}

// Unwrap returns the underlying parse or read error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s output: %v", e.Encoding, e.Err)
}

// Unwrap returns the underlying marshal or write error.
func (e *EncodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEncode.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// Error implements the error interface.
func (e *InvalidEncodingError) Error() string {
	names := make([]string, 0, len(formats))
	for _, enc := range Encodings() {
		names = append(names, enc.String())
	}
	return fmt.Sprintf("invalid encoding %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidEncoding for errors.Is() compatibility.
func (e *InvalidEncodingError) Unwrap() error { return ErrInvalidEncoding }
