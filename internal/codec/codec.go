// SPDX-License-Identifier: MPL-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

const (
	// Text is the human-readable protobuf text format.
	Text Encoding = "PROTOTEXT"
	// JSON is the canonical protobuf JSON mapping.
	JSON Encoding = "JSON"
	// Binary is the protobuf binary wire format.
	Binary Encoding = "WIRE"
)

type (
	// Encoding selects one of the three supported representations of a
	// structured message. The string values are the names accepted on the
	// command line.
	Encoding string

	// format is the pair of pure functions implementing one Encoding.
	format struct {
		contentType string
		marshal     func(proto.Message) ([]byte, error)
		unmarshal   func([]byte, proto.Message) error
	}
)

var formats = map[Encoding]format{
	Text: {
		contentType: "text/plain; charset=utf-8",
		marshal:     prototext.MarshalOptions{Multiline: true}.Marshal,
		unmarshal:   prototext.UnmarshalOptions{}.Unmarshal,
	},
	JSON: {
		contentType: "application/json",
		marshal:     protojson.MarshalOptions{Multiline: true}.Marshal,
		unmarshal:   protojson.UnmarshalOptions{}.Unmarshal,
	},
	Binary: {
		contentType: "application/x-protobuf",
		marshal:     proto.MarshalOptions{Deterministic: true}.Marshal,
		unmarshal:   proto.UnmarshalOptions{}.Unmarshal,
	},
}

// Encodings returns every supported encoding in display order.
func Encodings() []Encoding {
	return []Encoding{Text, JSON, Binary}
}

// ParseEncoding maps a command-line content type name to an Encoding.
// Names are matched exactly (PROTOTEXT, JSON, WIRE).
func ParseEncoding(name string) (Encoding, error) {
	enc := Encoding(name)
	if err := enc.Validate(); err != nil {
		return "", err
	}
	return enc, nil
}

// Validate returns an error if the Encoding is not one of the supported values.
func (e Encoding) Validate() error {
	if _, ok := formats[e]; !ok {
		return &InvalidEncodingError{Value: e}
	}
	return nil
}

// String returns the command-line name of the Encoding.
func (e Encoding) String() string { return string(e) }

// ContentType returns the MIME type used when the encoded message is stored
// as an object.
func (e Encoding) ContentType() string {
	return formats[e].contentType
}

// Decode reads the whole stream and parses it as enc into m. Any read,
// syntax or schema error is reported as a *DecodeError.
func Decode(enc Encoding, r io.Reader, m proto.Message) error {
	f, ok := formats[enc]
	if !ok {
		return &DecodeError{Encoding: enc, Err: &InvalidEncodingError{Value: enc}}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return &DecodeError{Encoding: enc, Err: fmt.Errorf("read input: %w", err)}
	}
	if err := f.unmarshal(data, m); err != nil {
		return &DecodeError{Encoding: enc, Err: err}
	}
	return nil
}

// Encode writes a complete, self-contained representation of m to w.
// It does not close w. The message is fully marshaled before the single
// write, so a marshal failure leaves w untouched.
func Encode(enc Encoding, m proto.Message, w io.Writer) error {
	f, ok := formats[enc]
	if !ok {
		return &EncodeError{Encoding: enc, Err: &InvalidEncodingError{Value: enc}}
	}

	data, err := f.marshal(m)
	if err != nil {
		return &EncodeError{Encoding: enc, Err: err}
	}
	if enc == Text && len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return &EncodeError{Encoding: enc, Err: fmt.Errorf("write output: %w", err)}
	}
	return nil
}
