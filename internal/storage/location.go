// SPDX-License-Identifier: MPL-2.0

package storage

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindStdio reads stdin or writes stdout.
	KindStdio Kind = "stdio"
	// KindFile is a filesystem path.
	KindFile Kind = "file"
	// KindS3 is an S3 object.
	KindS3 Kind = "s3"

	s3Scheme = "s3://"
)

var (
	// ErrInvalidLocation is returned when a location string cannot be parsed.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrNotFound is returned when an input file or object does not exist.
	ErrNotFound = errors.New("location not found")
)

type (
	// Kind tells which backend serves a Location.
	Kind string

	// Location is a parsed input or output setting.
	Location struct {
		Kind Kind
		// Path is set for KindFile.
		Path string
		// Bucket and Key are set for KindS3.
		Bucket string
		Key    string
	}

	// InvalidLocationError is returned when a location string cannot be parsed.
	// It wraps ErrInvalidLocation for errors.Is() compatibility.
	InvalidLocationError struct {
		Value  string
		Reason string
	}
)

// ParseLocation parses an input or output setting. The empty string selects
// stdio.
func ParseLocation(s string) (Location, error) {
	if s == "" {
		return Location{Kind: KindStdio}, nil
	}

	if rest, ok := strings.CutPrefix(s, s3Scheme); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		switch {
		case bucket == "":
			return Location{}, &InvalidLocationError{Value: s, Reason: "missing bucket"}
		case key == "":
			return Location{}, &InvalidLocationError{Value: s, Reason: "missing object key"}
		case strings.HasSuffix(key, "/"):
			return Location{}, &InvalidLocationError{Value: s, Reason: "object key must not end with /"}
		}
		return Location{Kind: KindS3, Bucket: bucket, Key: key}, nil
	}

	if scheme, _, ok := strings.Cut(s, "://"); ok {
		return Location{}, &InvalidLocationError{Value: s, Reason: fmt.Sprintf("unsupported scheme %q", scheme)}
	}
	if strings.TrimSpace(s) == "" {
		return Location{}, &InvalidLocationError{Value: s, Reason: "whitespace-only path"}
	}
	return Location{Kind: KindFile, Path: s}, nil
}

// String returns the setting the location was parsed from.
func (l Location) String() string {
	switch l.Kind {
	case KindFile:
		return l.Path
	case KindS3:
		return s3Scheme + l.Bucket + "/" + l.Key
	default:
		return ""
	}
}

// Describe names the location for messages, using stdin or stdout for stdio.
func (l Location) Describe(stdio string) string {
	if l.Kind == KindStdio {
		return stdio
	}
	return l.String()
}

// Error implements the error interface.
func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid location %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidLocation for errors.Is() compatibility.
func (e *InvalidLocationError) Unwrap() error { return ErrInvalidLocation }
