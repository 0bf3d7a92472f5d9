// SPDX-License-Identifier: MPL-2.0

package storage

import (
	"errors"
	"testing"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{in: "", want: Location{Kind: KindStdio}},
		{in: "batch.textproto", want: Location{Kind: KindFile, Path: "batch.textproto"}},
		{in: "/tmp/out/batch.json", want: Location{Kind: KindFile, Path: "/tmp/out/batch.json"}},
		{in: "s3://bucket/key", want: Location{Kind: KindS3, Bucket: "bucket", Key: "key"}},
		{in: "s3://bucket/in/2024/batch.pb", want: Location{Kind: KindS3, Bucket: "bucket", Key: "in/2024/batch.pb"}},
		{in: "s3://", wantErr: true},
		{in: "s3:///key", wantErr: true},
		{in: "s3://bucket", wantErr: true},
		{in: "s3://bucket/", wantErr: true},
		{in: "s3://bucket/dir/", wantErr: true},
		{in: "gs://bucket/key", wantErr: true},
		{in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLocation(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLocation) {
					t.Fatalf("ParseLocation(%q) error = %v, want ErrInvalidLocation", tt.in, err)
				}
				var locErr *InvalidLocationError
				if !errors.As(err, &locErr) || locErr.Value != tt.in {
					t.Errorf("ParseLocation(%q) error = %#v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestLocationDescribe(t *testing.T) {
	t.Parallel()

	if got := (Location{Kind: KindStdio}).Describe("stdin"); got != "stdin" {
		t.Errorf("Describe() = %q, want stdin", got)
	}
	if got := (Location{Kind: KindS3, Bucket: "b", Key: "k"}).Describe("stdin"); got != "s3://b/k" {
		t.Errorf("Describe() = %q, want s3://b/k", got)
	}
}
