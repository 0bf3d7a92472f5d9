// SPDX-License-Identifier: MPL-2.0

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type (
	// S3Client is the subset of the S3 API used for object locations.
	S3Client interface {
		GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	// Output buffers everything written to it until Commit.
	// Close releases the output; after a Commit it is a no-op, otherwise the
	// buffered bytes are discarded.
	Output interface {
		io.Writer
		Commit(ctx context.Context) error
		Close() error
	}

	// Opener resolves Locations to readers and outputs.
	Opener struct {
		stdin     io.Reader
		stdout    io.Writer
		newClient func(context.Context) (S3Client, error)
		client    S3Client
	}

	// OpenerOption configures an Opener.
	OpenerOption func(*Opener)

	// bufferedOutput holds the bytes until commit hands them to flush.
	bufferedOutput struct {
		buf       bytes.Buffer
		flush     func(ctx context.Context, data []byte) error
		committed bool
		closed    bool
	}
)

// WithS3Client sets the S3 client instead of loading one from the default
// AWS configuration on first use.
func WithS3Client(c S3Client) OpenerOption {
	return func(o *Opener) {
		o.client = c
	}
}

// NewOpener creates an Opener that uses stdin and stdout for stdio locations.
func NewOpener(stdin io.Reader, stdout io.Writer, opts ...OpenerOption) *Opener {
	o := &Opener{
		stdin:     stdin,
		stdout:    stdout,
		newClient: defaultS3Client,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func defaultS3Client(ctx context.Context) (S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (o *Opener) s3Client(ctx context.Context) (S3Client, error) {
	if o.client == nil {
		c, err := o.newClient(ctx)
		if err != nil {
			return nil, err
		}
		o.client = c
	}
	return o.client, nil
}

// OpenInput opens loc for reading. Stdin is never closed by the returned
// reader. A missing file or object yields an error wrapping ErrNotFound.
func (o *Opener) OpenInput(ctx context.Context, loc Location) (io.ReadCloser, error) {
	switch loc.Kind {
	case KindStdio:
		return io.NopCloser(o.stdin), nil

	case KindFile:
		f, err := os.Open(loc.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil

	case KindS3:
		client, err := o.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: &loc.Bucket,
			Key:    &loc.Key,
		})
		if err != nil {
			var noKey *s3types.NoSuchKey
			if errors.As(err, &noKey) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
			}
			return nil, fmt.Errorf("get s3 object %s: %w", loc, err)
		}
		return out.Body, nil

	default:
		return nil, &InvalidLocationError{Value: loc.String(), Reason: fmt.Sprintf("unknown kind %q", loc.Kind)}
	}
}

// OpenOutput prepares loc for writing. Nothing reaches the destination until
// Commit; contentType is recorded on S3 objects.
func (o *Opener) OpenOutput(ctx context.Context, loc Location, contentType string) (Output, error) {
	switch loc.Kind {
	case KindStdio:
		return &bufferedOutput{flush: func(_ context.Context, data []byte) error {
			if _, err := o.stdout.Write(data); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			return nil
		}}, nil

	case KindFile:
		return &bufferedOutput{flush: func(_ context.Context, data []byte) error {
			return replaceFile(loc.Path, data)
		}}, nil

	case KindS3:
		client, err := o.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		return &bufferedOutput{flush: func(ctx context.Context, data []byte) error {
			size := int64(len(data))
			input := &s3.PutObjectInput{
				Bucket:        &loc.Bucket,
				Key:           &loc.Key,
				Body:          bytes.NewReader(data),
				ContentLength: &size,
			}
			if contentType != "" {
				input.ContentType = &contentType
			}
			if _, err := client.PutObject(ctx, input); err != nil {
				return fmt.Errorf("put s3 object %s: %w", loc, err)
			}
			return nil
		}}, nil

	default:
		return nil, &InvalidLocationError{Value: loc.String(), Reason: fmt.Sprintf("unknown kind %q", loc.Kind)}
	}
}

// replaceFile writes data next to path and renames it into place, so readers
// never observe a partially written output.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (b *bufferedOutput) Write(p []byte) (int, error) {
	if b.committed || b.closed {
		return 0, os.ErrClosed
	}
	return b.buf.Write(p)
}

// Commit hands the buffered bytes to the destination. It may be called once.
func (b *bufferedOutput) Commit(ctx context.Context) error {
	if b.committed || b.closed {
		return os.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b.committed = true
	return b.flush(ctx, b.buf.Bytes())
}

func (b *bufferedOutput) Close() error {
	b.closed = true
	b.buf.Reset()
	return nil
}
