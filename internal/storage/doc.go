// SPDX-License-Identifier: MPL-2.0

// Package storage opens the input source and output destination of a batch.
//
// A location is empty (stdin or stdout), a filesystem path, or an
// s3://bucket/key object URI. Outputs are buffered and reach their destination
// only on Commit, so a failed batch leaves an existing output untouched.
package storage
