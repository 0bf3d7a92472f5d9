// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for batchautogen.
//
// The root command runs one batch: it resolves the run configuration, opens
// the input and output locations, and drives the batch pipeline. The config
// subcommands inspect the resolved configuration.
package cmd
