// SPDX-License-Identifier: MPL-2.0

// Package config resolves the run configuration using Viper with CUE as the file format.
//
// Values come from command-line flags, BATCHAUTOGEN_* environment variables,
// a config.cue file and built-in defaults, in that order of precedence. The
// file is looked up in the --config path, then ~/.config/batchautogen/config.cue
// (or the platform equivalent), then ./config.cue. It is validated against the
// embedded config_schema.cue before it is merged.
package config
