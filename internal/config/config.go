// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/internal/codec"
	"github.com/autogen/batchautogen/internal/issue"
	"github.com/autogen/batchautogen/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "batchautogen"
	// EnvPrefix prefixes every environment variable, e.g. BATCHAUTOGEN_INPUT_TYPE.
	EnvPrefix = "BATCHAUTOGEN"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// Keys lists every setting key in display order.
var Keys = []string{
	KeyMode,
	KeyInput,
	KeyOutput,
	KeyInputType,
	KeyOutputType,
	KeyIncludeSharedSupportFiles,
	KeyVerbose,
}

// ConfigDir returns the batchautogen configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ResolvePath returns the config file Load would read, or "" when none
// exists. An explicit ConfigFilePath is returned even if it does not exist.
func ResolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, nil
	}

	// Also check current directory
	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*RunConfig, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultRunConfig()
	v.SetDefault(KeyMode, string(defaults.Mode))
	v.SetDefault(KeyInput, defaults.Input)
	v.SetDefault(KeyOutput, defaults.Output)
	v.SetDefault(KeyInputType, string(defaults.InputType))
	v.SetDefault(KeyOutputType, string(defaults.OutputType))
	v.SetDefault(KeyIncludeSharedSupportFiles, defaults.IncludeSharedSupportFiles)
	v.SetDefault(KeyVerbose, defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	// A set but empty variable still counts; an empty
	// INCLUDE_SHARED_SUPPORT_FILES means INCLUDED.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	path, err := ResolvePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if opts.ConfigFilePath != "" && !fileExists(path) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'batchautogen config path' to see where the config file is looked up").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'batchautogen config dump' for a valid starting point").
				Wrap(err).
				BuildError()
		}
	}

	if opts.Flags != nil {
		for _, key := range Keys {
			if f := opts.Flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &RunConfig{
		Mode:                      batch.Mode(v.GetString(KeyMode)),
		Input:                     v.GetString(KeyInput),
		Output:                    v.GetString(KeyOutput),
		InputType:                 codec.Encoding(v.GetString(KeyInputType)),
		OutputType:                codec.Encoding(v.GetString(KeyOutputType)),
		IncludeSharedSupportFiles: v.GetString(KeyIncludeSharedSupportFiles),
		Verbose:                   v.GetBool(KeyVerbose),
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.InvalidConfigurationId).
			WithSuggestion("Names are case-sensitive: use SINGLE or MULTIPLE, and PROTOTEXT, JSON or WIRE").
			WithSuggestion("Use 'batchautogen config show' to see the effective settings").
			Wrap(err).
			BuildError()
	}

	return cfg, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// v. Every field is optional, so values need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithConcrete(false),
		cueutil.WithFilename(path),
	)
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE generates a CUE representation of the configuration that
// validates against #Config.
func GenerateCUE(cfg *RunConfig) (string, error) {
	body, err := cueutil.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return "// batchautogen configuration file\n\n" + string(body), nil
}
