// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/autogen/batchautogen/internal/config"
	"github.com/autogen/batchautogen/pkg/types"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newConfigCommand creates the `batchautogen config` command tree.
// Subcommands that read configuration use the App's ConfigProvider and see
// the same flags as a batch run.
func newConfigCommand(app *App, cfgFile *string) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect batchautogen configuration",
		Long: `Inspect batchautogen configuration.

Settings are resolved from flags, BATCHAUTOGEN_* environment variables,
the config file and built-in defaults, in that order. The config file is
looked up in:
  - Linux: ~/.config/batchautogen/config.cue
  - macOS: ~/Library/Application Support/batchautogen/config.cue
  - Windows: %APPDATA%\batchautogen\config.cue
  - ./config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, loadOptions(cmd.Flags(), *cfgFile))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app.stdout, loadOptions(cmd.Flags(), *cfgFile))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), loadOptions(cmd.Flags(), *cfgFile))
			if err != nil {
				return failRun(app, err, verboseFlag(cmd.Flags()))
			}

			cueContent, err := config.GenerateCUE(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, cueContent)
			return nil
		},
	})

	return cfgCmd
}

func loadOptions(flags *pflag.FlagSet, cfgFile string) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: cfgFile, Flags: flags}
}

func verboseFlag(flags *pflag.FlagSet) bool {
	v, _ := flags.GetBool(config.KeyVerbose)
	return v
}

func showConfig(ctx context.Context, app *App, opts config.LoadOptions) error {
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		return failRun(app, err, verboseFlag(opts.Flags))
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if path, pathErr := config.ResolvePath(opts); pathErr == nil && path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	location := func(v, stdio string) string {
		if v == "" {
			return SubtitleStyle.Render("(" + stdio + ")")
		}
		return valueStyle.Render(v)
	}

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyMode), valueStyle.Render(cfg.Mode.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyInput), location(cfg.Input, "stdin"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyOutput), location(cfg.Output, "stdout"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyInputType), valueStyle.Render(cfg.InputType.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyOutputType), valueStyle.Render(cfg.OutputType.String()))
	fmt.Fprintf(out, "%s: %s %s\n", keyStyle.Render(config.KeyIncludeSharedSupportFiles),
		valueStyle.Render(cfg.Strategy().String()), VerboseStyle.Render(strconv.Quote(cfg.IncludeSharedSupportFiles)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(config.KeyVerbose), valueStyle.Render(strconv.FormatBool(cfg.Verbose)))

	return nil
}

func showConfigPath(w io.Writer, opts config.LoadOptions) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)

	path, err := config.ResolvePath(opts)
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	if path == "" {
		fmt.Fprintf(w, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
		return nil
	}
	fmt.Fprintf(w, "Config file: %s\n", path)
	return nil
}
