// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/autogen/batchautogen/internal/config"
	"github.com/autogen/batchautogen/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand creates the root command. Running it without a subcommand
// processes one batch.
func newRootCommand(app *App) *cobra.Command {
	var cfgFile string

	defaults := config.DefaultRunConfig()

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Generate deployment packages for a batch of solutions",
		Long: TitleStyle.Render(config.AppName) + SubtitleStyle.Render(" - Generate deployment packages for a batch of solutions") + `

Reads one solution (SINGLE) or a batch envelope (MULTIPLE) encoded as
protobuf text, JSON or binary wire format, generates the deployment
package of every solution in order, and writes all packages at once.
Nothing is written unless the whole batch succeeds.

` + SubtitleStyle.Render("Examples:") + `
  batchautogen --mode SINGLE --output_type JSON < solution.txtpb
  batchautogen --input batch.bin --input_type WIRE --output out.txtpb
  batchautogen --input s3://bucket/in.json --input_type JSON --include_shared_support_files
  batchautogen config show`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, app, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyMode, string(defaults.Mode), "input mode: SINGLE or MULTIPLE")
	flags.String(config.KeyInput, defaults.Input, "input file or s3://bucket/key (default stdin)")
	flags.String(config.KeyOutput, defaults.Output, "output file or s3://bucket/key (default stdout)")
	flags.String(config.KeyInputType, string(defaults.InputType), "input encoding: PROTOTEXT, JSON or WIRE")
	flags.String(config.KeyOutputType, string(defaults.OutputType), "output encoding: PROTOTEXT, JSON or WIRE")
	flags.String(config.KeyIncludeSharedSupportFiles, defaults.IncludeSharedSupportFiles, "include the shared support files in every package")
	flags.Lookup(config.KeyIncludeSharedSupportFiles).NoOptDefVal = "true"
	flags.BoolP(config.KeyVerbose, "v", defaults.Verbose, "enable verbose output")
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/batchautogen/config.cue)")

	rootCmd.AddCommand(newConfigCommand(app, &cfgFile))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// runBatch loads the configuration from the command's flags and runs one
// batch. The guidance for a failure is rendered here; the error itself is
// returned inside an ExitError.
func runBatch(cmd *cobra.Command, app *App, cfgFile string) error {
	ctx := cmd.Context()
	verbose, _ := cmd.Flags().GetBool(config.KeyVerbose)

	cfg, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
		Flags:          cmd.Flags(),
	})
	if err != nil {
		return failRun(app, err, verbose)
	}

	logger := newLogger(app.stderr, cfg.Verbose, uuid.NewString())
	logger.Debug("Configuration resolved",
		config.KeyMode, cfg.Mode,
		config.KeyInputType, cfg.InputType,
		config.KeyOutputType, cfg.OutputType,
		config.KeyIncludeSharedSupportFiles, cfg.Strategy(),
	)

	result, err := app.Batches.Run(ctx, RunRequest{Config: cfg, Logger: logger})
	if err != nil {
		logger.Debug("Batch failed", "error", err)
		return failRun(app, err, cfg.Verbose)
	}

	logger.Info("Batch complete", "solutions", result.Solutions, "output", result.Output.Describe("stdout"))
	return nil
}

func failRun(app *App, err error, verbose bool) error {
	renderServiceError(app.stderr, newRunServiceError(err, verbose))
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// Main runs the CLI with the process arguments and returns the exit code.
func Main() int {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		return int(types.ExitFailure)
	}

	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		return int(exitCodeOf(err))
	}
	return int(types.ExitSuccess)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}
