// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/internal/config"
	"github.com/autogen/batchautogen/internal/generator"
	"github.com/autogen/batchautogen/internal/storage"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: command handlers receive an App and delegate
	// through its service interfaces.
	App struct {
		Config  ConfigProvider
		Batches BatchService
		stdout  io.Writer
		stderr  io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Generator and
	// Storage are only used to build the default BatchService.
	Dependencies struct {
		Config    ConfigProvider
		Batches   BatchService
		Generator batch.Generator
		Storage   StorageOpener
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.RunConfig, error)
	}

	// StorageOpener opens the input and output locations of a run.
	StorageOpener interface {
		OpenInput(ctx context.Context, loc storage.Location) (io.ReadCloser, error)
		OpenOutput(ctx context.Context, loc storage.Location, contentType string) (storage.Output, error)
	}

	// RunRequest is the immutable input of one batch run.
	RunRequest struct {
		Config *config.RunConfig
		// Logger receives progress messages; nil discards them.
		Logger *log.Logger
	}

	// RunResult summarizes a successful run.
	RunResult struct {
		Solutions int
		Output    storage.Location
	}

	// BatchService runs one batch end to end. Implementations must not
	// write diagnostics to stdout; errors are returned for the CLI to render.
	BatchService interface {
		Run(ctx context.Context, req RunRequest) (RunResult, error)
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Batches == nil {
		if deps.Generator == nil {
			deps.Generator = generator.New()
		}
		if deps.Storage == nil {
			deps.Storage = storage.NewOpener(deps.Stdin, deps.Stdout)
		}
		deps.Batches = newBatchService(deps.Generator, deps.Storage)
	}

	return &App{
		Config:  deps.Config,
		Batches: deps.Batches,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}, nil
}

// newLogger returns the stderr logger of one invocation, tagged with its run ID.
func newLogger(w io.Writer, verbose bool, runID string) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	return logger.With("run", runID)
}
