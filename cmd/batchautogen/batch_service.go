// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/internal/issue"
	"github.com/autogen/batchautogen/internal/storage"

	"github.com/charmbracelet/log"
)

// batchService opens the configured locations and runs the pipeline between
// them. The output is committed only after the whole batch succeeded.
type batchService struct {
	generator batch.Generator
	storage   StorageOpener
}

func newBatchService(gen batch.Generator, opener StorageOpener) *batchService {
	return &batchService{generator: gen, storage: opener}
}

// Run implements BatchService.
func (s *batchService) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	cfg := req.Config
	logger := req.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	inLoc, err := cfg.InputLocation()
	if err != nil {
		return RunResult{}, err
	}
	outLoc, err := cfg.OutputLocation()
	if err != nil {
		return RunResult{}, err
	}

	pipeline, err := batch.NewPipeline(batch.PipelineConfig{
		Mode:           cfg.Mode,
		InputEncoding:  cfg.InputType,
		OutputEncoding: cfg.OutputType,
		Strategy:       cfg.Strategy(),
		Generator:      s.generator,
		Logger:         logger,
	})
	if err != nil {
		return RunResult{}, err
	}

	logger.Debug("Opening input", "location", inLoc.Describe("stdin"), "mode", cfg.Mode, "encoding", cfg.InputType)
	src, err := s.storage.OpenInput(ctx, inLoc)
	if err != nil {
		return RunResult{}, storageError(err, "open input", inLoc.Describe("stdin"))
	}
	defer src.Close()

	dst, err := s.storage.OpenOutput(ctx, outLoc, cfg.OutputType.ContentType())
	if err != nil {
		return RunResult{}, storageError(err, "open output", outLoc.Describe("stdout"))
	}
	defer dst.Close()

	out, err := pipeline.Run(ctx, src, dst)
	if err != nil {
		return RunResult{}, issue.WrapWithContext(err, "generate batch", inLoc.Describe("stdin"))
	}

	if err := dst.Commit(ctx); err != nil {
		return RunResult{}, storageError(err, "write output", outLoc.Describe("stdout"))
	}
	logger.Debug("Output written", "location", outLoc.Describe("stdout"), "encoding", cfg.OutputType, "solutions", out.Len())

	return RunResult{Solutions: out.Len(), Output: outLoc}, nil
}

func storageError(err error, operation, resource string) error {
	ec := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		Wrap(err)
	if errors.Is(err, storage.ErrNotFound) {
		return ec.WithIssue(issue.InputNotFoundId).
			WithSuggestion("Check the --input path, or leave it empty to read stdin").
			BuildError()
	}
	return ec.WithIssue(issue.StorageFailedId).
		WithSuggestions(
			"Check permissions on the local path",
			"For s3:// locations, check the AWS credentials and the bucket region",
		).
		BuildError()
}
