// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrGeneration is the sentinel matched by every *GenerationError.
var ErrGeneration = errors.New("package generation failed")

type (
	// Generator produces the deployment package for one generation spec.
	// It must be synchronous and free of side effects visible to the batch.
	Generator interface {
		Generate(ctx context.Context, spec *structpb.Struct, strategy SharedSupportFilesStrategy) (GeneratedPackage, error)
	}

	// GeneratorFunc adapts a function to the Generator interface.
	GeneratorFunc func(ctx context.Context, spec *structpb.Struct, strategy SharedSupportFilesStrategy) (GeneratedPackage, error)

	// GenerationError reports the record whose generation aborted the batch.
	GenerationError struct {
		Index      int
		PartnerID  string
		SolutionID string
		Err        error
	}

	// Orchestrator runs the generator over a batch, one record at a time.
	Orchestrator struct {
		generator Generator
		strategy  SharedSupportFilesStrategy
		logger    *log.Logger
	}
)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, spec *structpb.Struct, strategy SharedSupportFilesStrategy) (GeneratedPackage, error) {
	return f(ctx, spec, strategy)
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate solution %d (partner %q, solution %q): %v", e.Index, e.PartnerID, e.SolutionID, e.Err)
}

// Unwrap returns the generator's error.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrGeneration.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// NewOrchestrator creates an Orchestrator that applies strategy to every
// record. A nil logger discards log output.
func NewOrchestrator(gen Generator, strategy SharedSupportFilesStrategy, logger *log.Logger) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("generator is nil")
	}
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{generator: gen, strategy: strategy, logger: logger}, nil
}

// Run generates one package per record, in order. Record i's result is
// output[i]. The first failure aborts the batch and no output is returned.
func (o *Orchestrator) Run(ctx context.Context, in BatchInput) (BatchOutput, error) {
	o.logger.Info("Generating packages", "solutions", in.Len(), "sharedSupportFiles", o.strategy)

	out := BatchOutput{Solutions: make([]SolutionOutput, 0, in.Len())}
	for i, rec := range in.Solutions {
		if err := ctx.Err(); err != nil {
			return BatchOutput{}, fmt.Errorf("batch canceled before solution %d: %w", i, err)
		}

		pkg, err := o.generator.Generate(ctx, rec.Spec, o.strategy)
		if err != nil {
			return BatchOutput{}, &GenerationError{
				Index:      i,
				PartnerID:  rec.PartnerID,
				SolutionID: rec.SolutionID,
				Err:        err,
			}
		}
		o.logger.Debug("Generated package", "partner", rec.PartnerID, "solution", rec.SolutionID, "files", len(pkg.Files))

		out.Solutions = append(out.Solutions, SolutionOutput{
			PartnerID:  rec.PartnerID,
			SolutionID: rec.SolutionID,
			Package:    pkg,
		})
	}
	return out, nil
}
