// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"io"

	"github.com/autogen/batchautogen/internal/codec"

	"github.com/charmbracelet/log"
)

type (
	// PipelineConfig is the immutable per-run configuration of a Pipeline.
	PipelineConfig struct {
		Mode           Mode
		InputEncoding  codec.Encoding
		OutputEncoding codec.Encoding
		Strategy       SharedSupportFilesStrategy
		Generator      Generator
		// Logger is optional; nil discards log output.
		Logger *log.Logger
	}

	// Pipeline chains the input strategy, the orchestrator and the writer.
	Pipeline struct {
		reader        Reader
		inputEncoding codec.Encoding
		orchestrator  *Orchestrator
		writer        *Writer
	}
)

// NewPipeline validates cfg and builds the three stages.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	reader, err := NewReader(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if err := cfg.InputEncoding.Validate(); err != nil {
		return nil, err
	}
	writer, err := NewWriter(cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}
	orch, err := NewOrchestrator(cfg.Generator, cfg.Strategy, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		reader:        reader,
		inputEncoding: cfg.InputEncoding,
		orchestrator:  orch,
		writer:        writer,
	}, nil
}

// Run reads the whole input from src, generates every package and only then
// writes the encoded output to dst. On any failure nothing is written.
func (p *Pipeline) Run(ctx context.Context, src io.Reader, dst io.Writer) (BatchOutput, error) {
	in, err := p.reader.ReadInput(ctx, p.inputEncoding, src)
	if err != nil {
		return BatchOutput{}, err
	}

	out, err := p.orchestrator.Run(ctx, in)
	if err != nil {
		return BatchOutput{}, err
	}

	if err := p.writer.WriteOutput(ctx, out, dst); err != nil {
		return BatchOutput{}, err
	}
	return out, nil
}
