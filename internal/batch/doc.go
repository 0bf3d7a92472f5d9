// SPDX-License-Identifier: MPL-2.0

// Package batch implements the format-agnostic batch I/O and dispatch layer.
//
// A run has three stages, executed strictly in sequence:
//
//  1. A Reader (SingleReader or MultipleReader, chosen from the Mode) decodes
//     the source stream into a BatchInput.
//  2. The Orchestrator calls the Generator once per record, in order, with the
//     batch-wide SharedSupportFilesStrategy. The first failure aborts the batch.
//  3. The Writer encodes the complete BatchOutput and writes it in one call.
//
// Pipeline wires the three stages together from a PipelineConfig.
package batch
