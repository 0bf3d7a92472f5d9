// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing and rendering utilities.
//
// ParseAndDecode runs the 3-step parsing flow used by the generator:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go value
//
// # Usage
//
//	//go:embed schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schemaBytes,
//	    specJSON,
//	    "#Spec",
//	    cueutil.WithFilename("spec"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//
// Format and Marshal turn concrete values back into CUE source.
package cueutil
