// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// Format renders a concrete CUE value as CUE source. A struct value is
// written as top-level fields, without enclosing braces.
func Format(v cue.Value) ([]byte, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	node := v.Syntax(cue.Final(), cue.Concrete(true))
	if lit, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: lit.Elts}
	}

	out, err := format.Node(node, format.Simplify())
	if err != nil {
		return nil, fmt.Errorf("format CUE: %w", err)
	}
	return out, nil
}

// Marshal encodes a Go value (struct fields named by their json tags, map
// keys sorted) and renders it with Format.
func Marshal(x any) ([]byte, error) {
	v := cuecontext.New().Encode(x)
	if v.Err() != nil {
		return nil, fmt.Errorf("encode CUE: %w", v.Err())
	}
	return Format(v)
}
