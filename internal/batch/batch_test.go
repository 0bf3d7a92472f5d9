// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

// recordingGenerator returns one file named after the spec's "name" and
// remembers every strategy it was called with.
type recordingGenerator struct {
	strategies []SharedSupportFilesStrategy
	failAt     int
	calls      int
}

func newRecordingGenerator() *recordingGenerator {
	return &recordingGenerator{failAt: -1}
}

func (g *recordingGenerator) Generate(_ context.Context, spec *structpb.Struct, strategy SharedSupportFilesStrategy) (GeneratedPackage, error) {
	defer func() { g.calls++ }()
	g.strategies = append(g.strategies, strategy)
	if g.calls == g.failAt {
		return GeneratedPackage{}, errors.New("spec rejected")
	}

	name := "unnamed"
	if spec != nil {
		if v, ok := spec.GetFields()["name"]; ok {
			name = v.GetStringValue()
		}
	}
	return GeneratedPackage{Files: []File{{Path: name + ".cue", Content: []byte(name)}}}, nil
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return s
}

func makeBatch(t *testing.T, n int) BatchInput {
	t.Helper()

	in := BatchInput{}
	for i := range n {
		in.Solutions = append(in.Solutions, InputRecord{
			PartnerID:  fmt.Sprintf("partner-%d", i),
			SolutionID: fmt.Sprintf("solution-%d", i),
			Spec:       mustStruct(t, map[string]any{"name": fmt.Sprintf("sol%d", i)}),
		})
	}
	return in
}
