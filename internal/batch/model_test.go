// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"io"
	"testing"

	"github.com/autogen/batchautogen/internal/codec"
	"github.com/autogen/batchautogen/internal/schema"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// recordMessage converts rec to a DeploymentPackageInput message.
func recordMessage(t *testing.T, rec InputRecord) *dynamicpb.Message {
	t.Helper()

	md := schema.DeploymentPackageInput
	m := schema.New(md)
	setString(m, schema.Field(md, schema.FieldPartnerID), rec.PartnerID)
	setString(m, schema.Field(md, schema.FieldSolutionID), rec.SolutionID)
	if rec.Spec != nil {
		b, err := proto.Marshal(rec.Spec)
		if err != nil {
			t.Fatalf("marshal spec: %v", err)
		}
		dst := m.Mutable(schema.Field(md, schema.FieldSpec)).Message().Interface()
		if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(b, dst); err != nil {
			t.Fatalf("unmarshal spec: %v", err)
		}
	}
	return m
}

// readOutput decodes a BatchOutput written with enc.
func readOutput(enc codec.Encoding, r io.Reader) (BatchOutput, error) {
	m := schema.New(schema.BatchOutput)
	if err := codec.Decode(enc, r, m); err != nil {
		return BatchOutput{}, err
	}
	return batchOutputFromMessage(m), nil
}

func batchOutputFromMessage(m protoreflect.Message) BatchOutput {
	list := m.Get(schema.Field(schema.BatchOutput, schema.FieldSolutions)).List()
	sd := schema.BatchOutputSolution
	fd := schema.SolutionPackageFile

	out := BatchOutput{Solutions: make([]SolutionOutput, 0, list.Len())}
	for i := range list.Len() {
		sm := list.Get(i).Message()
		s := SolutionOutput{
			PartnerID:  sm.Get(schema.Field(sd, schema.FieldPartnerID)).String(),
			SolutionID: sm.Get(schema.Field(sd, schema.FieldSolutionID)).String(),
		}
		files := sm.Get(schema.Field(sd, schema.FieldPackage)).Message().
			Get(schema.Field(schema.SolutionPackage, schema.FieldFiles)).List()
		for j := range files.Len() {
			fm := files.Get(j).Message()
			s.Package.Files = append(s.Package.Files, File{
				Path:    fm.Get(schema.Field(fd, schema.FieldPath)).String(),
				Content: fm.Get(schema.Field(fd, schema.FieldContent)).Bytes(),
			})
		}
		out.Solutions = append(out.Solutions, s)
	}
	return out
}
