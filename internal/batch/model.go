// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"fmt"

	"github.com/autogen/batchautogen/internal/schema"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/structpb"
)

type (
	// InputRecord is one deployment package request. It is never modified
	// after it has been read; Spec must be treated as read-only.
	InputRecord struct {
		PartnerID  string
		SolutionID string
		// Spec is the opaque generation configuration handed to the generator.
		// It is nil when the input did not carry one.
		Spec *structpb.Struct
	}

	// BatchInput is the ordered sequence of records read from one source.
	// Its order drives the output order.
	BatchInput struct {
		Solutions []InputRecord
	}

	// File is one generated file of a package.
	File struct {
		Path    string
		Content []byte
	}

	// GeneratedPackage is the generator output for one record.
	GeneratedPackage struct {
		Files []File
	}

	// SolutionOutput pairs a generated package with the IDs of the record
	// that produced it.
	SolutionOutput struct {
		PartnerID  string
		SolutionID string
		Package    GeneratedPackage
	}

	// BatchOutput holds one SolutionOutput per input record, in input order.
	BatchOutput struct {
		Solutions []SolutionOutput
	}
)

// Len returns the number of records in the batch.
func (b BatchInput) Len() int { return len(b.Solutions) }

// Len returns the number of solutions in the output.
func (b BatchOutput) Len() int { return len(b.Solutions) }

// inputRecordFromMessage converts a DeploymentPackageInput message.
func inputRecordFromMessage(m protoreflect.Message) (InputRecord, error) {
	md := schema.DeploymentPackageInput
	rec := InputRecord{
		PartnerID:  m.Get(schema.Field(md, schema.FieldPartnerID)).String(),
		SolutionID: m.Get(schema.Field(md, schema.FieldSolutionID)).String(),
	}

	specField := schema.Field(md, schema.FieldSpec)
	if m.Has(specField) {
		spec, err := toStruct(m.Get(specField).Message())
		if err != nil {
			return InputRecord{}, fmt.Errorf("read spec of %s/%s: %w", rec.PartnerID, rec.SolutionID, err)
		}
		rec.Spec = spec
	}
	return rec, nil
}

// batchInputFromMessage converts a BatchInput envelope message.
func batchInputFromMessage(m protoreflect.Message) (BatchInput, error) {
	list := m.Get(schema.Field(schema.BatchInput, schema.FieldSolutions)).List()
	in := BatchInput{Solutions: make([]InputRecord, 0, list.Len())}
	for i := range list.Len() {
		rec, err := inputRecordFromMessage(list.Get(i).Message())
		if err != nil {
			return BatchInput{}, fmt.Errorf("solutions[%d]: %w", i, err)
		}
		in.Solutions = append(in.Solutions, rec)
	}
	return in, nil
}

// Message converts the output to a BatchOutput envelope message.
func (b BatchOutput) Message() *dynamicpb.Message {
	out := schema.New(schema.BatchOutput)
	solutions := out.Mutable(schema.Field(schema.BatchOutput, schema.FieldSolutions)).List()

	sd := schema.BatchOutputSolution
	for _, s := range b.Solutions {
		sm := schema.New(sd)
		setString(sm, schema.Field(sd, schema.FieldPartnerID), s.PartnerID)
		setString(sm, schema.Field(sd, schema.FieldSolutionID), s.SolutionID)
		s.Package.fill(sm.Mutable(schema.Field(sd, schema.FieldPackage)).Message())
		solutions.Append(protoreflect.ValueOfMessage(sm))
	}
	return out
}

// fill writes the package files into a SolutionPackage message.
func (p GeneratedPackage) fill(m protoreflect.Message) {
	fd := schema.SolutionPackageFile
	files := m.Mutable(schema.Field(schema.SolutionPackage, schema.FieldFiles)).List()
	for _, f := range p.Files {
		fm := files.NewElement().Message()
		setString(fm, schema.Field(fd, schema.FieldPath), f.Path)
		if len(f.Content) > 0 {
			fm.Set(schema.Field(fd, schema.FieldContent), protoreflect.ValueOfBytes(f.Content))
		}
		files.Append(protoreflect.ValueOfMessage(fm))
	}
}

func setString(m protoreflect.Message, fd protoreflect.FieldDescriptor, v string) {
	if v != "" {
		m.Set(fd, protoreflect.ValueOfString(v))
	}
}

// toStruct copies a google.protobuf.Struct message, dynamic or generated,
// into a structpb.Struct.
func toStruct(m protoreflect.Message) (*structpb.Struct, error) {
	if s, ok := m.Interface().(*structpb.Struct); ok {
		return proto.Clone(s).(*structpb.Struct), nil
	}
	b, err := proto.Marshal(m.Interface())
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return s, nil
}
