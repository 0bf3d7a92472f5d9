// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// FileName is the virtual .proto path the descriptors are registered under.
	FileName = "deploymentmanager/autogen/batch.proto"
	// Package is the protobuf package of every batch message.
	Package protoreflect.FullName = "deploymentmanager.autogen"
)

// Field names shared by several messages.
const (
	FieldPartnerID  protoreflect.Name = "partner_id"
	FieldSolutionID protoreflect.Name = "solution_id"
	FieldSpec       protoreflect.Name = "spec"
	FieldSolutions  protoreflect.Name = "solutions"
	FieldFiles      protoreflect.Name = "files"
	FieldPath       protoreflect.Name = "path"
	FieldContent    protoreflect.Name = "content"
	FieldPackage    protoreflect.Name = "package"
)

var (
	// File is the resolved descriptor of the batch schema.
	File protoreflect.FileDescriptor

	// DeploymentPackageInput describes one generation request.
	DeploymentPackageInput protoreflect.MessageDescriptor
	// BatchInput is the envelope of an ordered list of DeploymentPackageInput.
	BatchInput protoreflect.MessageDescriptor
	// SolutionPackage is the generated package of one solution.
	SolutionPackage protoreflect.MessageDescriptor
	// SolutionPackageFile is one file inside a SolutionPackage.
	SolutionPackageFile protoreflect.MessageDescriptor
	// BatchOutput is the envelope of the ordered generation results.
	BatchOutput protoreflect.MessageDescriptor
	// BatchOutputSolution is one (partner_id, solution_id, package) entry.
	BatchOutputSolution protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("internal error: invalid batch schema: %v", err))
	}

	File = fd
	msgs := fd.Messages()
	DeploymentPackageInput = msgs.ByName("DeploymentPackageInput")
	BatchInput = msgs.ByName("BatchInput")
	SolutionPackage = msgs.ByName("SolutionPackage")
	SolutionPackageFile = SolutionPackage.Messages().ByName("File")
	BatchOutput = msgs.ByName("BatchOutput")
	BatchOutputSolution = BatchOutput.Messages().ByName("Solution")
}

// New returns an empty dynamic message of the given descriptor.
func New(md protoreflect.MessageDescriptor) *dynamicpb.Message {
	return dynamicpb.NewMessage(md)
}

// Field looks up a field that is known to exist on md. A missing field is a
// programming error in this package and panics.
func Field(md protoreflect.MessageDescriptor, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := md.Fields().ByName(name)
	if fd == nil {
		panic(fmt.Sprintf("internal error: %s has no field %q", md.FullName(), name))
	}
	return fd
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(FileName),
		Package:    proto.String(string(Package)),
		Syntax:     proto.String("proto3"),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("DeploymentPackageInput"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar(FieldPartnerID, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalar(FieldSolutionID, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					message(FieldSpec, 3, structType, false),
				},
			},
			{
				Name: proto.String("BatchInput"),
				Field: []*descriptorpb.FieldDescriptorProto{
					message(FieldSolutions, 1, typeName("DeploymentPackageInput"), true),
				},
			},
			{
				Name: proto.String("SolutionPackage"),
				Field: []*descriptorpb.FieldDescriptorProto{
					message(FieldFiles, 1, typeName("SolutionPackage.File"), true),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("File"),
						Field: []*descriptorpb.FieldDescriptorProto{
							scalar(FieldPath, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
							scalar(FieldContent, 2, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
						},
					},
				},
			},
			{
				Name: proto.String("BatchOutput"),
				Field: []*descriptorpb.FieldDescriptorProto{
					message(FieldSolutions, 1, typeName("BatchOutput.Solution"), true),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Solution"),
						Field: []*descriptorpb.FieldDescriptorProto{
							scalar(FieldPartnerID, 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
							scalar(FieldSolutionID, 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
							message(FieldPackage, 3, typeName("SolutionPackage"), false),
						},
					},
				},
			},
		},
	}
}

func typeName(local string) string {
	return "." + string(Package) + "." + local
}

func scalar(name protoreflect.Name, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(string(name)),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func message(name protoreflect.Name, number int32, fullType string, repeated bool) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(string(name)),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(fullType),
	}
}
