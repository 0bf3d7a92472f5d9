// SPDX-License-Identifier: MPL-2.0

// Package schema defines the protobuf messages exchanged by batchautogen.
//
// The descriptors are assembled at init from a descriptorpb.FileDescriptorProto
// and resolved against the global registry, so no generated code is needed.
// Messages are instantiated as dynamicpb messages, which every protobuf
// encoding (text, JSON, wire) handles like generated types:
//
//	message DeploymentPackageInput {
//	  string partner_id = 1;
//	  string solution_id = 2;
//	  google.protobuf.Struct spec = 3;
//	}
//	message BatchInput { repeated DeploymentPackageInput solutions = 1; }
//	message SolutionPackage {
//	  message File { string path = 1; bytes content = 2; }
//	  repeated File files = 1;
//	}
//	message BatchOutput {
//	  message Solution {
//	    string partner_id = 1;
//	    string solution_id = 2;
//	    SolutionPackage package = 3;
//	  }
//	  repeated Solution solutions = 1;
//	}
package schema
