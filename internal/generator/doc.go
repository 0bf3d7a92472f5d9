// SPDX-License-Identifier: MPL-2.0

// Package generator is the default in-process package generator.
//
// Each spec is validated against the embedded #Spec schema and rendered as
// solution.cue and solution.json. With the INCLUDED strategy the embedded
// shared support files are added under common/.
package generator
