// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests verify Go struct JSON tags match CUE schema field names.
// A misaligned name would be rejected by the closed #Config definition.

func extractCUEFields(t *testing.T, val cue.Value) []string {
	t.Helper()

	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}

	var fields []string
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields = append(fields, strings.TrimSuffix(sel.String(), "?"))
	}
	slices.Sort(fields)
	return fields
}

func extractGoJSONTags(t *testing.T, typ reflect.Type) []string {
	t.Helper()

	var fields []string
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

func TestRunConfigSchemaSync(t *testing.T) {
	t.Parallel()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("config schema does not compile: %v", schema.Err())
	}

	cueFields := extractCUEFields(t, schema.LookupPath(cue.ParsePath("#Config")))
	goFields := extractGoJSONTags(t, reflect.TypeFor[RunConfig]())

	if !slices.Equal(cueFields, goFields) {
		t.Errorf("#Config fields %v do not match RunConfig json tags %v", cueFields, goFields)
	}
	if !slices.Equal(goFields, slices.Sorted(slices.Values(Keys))) {
		t.Errorf("RunConfig json tags %v do not match Keys %v", goFields, Keys)
	}
}
