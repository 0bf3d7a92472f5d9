// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name":     "wordpress",
		"replicas": 3,
		"labels":   map[string]any{"tier": "web"},
		"zones":    []any{"a", "b"},
	}

	out, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(out)), "{") {
		t.Errorf("Marshal() output should not be wrapped in braces:\n%s", out)
	}

	v := cuecontext.New().CompileBytes(out)
	if v.Err() != nil {
		t.Fatalf("output does not compile: %v\n%s", v.Err(), out)
	}
	var back map[string]any
	if err := v.Decode(&back); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back["name"] != "wordpress" {
		t.Errorf("name = %v, want wordpress", back["name"])
	}
	if labels, ok := back["labels"].(map[string]any); !ok || labels["tier"] != "web" {
		t.Errorf("labels = %v, want tier=web", back["labels"])
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	t.Parallel()

	in := map[string]any{"b": 1, "a": 2, "c": 3}
	first, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(in)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("Marshal() is not deterministic:\n%s\nvs\n%s", first, again)
		}
	}
}

func TestMarshalStructUsesJSONNames(t *testing.T) {
	t.Parallel()

	type settings struct {
		InputType string `json:"input_type"`
		Verbose   bool   `json:"verbose"`
	}

	out, err := Marshal(settings{InputType: "PROTOTEXT", Verbose: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `input_type: "PROTOTEXT"`) || !strings.Contains(s, "verbose:") {
		t.Errorf("Marshal() = %q, want json field names", s)
	}
}

func TestFormatRejectsIncompleteValue(t *testing.T) {
	t.Parallel()

	v := cuecontext.New().CompileString(`name: string`)
	if _, err := Format(v); err == nil {
		t.Error("Format() of a non-concrete value should fail")
	}
}
