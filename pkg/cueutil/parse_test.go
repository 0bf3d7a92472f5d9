// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#TestConfig: {
	mode:         "SINGLE" | "MULTIPLE"
	retries:      int
	verbose:      bool
	description?: string
}
`

type TestConfig struct {
	Mode        string `json:"mode"`
	Retries     int    `json:"retries"`
	Verbose     bool   `json:"verbose"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Run("valid config parses successfully", func(t *testing.T) {
		data := []byte(`
mode: "SINGLE"
retries: 42
verbose: true
description: "A test config"
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Value.Mode != "SINGLE" {
			t.Errorf("expected mode='SINGLE', got %q", result.Value.Mode)
		}
		if result.Value.Retries != 42 {
			t.Errorf("expected retries=42, got %d", result.Value.Retries)
		}
		if !result.Value.Verbose {
			t.Error("expected verbose=true")
		}
		if result.Value.Description != "A test config" {
			t.Errorf("expected description='A test config', got %q", result.Value.Description)
		}
		if result.Unified.Err() != nil {
			t.Errorf("unified value has error: %v", result.Unified.Err())
		}
	})

	t.Run("optional field can be omitted", func(t *testing.T) {
		data := []byte(`
mode: "MULTIPLE"
retries: 1
verbose: false
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Description != "" {
			t.Errorf("expected empty description, got %q", result.Value.Description)
		}
	})

	t.Run("JSON data is accepted", func(t *testing.T) {
		data := []byte(`{"mode": "SINGLE", "retries": 3, "verbose": false}`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Retries != 3 {
			t.Errorf("expected retries=3, got %d", result.Value.Retries)
		}
	})

	t.Run("invalid enum value returns error", func(t *testing.T) {
		data := []byte(`
mode: "single"
retries: 1
verbose: true
`)
		if _, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig"); err == nil {
			t.Error("expected error for invalid enum value")
		}
	})

	t.Run("invalid type returns error", func(t *testing.T) {
		data := []byte(`
mode: "SINGLE"
retries: "not a number"
verbose: true
`)
		if _, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig"); err == nil {
			t.Error("expected error for invalid type")
		}
	})

	t.Run("missing required field returns error", func(t *testing.T) {
		data := []byte(`
mode: "SINGLE"
verbose: true
`)
		if _, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig"); err == nil {
			t.Error("expected error for missing required field")
		}
	})

	t.Run("optional fields with WithConcrete(false)", func(t *testing.T) {
		schema := []byte(`#Settings: {mode?: "SINGLE" | "MULTIPLE", output?: string}`)
		data := []byte(`mode: "SINGLE"`)
		result, err := ParseAndDecode[map[string]any](
			schema,
			data,
			"#Settings",
			WithConcrete(false),
		)
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if (*result.Value)["mode"] != "SINGLE" {
			t.Errorf("expected mode='SINGLE', got %v", (*result.Value)["mode"])
		}
	})

	t.Run("WithFilename sets filename in errors", func(t *testing.T) {
		data := []byte(`
mode: "SINGLE"
retries: "invalid"
verbose: true
`)
		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithFilename("my-config.cue"),
		)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "my-config.cue") {
			t.Errorf("error should contain filename, got: %v", err)
		}
	})

	t.Run("unknown schema path is an internal error", func(t *testing.T) {
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), []byte(`{}`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "#Missing") {
			t.Errorf("expected schema definition error, got: %v", err)
		}
	})
}

func TestFileSizeLimit(t *testing.T) {
	t.Run("file within limit parses successfully", func(t *testing.T) {
		data := []byte(`mode: "SINGLE", retries: 1, verbose: true`)
		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithMaxFileSize(1024),
		)
		if err != nil {
			t.Errorf("expected success, got error: %v", err)
		}
	})

	t.Run("file exceeding limit returns error", func(t *testing.T) {
		data := []byte(strings.Repeat("a", 200))

		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithMaxFileSize(100),
		)
		if err == nil {
			t.Fatal("expected error for oversized file")
		}
		if !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("error should mention size limit, got: %v", err)
		}
	})
}

func TestParseAndDecodeString(t *testing.T) {
	data := []byte(`
mode: "MULTIPLE"
retries: 42
verbose: true
`)
	result, err := ParseAndDecodeString[TestConfig](testSchema, data, "#TestConfig")
	if err != nil {
		t.Fatalf("ParseAndDecodeString failed: %v", err)
	}
	if result.Value.Mode != "MULTIPLE" {
		t.Errorf("expected mode='MULTIPLE', got %q", result.Value.Mode)
	}
}
