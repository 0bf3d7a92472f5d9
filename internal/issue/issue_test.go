// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	DecodeFailedId,
	EncodeFailedId,
	InvalidConfigurationId,
	ConfigLoadFailedId,
	GenerationFailedId,
	InputNotFoundId,
	StorageFailedId,
	InterruptedId,
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// IDs start at 1 so the zero value never names an issue.
	if DecodeFailedId != 1 {
		t.Errorf("DecodeFailedId = %d, want 1", DecodeFailedId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{DecodeFailedId, false, "Failed to decode"},
		{EncodeFailedId, false, "Failed to encode"},
		{InvalidConfigurationId, false, "Invalid configuration"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{GenerationFailedId, false, "Package generation failed"},
		{InputNotFoundId, false, "Input not found"},
		{StorageFailedId, false, "s3://"},
		{InterruptedId, false, "Interrupted"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if issue.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, issue.Id())
			}
			if !strings.Contains(string(issue.mdMsg), tt.contains) {
				t.Errorf("Get(%d) message should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestCatalogIsComplete(t *testing.T) {
	if len(issues) != len(allIds) {
		t.Errorf("catalog has %d issues, want %d", len(issues), len(allIds))
	}
	for _, id := range allIds {
		if issue := Get(id); issue == nil || issue.mdMsg == "" {
			t.Errorf("issue %d is missing or empty", id)
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, want := range []string{"See also", "https://docs.example.com", "https://external.example.com"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output should contain %q, got:\n%s", want, rendered)
		}
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test Issue\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, id := range allIds {
		issue := Get(id)
		rendered, err := issue.Render("dark")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
