package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("test document does not parse: %v", err)
	}
	return doc
}

func TestDocumentValid(t *testing.T) {
	doc := decode(t, `{
		"version": "1.2.3",
		"metadata": {"name": "test", "author": "someone"},
		"actions": [
			{"id": "copy", "description": "Copy lines", "key": "y", "script": "pbcopy"},
			{"id": "fmt", "description": "Format", "key": "ctrl+l",
			 "script": {"type": "external", "command": "gofmt", "args": ["-w"]},
			 "when": {"fileTypes": ["go"], "hasSelection": true, "lineCount": {"min": 1, "max": 10000}}}
		],
		"keyBindings": {"Y": "copy"},
		"environment": {"variables": {"MY_VAR": "1"}, "timeout": 5000, "shell": "bash"}
	}`)

	if got := Document().Validate(doc); len(got) != 0 {
		t.Errorf("valid document produced violations: %v", got)
	}
}

func TestDocumentViolationsAccumulate(t *testing.T) {
	// Every violation must be reported, not just the first.
	doc := decode(t, `{
		"version": "not-semver",
		"actions": [
			{"id": "ok", "description": "fine", "key": "y", "script": "pbcopy"},
			{"id": "1bad", "key": "", "script": ""}
		],
		"environment": {"shell": "powershell", "timeout": -5}
	}`)

	violations := Document().Validate(doc)
	if len(violations) < 5 {
		t.Fatalf("got %d violations, want at least 5: %v", len(violations), violations)
	}

	wantLocations := []string{
		"version",
		"actions[1].id",
		"actions[1].description",
		"actions[1].key",
		"actions[1].script",
		"environment.shell",
		"environment.timeout",
	}
	for _, loc := range wantLocations {
		found := false
		for _, v := range violations {
			if v.Location == loc {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no violation at %s: %v", loc, violations)
		}
	}
}

func TestDocumentVersionPattern(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"1.0.0", true},
		{"0.1.2", true},
		{"1.0.0-beta.1", true},
		{"1.0.0+build.5", true},
		{"1.0", false},
		{"v1.0.0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := map[string]any{"version": tt.version}
			violations := Document().Validate(doc)
			if tt.valid && len(violations) != 0 {
				t.Errorf("version %q rejected: %v", tt.version, violations)
			}
			if !tt.valid && len(violations) == 0 {
				t.Errorf("version %q accepted", tt.version)
			}
		})
	}
}

func TestActionKeyPattern(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"y", true},
		{"Y", true},
		{"?", true},
		{"ctrl+s", true},
		{"ctrl+shift+p", true},
		{"space", true},
		{"esc", true},
		{"f12", true},
		{"pgdown", true},
		{"", false},
		{"yy", false},
		{"ctrl+", false},
		{"super+x", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			doc := map[string]any{
				"id": "x", "description": "d", "key": tt.key, "script": "echo",
			}
			violations := Action().Validate(doc)
			if tt.valid && len(violations) != 0 {
				t.Errorf("key %q rejected: %v", tt.key, violations)
			}
			if !tt.valid && len(violations) == 0 {
				t.Errorf("key %q accepted", tt.key)
			}
		})
	}
}

func TestActionRequiredFields(t *testing.T) {
	violations := Action().Validate(map[string]any{"id": "x"})

	missing := map[string]bool{}
	for _, v := range violations {
		if strings.Contains(v.Message, "required property") {
			missing[v.Location] = true
		}
	}
	for _, want := range []string{"description", "key", "script"} {
		if !missing[want] {
			t.Errorf("missing required property %q not reported: %v", want, violations)
		}
	}
}

func TestActionUnknownProperty(t *testing.T) {
	doc := map[string]any{
		"id": "x", "description": "d", "key": "y", "script": "echo",
		"keybinding": "y",
	}
	violations := Action().Validate(doc)
	if len(violations) != 1 || !strings.Contains(violations[0].Message, "unknown property") {
		t.Errorf("violations = %v, want one unknown property", violations)
	}
}

func TestScriptOneOf(t *testing.T) {
	tests := []struct {
		name   string
		script any
		valid  bool
	}{
		{name: "string", script: "echo hi", valid: true},
		{name: "empty string", script: "", valid: false},
		{name: "structured", script: map[string]any{"type": "script", "command": "ls"}, valid: true},
		{name: "bad type enum", script: map[string]any{"type": "alias"}, valid: false},
		{name: "number", script: 42.0, valid: false},
		{name: "nested sequence", script: map[string]any{
			"type": "sequence",
			"sequence": []any{
				map[string]any{"type": "builtin", "builtin": "quit"},
			},
		}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"id": "x", "description": "d", "key": "y", "script": tt.script,
			}
			violations := Action().Validate(doc)
			if tt.valid && len(violations) != 0 {
				t.Errorf("script rejected: %v", violations)
			}
			if !tt.valid && len(violations) == 0 {
				t.Error("script accepted")
			}
		})
	}
}

func TestEnvironmentVariableNames(t *testing.T) {
	doc := decode(t, `{
		"version": "1.0.0",
		"environment": {"variables": {"GOOD_NAME": "1", "badName": "2"}}
	}`)

	violations := Document().Validate(doc)
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", violations)
	}
	if violations[0].Location != "environment.variables.badName" {
		t.Errorf("Location = %q", violations[0].Location)
	}
}

func TestViolationsUnderLocation(t *testing.T) {
	vs := &Violations{}
	vs.Add("actions[0].key", "bad key")
	vs.Add("actions[0]", "bad action")
	vs.Add("actions[1].id", "bad id")
	vs.Add("version", "bad version")

	under := vs.UnderLocation("actions[0]")
	if len(under) != 2 {
		t.Errorf("UnderLocation(actions[0]) = %v, want 2 entries", under)
	}
}

func TestTypeMismatches(t *testing.T) {
	doc := decode(t, `{
		"version": "1.0.0",
		"actions": "not-an-array",
		"keyBindings": ["not-an-object"]
	}`)

	violations := Document().Validate(doc)
	if len(violations) != 2 {
		t.Fatalf("violations = %v, want 2", violations)
	}
}
