package execctx

import (
	"reflect"
	"testing"

	"github.com/hiliner/hiliner/internal/viewer"
)

func fiveLineFile() viewer.FileData {
	return viewer.FileData{
		Lines:      []string{"line1", "line2", "line3", "line4", "line5"},
		TotalLines: 5,
		FilePath:   "/tmp/sample.txt",
		Metadata:   &viewer.FileMetadata{Language: "text"},
	}
}

func TestBuild(t *testing.T) {
	ctx := Build(viewer.NewSelectionState(1, 3, 5), fiveLineFile(), 3)

	expected := map[string]string{
		"SELECTED_TEXT":   "line1\nline3\nline5",
		"FILE_PATH":       "/tmp/sample.txt",
		"LINE_START":      "1",
		"LINE_END":        "5",
		"LANGUAGE":        "text",
		"SELECTION_COUNT": "3",
		"TOTAL_LINES":     "5",
		"CURRENT_LINE":    "3",
	}
	if got := ctx.Environ(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Environ() = %v, want %v", got, expected)
	}

	vars := ctx.TemplateVars()
	if len(vars) != 8 {
		t.Fatalf("TemplateVars() has %d entries, want 8", len(vars))
	}
	if vars["selectedText"] != "line1\nline3\nline5" {
		t.Errorf("selectedText = %q", vars["selectedText"])
	}
	if vars["lineStart"] != "1" || vars["lineEnd"] != "5" {
		t.Errorf("lineStart/lineEnd = %q/%q, want 1/5", vars["lineStart"], vars["lineEnd"])
	}
}

func TestBuildSelectionOrder(t *testing.T) {
	// Selection insertion order must not matter: lines join in ascending
	// numeric order.
	ctx := Build(viewer.NewSelectionState(5, 1, 3), fiveLineFile(), 1)
	if got, _ := ctx.Lookup("SELECTED_TEXT"); got != "line1\nline3\nline5" {
		t.Errorf("SELECTED_TEXT = %q, want ascending order", got)
	}
}

func TestBuildEmptySelection(t *testing.T) {
	ctx := Build(viewer.NewSelectionState(), fiveLineFile(), 2)

	env := ctx.Environ()
	for name, want := range map[string]string{
		"SELECTED_TEXT":   "",
		"LINE_START":      "",
		"LINE_END":        "",
		"SELECTION_COUNT": "0",
		"CURRENT_LINE":    "2",
	} {
		if env[name] != want {
			t.Errorf("%s = %q, want %q", name, env[name], want)
		}
	}
}

func TestBuildOutOfRangeLines(t *testing.T) {
	// Out-of-range selected lines contribute no text but still count in
	// the selection bounds.
	ctx := Build(viewer.NewSelectionState(0, 2, 99), fiveLineFile(), 2)

	env := ctx.Environ()
	if env["SELECTED_TEXT"] != "line2" {
		t.Errorf("SELECTED_TEXT = %q, want %q", env["SELECTED_TEXT"], "line2")
	}
	if env["SELECTION_COUNT"] != "3" {
		t.Errorf("SELECTION_COUNT = %q, want 3", env["SELECTION_COUNT"])
	}
	if env["LINE_START"] != "0" || env["LINE_END"] != "99" {
		t.Errorf("LINE_START/LINE_END = %q/%q", env["LINE_START"], env["LINE_END"])
	}
}

func TestBuildUnknownLanguage(t *testing.T) {
	tests := []struct {
		name string
		meta *viewer.FileMetadata
	}{
		{name: "nil metadata", meta: nil},
		{name: "empty language", meta: &viewer.FileMetadata{Encoding: "utf-8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := fiveLineFile()
			file.Metadata = tt.meta
			ctx := Build(viewer.NewSelectionState(), file, 1)
			if got, _ := ctx.Lookup("LANGUAGE"); got != "unknown" {
				t.Errorf("LANGUAGE = %q, want %q", got, "unknown")
			}
		})
	}
}

func TestBuildNoAmbientEnvironment(t *testing.T) {
	t.Setenv("HILINER_LEAK_CHECK", "leaked")

	ctx := Build(viewer.NewSelectionState(1), fiveLineFile(), 1)
	if _, ok := ctx.Lookup("HILINER_LEAK_CHECK"); ok {
		t.Error("ambient process environment leaked into the context")
	}
	if got := len(ctx.Environ()); got != 8 {
		t.Errorf("Environ() has %d entries, want exactly 8", got)
	}
}

func TestBuildCopiesAreIndependent(t *testing.T) {
	ctx := Build(viewer.NewSelectionState(1), fiveLineFile(), 1)

	env := ctx.Environ()
	env["FILE_PATH"] = "mutated"

	if got, _ := ctx.Lookup("FILE_PATH"); got != "/tmp/sample.txt" {
		t.Error("mutating a returned map changed the context")
	}
}
