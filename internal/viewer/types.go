// Package viewer defines the data handed to the action system by the
// viewer's file-loading and selection components.
package viewer

import "sort"

// FileMetadata carries optional information detected when a file was loaded.
type FileMetadata struct {
	// Language is the detected language identifier (e.g., "go", "python").
	Language string

	// Encoding is the detected text encoding.
	Encoding string

	// Size is the file size in bytes.
	Size int64
}

// FileData is the loaded file as supplied by the file-loading component.
type FileData struct {
	// Content is the full file content.
	Content string

	// Lines is the file split into lines, without terminators.
	Lines []string

	// TotalLines is len(Lines).
	TotalLines int

	// FilePath is the absolute path the file was loaded from.
	FilePath string

	// Metadata holds optional detection results; may be nil.
	Metadata *FileMetadata
}

// Language returns the detected language, or "unknown" when no metadata
// or no detection result is available.
func (f *FileData) Language() string {
	if f.Metadata == nil || f.Metadata.Language == "" {
		return "unknown"
	}
	return f.Metadata.Language
}

// SelectionState is the current selection as supplied by the selection
// component. Line numbers are 1-based.
type SelectionState struct {
	// SelectedLines is the set of selected line numbers.
	SelectedLines map[int]struct{}

	// SelectionCount is the size of SelectedLines.
	SelectionCount int

	// LastSelectedLine is the most recently touched line, 0 if none.
	LastSelectedLine int
}

// NewSelectionState builds a selection over the given line numbers.
// The last argument becomes the most recently touched line.
func NewSelectionState(lines ...int) SelectionState {
	set := make(map[int]struct{}, len(lines))
	last := 0
	for _, n := range lines {
		set[n] = struct{}{}
		last = n
	}
	return SelectionState{
		SelectedLines:    set,
		SelectionCount:   len(set),
		LastSelectedLine: last,
	}
}

// IsEmpty reports whether no lines are selected.
func (s SelectionState) IsEmpty() bool {
	return len(s.SelectedLines) == 0
}

// Sorted returns the selected line numbers in ascending order.
func (s SelectionState) Sorted() []int {
	out := make([]int, 0, len(s.SelectedLines))
	for n := range s.SelectedLines {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
