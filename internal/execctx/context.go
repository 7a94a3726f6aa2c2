// Package execctx builds the execution context handed to a resolved action.
//
// A Context is an immutable snapshot of the viewer's selection and file
// state, built fresh for every dispatch and discarded once the action's
// text has been resolved. It exposes exactly eight values, twice: in
// SCREAMING_CASE for command environments and in camelCase for template
// substitution. Nothing from the host process environment leaks through.
package execctx

import (
	"strconv"
	"strings"

	"github.com/hiliner/hiliner/internal/viewer"
)

// Environment value names.
const (
	EnvSelectedText   = "SELECTED_TEXT"
	EnvFilePath       = "FILE_PATH"
	EnvLineStart      = "LINE_START"
	EnvLineEnd        = "LINE_END"
	EnvLanguage       = "LANGUAGE"
	EnvSelectionCount = "SELECTION_COUNT"
	EnvTotalLines     = "TOTAL_LINES"
	EnvCurrentLine    = "CURRENT_LINE"
)

// Template variable names.
const (
	VarSelectedText   = "selectedText"
	VarFilePath       = "filePath"
	VarLineStart      = "lineStart"
	VarLineEnd        = "lineEnd"
	VarLanguage       = "language"
	VarSelectionCount = "selectionCount"
	VarTotalLines     = "totalLines"
	VarCurrentLine    = "currentLine"
)

// Context holds the eight values for one action dispatch.
type Context struct {
	env  map[string]string
	vars map[string]string
}

// Build constructs a Context from the live selection, file, and cursor
// state. Selected line numbers outside [1, TotalLines] contribute no
// text; they are skipped silently.
func Build(sel viewer.SelectionState, file viewer.FileData, currentLine int) *Context {
	sorted := sel.Sorted()

	var text strings.Builder
	first := true
	for _, n := range sorted {
		if n < 1 || n > file.TotalLines || n > len(file.Lines) {
			continue
		}
		if !first {
			text.WriteByte('\n')
		}
		text.WriteString(file.Lines[n-1])
		first = false
	}

	lineStart, lineEnd := "", ""
	if len(sorted) > 0 {
		lineStart = strconv.Itoa(sorted[0])
		lineEnd = strconv.Itoa(sorted[len(sorted)-1])
	}

	values := [8]string{
		text.String(),
		file.FilePath,
		lineStart,
		lineEnd,
		file.Language(),
		strconv.Itoa(len(sel.SelectedLines)),
		strconv.Itoa(file.TotalLines),
		strconv.Itoa(currentLine),
	}

	envNames := [8]string{
		EnvSelectedText, EnvFilePath, EnvLineStart, EnvLineEnd,
		EnvLanguage, EnvSelectionCount, EnvTotalLines, EnvCurrentLine,
	}
	varNames := [8]string{
		VarSelectedText, VarFilePath, VarLineStart, VarLineEnd,
		VarLanguage, VarSelectionCount, VarTotalLines, VarCurrentLine,
	}

	env := make(map[string]string, 8)
	vars := make(map[string]string, 8)
	for i, v := range values {
		env[envNames[i]] = v
		vars[varNames[i]] = v
	}

	return &Context{env: env, vars: vars}
}

// Environ returns the SCREAMING_CASE values as a copy, for use as a
// command environment.
func (c *Context) Environ() map[string]string {
	out := make(map[string]string, len(c.env))
	for k, v := range c.env {
		out[k] = v
	}
	return out
}

// TemplateVars returns the camelCase values as a copy, for template
// substitution.
func (c *Context) TemplateVars() map[string]string {
	out := make(map[string]string, len(c.vars))
	for k, v := range c.vars {
		out[k] = v
	}
	return out
}

// Lookup returns the value for an environment or template name.
func (c *Context) Lookup(name string) (string, bool) {
	if v, ok := c.env[name]; ok {
		return v, true
	}
	v, ok := c.vars[name]
	return v, ok
}
