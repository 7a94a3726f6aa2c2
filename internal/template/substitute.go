// Package template resolves {{name}} placeholders in command templates.
//
// This is deliberately not a templating language: there are no loops,
// conditionals, or expressions. Tokens that do not resolve are passed
// through byte-for-byte, since command text may legitimately contain
// literal double-brace sequences.
package template

import "strings"

// Substitute replaces every well-formed {{name}} token in template with
// its value from vars. Unknown tokens and malformed brace sequences are
// left unchanged. For nested braces the innermost well-formed token is
// resolved and the surrounding braces stay literal.
//
// The scan is a single left-to-right pass, linear in len(template).
func Substitute(template string, vars map[string]string) string {
	if template == "" || !strings.Contains(template, "{{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	i := 0
	for i < len(template) {
		next := strings.IndexByte(template[i:], '{')
		if next < 0 {
			b.WriteString(template[i:])
			break
		}
		b.WriteString(template[i : i+next])
		i += next

		// Run of opening braces.
		open := 0
		for i+open < len(template) && template[i+open] == '{' {
			open++
		}
		if open < 2 {
			b.WriteString(template[i : i+open])
			i += open
			continue
		}

		// Token name.
		j := i + open
		start := j
		for j < len(template) && isNameByte(template[j]) {
			j++
		}
		name := template[start:j]

		// Run of closing braces.
		close := 0
		for j+close < len(template) && template[j+close] == '}' {
			close++
		}
		end := j + close

		value, known := vars[name]
		if name == "" || close < 2 || !known {
			// Not a resolvable token; emit the consumed text verbatim.
			b.WriteString(template[i:end])
			i = end
			continue
		}

		// The innermost pair of braces forms the token; surplus braces
		// on either side are literal.
		for k := 0; k < open-2; k++ {
			b.WriteByte('{')
		}
		b.WriteString(value)
		for k := 0; k < close-2; k++ {
			b.WriteByte('}')
		}
		i = end
	}

	return b.String()
}

// isNameByte reports whether c can appear in a token name.
func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}
