package schema

import (
	"fmt"
	"strings"
)

// Violation is a single schema violation, reported as data.
type Violation struct {
	// Location is the dotted path of the offending value.
	Location string `json:"location"`

	// Message describes what is wrong.
	Message string `json:"message"`
}

// String formats the violation for display.
func (v Violation) String() string {
	if v.Location == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Location, v.Message)
}

// Violations accumulates schema violations during one walk.
type Violations struct {
	list []Violation
}

// Add records a violation.
func (vs *Violations) Add(location, message string) {
	vs.list = append(vs.list, Violation{Location: location, Message: message})
}

// Addf records a violation with a formatted message.
func (vs *Violations) Addf(location, format string, args ...any) {
	vs.Add(location, fmt.Sprintf(format, args...))
}

// Merge appends all violations from another accumulator.
func (vs *Violations) Merge(other *Violations) {
	if other == nil {
		return
	}
	vs.list = append(vs.list, other.list...)
}

// HasViolations reports whether anything was recorded.
func (vs *Violations) HasViolations() bool {
	return len(vs.list) > 0
}

// Len returns the number of recorded violations.
func (vs *Violations) Len() int {
	return len(vs.list)
}

// List returns the recorded violations in order.
func (vs *Violations) List() []Violation {
	return append([]Violation(nil), vs.list...)
}

// UnderLocation returns the violations at a location or any of its
// children.
func (vs *Violations) UnderLocation(location string) []Violation {
	var out []Violation
	for _, v := range vs.list {
		if v.Location == location || strings.HasPrefix(v.Location, location+".") || strings.HasPrefix(v.Location, location+"[") {
			out = append(out, v)
		}
	}
	return out
}

// Error formats all violations as one message.
func (vs *Violations) Error() string {
	if len(vs.list) == 0 {
		return "no schema violations"
	}
	if len(vs.list) == 1 {
		return vs.list[0].String()
	}
	msgs := make([]string, 0, len(vs.list))
	for _, v := range vs.list {
		msgs = append(msgs, v.String())
	}
	return fmt.Sprintf("%d schema violations:\n  - %s", len(vs.list), strings.Join(msgs, "\n  - "))
}
