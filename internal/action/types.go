package action

// Definition is a single bindable action, either built-in or loaded from
// configuration.
type Definition struct {
	// ID uniquely identifies the action within a registry.
	ID string `json:"id"`

	// Name is an optional display name.
	Name string `json:"name,omitempty"`

	// Description documents what the action does.
	Description string `json:"description"`

	// Key is the primary key token (e.g., "q", "ctrl+s").
	Key string `json:"key"`

	// AlternativeKeys are additional key tokens bound to this action.
	AlternativeKeys []string `json:"alternativeKeys,omitempty"`

	// Script is the command to run: a plain template string or a
	// structured command.
	Script Script `json:"script"`

	// When restricts the contexts in which the action is available.
	// Nil means always available.
	When *When `json:"when,omitempty"`

	// Category groups actions for display purposes.
	Category string `json:"category,omitempty"`

	// Priority orders actions within a category. Higher comes first.
	Priority int `json:"priority,omitempty"`

	// Dangerous marks actions that need confirmation before running.
	Dangerous bool `json:"dangerous,omitempty"`

	// ConfirmPrompt overrides the default confirmation text.
	ConfirmPrompt string `json:"confirmPrompt,omitempty"`

	// Enabled disables the action when set to false. Nil means enabled.
	Enabled *bool `json:"enabled,omitempty"`

	// Builtin marks actions seeded from the native catalog.
	Builtin bool `json:"-"`
}

// IsEnabled reports whether the action participates in key lookup.
func (d *Definition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// EffectiveKeys returns the primary key followed by the alternative keys,
// with empty tokens and duplicates removed.
func (d *Definition) EffectiveKeys() []string {
	keys := make([]string, 0, 1+len(d.AlternativeKeys))
	seen := make(map[string]struct{}, 1+len(d.AlternativeKeys))
	for _, k := range append([]string{d.Key}, d.AlternativeKeys...) {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// When is an action's availability condition. All set fields must match.
type When struct {
	// FileTypes matches against the file's extension or detected language.
	FileTypes []string `json:"fileTypes,omitempty"`

	// HasSelection requires the selection to be non-empty (true) or
	// empty (false).
	HasSelection *bool `json:"hasSelection,omitempty"`

	// LineCount bounds the file's total line count.
	LineCount *LineCountRange `json:"lineCount,omitempty"`

	// Mode requires a specific viewer mode.
	Mode string `json:"mode,omitempty"`
}

// LineCountRange bounds a file's total line count. Nil bounds are open.
type LineCountRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// FilterContext is the live state an action's When clause is evaluated
// against.
type FilterContext struct {
	// FileType is the detected language of the current file.
	FileType string

	// Extension is the current file's extension without the leading dot.
	Extension string

	// HasSelection reports whether any lines are selected.
	HasSelection bool

	// LineCount is the current file's total line count.
	LineCount int

	// Mode is the current viewer mode.
	Mode string
}

// Matches reports whether the condition holds in the given context.
// A nil When always matches.
func (w *When) Matches(ctx FilterContext) bool {
	if w == nil {
		return true
	}
	if len(w.FileTypes) > 0 {
		matched := false
		for _, ft := range w.FileTypes {
			if equalFold(ft, ctx.FileType) || equalFold(ft, ctx.Extension) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if w.HasSelection != nil && *w.HasSelection != ctx.HasSelection {
		return false
	}
	if w.LineCount != nil {
		if w.LineCount.Min != nil && ctx.LineCount < *w.LineCount.Min {
			return false
		}
		if w.LineCount.Max != nil && ctx.LineCount > *w.LineCount.Max {
			return false
		}
	}
	if w.Mode != "" && w.Mode != ctx.Mode {
		return false
	}
	return true
}

// equalFold is an ASCII-only case-insensitive comparison. File types and
// extensions are ASCII identifiers.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Metadata describes a configuration document.
type Metadata struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Created     string `json:"created,omitempty"`
	Modified    string `json:"modified,omitempty"`
}

// Environment is a configuration document's environment block.
type Environment struct {
	// Variables are extra environment variables for spawned commands.
	// Names follow the UPPER_SNAKE convention.
	Variables map[string]string `json:"variables,omitempty"`

	// Timeout is the command timeout in milliseconds. 0 means unset.
	Timeout int `json:"timeout,omitempty"`

	// Shell selects the shell used for plain-string scripts.
	Shell string `json:"shell,omitempty"`
}

// Environment defaults applied when a merged configuration leaves the
// fields unset.
const (
	DefaultTimeout = 30000
	DefaultShell   = "bash"
)

// WithDefaults returns a copy with unset fields filled in. The receiver
// may be nil.
func (e *Environment) WithDefaults() Environment {
	out := Environment{Timeout: DefaultTimeout, Shell: DefaultShell}
	if e != nil {
		if e.Timeout > 0 {
			out.Timeout = e.Timeout
		}
		if e.Shell != "" {
			out.Shell = e.Shell
		}
	}
	out.Variables = make(map[string]string)
	if e != nil {
		for k, v := range e.Variables {
			out.Variables[k] = v
		}
	}
	return out
}

// Config is one parsed configuration document.
type Config struct {
	// Version is the document format version (semver).
	Version string `json:"version"`

	// Metadata describes the document; may be nil.
	Metadata *Metadata `json:"metadata,omitempty"`

	// Actions are the document's action definitions, in file order.
	Actions []Definition `json:"actions"`

	// KeyBindings is an alias map from key token to action id.
	KeyBindings map[string]string `json:"keyBindings,omitempty"`

	// Environment is the document's environment block; may be nil.
	Environment *Environment `json:"environment,omitempty"`
}

// Conflict records an id or key collision discovered while merging
// configuration sources or constructing a registry.
type Conflict struct {
	// Type is the conflict kind.
	Type ConflictType `json:"type"`

	// Key is the action id or key token that collided.
	Key string `json:"key"`

	// Sources names the colliding parties: configuration sources for id
	// conflicts, action ids for key conflicts.
	Sources []string `json:"sources"`

	// Resolution describes how the conflict was resolved, if it was.
	Resolution string `json:"resolution"`
}

// ConflictType is the kind of a recorded conflict.
type ConflictType string

const (
	// ConflictDuplicateID records the same action id appearing in more
	// than one source. Not an error: the highest-priority source wins.
	ConflictDuplicateID ConflictType = "duplicate_action_id"

	// ConflictDuplicateKey records two different action ids claiming the
	// same effective key after a merge.
	ConflictDuplicateKey ConflictType = "duplicate_key_binding"
)
