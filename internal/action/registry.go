// Package action defines the viewer's action model and the registry that
// resolves key presses to actions.
//
// A Registry is an immutable snapshot built once from merged
// configuration. It is returned from a constructor and threaded through
// call sites; there is no package-level registry. Reload means building a
// fresh registry, never mutating one in place.
package action

import (
	"fmt"
	"sort"
)

// RegistryInput is everything a registry is constructed from. Actions,
// key bindings, and environment come out of the config merger; Conflicts
// carries what the merger recorded so the registry can expose it.
type RegistryInput struct {
	// Actions are the merged custom actions, in merge order.
	Actions []Definition

	// KeyBindings is the merged alias map from key token to action id.
	KeyBindings map[string]string

	// Environment is the merged environment block; may be nil.
	Environment *Environment

	// Conflicts are the collisions recorded during merging.
	Conflicts []Conflict
}

// Registry resolves action ids and key tokens to actions. Immutable once
// constructed.
type Registry struct {
	byID      map[string]*Definition
	byKey     map[string]string
	ordered   []string
	env       Environment
	conflicts []Conflict
}

// NewRegistry seeds the builtin catalog, applies the custom actions, and
// flattens every effective key (primary, alternatives, alias entries)
// into one lookup table.
//
// Every problem found is collected; on failure the returned error is a
// *BuildError carrying all of them. A registry is never partially built.
func NewRegistry(in RegistryInput) (*Registry, error) {
	var problems []error

	r := &Registry{
		byID:      make(map[string]*Definition),
		byKey:     make(map[string]string),
		env:       in.Environment.WithDefaults(),
		conflicts: append([]Conflict(nil), in.Conflicts...),
	}

	builtins := Builtins()
	for i := range builtins {
		b := &builtins[i]
		r.byID[b.ID] = b
		r.ordered = append(r.ordered, b.ID)
	}

	seen := make(map[string]struct{}, len(in.Actions))
	for i := range in.Actions {
		d := in.Actions[i]
		if d.ID == "" {
			problems = append(problems, &DefinitionError{Message: "missing id"})
			continue
		}
		if _, dup := seen[d.ID]; dup {
			problems = append(problems, &DefinitionError{ID: d.ID, Message: "duplicate id in merged actions"})
			continue
		}
		seen[d.ID] = struct{}{}

		if IsCriticalBuiltin(d.ID) {
			problems = append(problems, &CriticalOverrideError{ID: d.ID})
			continue
		}
		for _, msg := range d.Script.Validate() {
			problems = append(problems, &DefinitionError{ID: d.ID, Message: msg})
		}
		if d.Key == "" {
			problems = append(problems, &DefinitionError{ID: d.ID, Message: "missing key"})
		}

		if existing, ok := r.byID[d.ID]; ok && existing.Builtin {
			// Redefining a non-critical builtin replaces it in place.
			*existing = d
		} else {
			def := d
			r.byID[d.ID] = &def
			r.ordered = append(r.ordered, d.ID)
		}
	}

	check := DetectKeyBindingConflicts(in.Actions, Builtins())
	for i := range check.Conflicts {
		kc := check.Conflicts[i]
		problems = append(problems, &kc)
	}

	// Fold the alias map into per-action keys, then flatten the index.
	aliases := make(map[string][]string)
	aliasKeys := make([]string, 0, len(in.KeyBindings))
	for k := range in.KeyBindings {
		aliasKeys = append(aliasKeys, k)
	}
	sort.Strings(aliasKeys)
	for _, k := range aliasKeys {
		id := in.KeyBindings[k]
		if _, ok := r.byID[id]; !ok {
			problems = append(problems, &DefinitionError{ID: id, Message: fmt.Sprintf("key binding %q references unknown action", k)})
			continue
		}
		aliases[id] = append(aliases[id], k)
	}

	for _, id := range r.ordered {
		d := r.byID[id]
		if !d.IsEnabled() {
			continue
		}
		keys := append(d.EffectiveKeys(), aliases[id]...)
		for _, k := range keys {
			owner, taken := r.byKey[k]
			if taken && owner != id {
				problems = append(problems, &KeyConflictError{Key: k, ActionIDs: []string{owner, id}, BuiltinID: builtinOwner(r.byID, owner)})
				continue
			}
			r.byKey[k] = id
		}
	}

	if len(problems) > 0 {
		return nil, &BuildError{Errors: dedupeProblems(problems)}
	}
	return r, nil
}

// builtinOwner returns id when it still names a builtin in the final map.
func builtinOwner(byID map[string]*Definition, id string) string {
	if d, ok := byID[id]; ok && d.Builtin {
		return id
	}
	return ""
}

// dedupeProblems drops key-conflict duplicates reported by both the pure
// detection pass and index flattening.
func dedupeProblems(problems []error) []error {
	seen := make(map[string]struct{}, len(problems))
	out := problems[:0:0]
	for _, p := range problems {
		msg := p.Error()
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ActionByID looks up an action by id.
func (r *Registry) ActionByID(id string) (*Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ActionByKey resolves a key token through primary keys, alternative
// keys, and alias entries. Comparison is case-sensitive.
func (r *Registry) ActionByKey(key string) (*Definition, bool) {
	id, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return r.byID[id], true
}

// AllActions returns every action in display order: builtin catalog
// order first, then merged custom actions in merge order. A custom
// action that replaced a builtin keeps the builtin's position.
func (r *Registry) AllActions() []Definition {
	out := make([]Definition, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, *r.byID[id])
	}
	return out
}

// BuiltinActions returns the actions still backed by the native catalog.
func (r *Registry) BuiltinActions() []Definition {
	var out []Definition
	for _, id := range r.ordered {
		if d := r.byID[id]; d.Builtin {
			out = append(out, *d)
		}
	}
	return out
}

// AvailableActions filters enabled actions by their When clause against
// the given context. Actions without a When clause are always available.
func (r *Registry) AvailableActions(ctx FilterContext) []Definition {
	var out []Definition
	for _, id := range r.ordered {
		d := r.byID[id]
		if !d.IsEnabled() {
			continue
		}
		if !d.When.Matches(ctx) {
			continue
		}
		out = append(out, *d)
	}
	return out
}

// EnvironmentContext returns the merged environment block with defaults
// applied for unset fields.
func (r *Registry) EnvironmentContext() Environment {
	out := r.env
	out.Variables = make(map[string]string, len(r.env.Variables))
	for k, v := range r.env.Variables {
		out.Variables[k] = v
	}
	return out
}

// Conflicts returns the collisions recorded while the configuration was
// merged.
func (r *Registry) Conflicts() []Conflict {
	return append([]Conflict(nil), r.conflicts...)
}

// KeyBindings returns the flattened key index: every effective key and
// the action id it resolves to.
func (r *Registry) KeyBindings() map[string]string {
	out := make(map[string]string, len(r.byKey))
	for k, v := range r.byKey {
		out[k] = v
	}
	return out
}
