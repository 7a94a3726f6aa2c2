package config

import (
	"fmt"
	"sort"

	"github.com/hiliner/hiliner/internal/action"
)

// Strategy selects how loaded configurations are combined.
type Strategy uint8

const (
	// DetectConflicts merges all sources and records conflicts. This is
	// the default.
	DetectConflicts Strategy = iota

	// Replace uses only the highest-priority loaded source and ignores
	// the rest.
	Replace

	// MergeAll unions everything and records conflicts without ever
	// treating them as merge failures.
	MergeAll
)

// String returns a stable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case DetectConflicts:
		return "detect_conflicts"
	case Replace:
		return "replace"
	case MergeAll:
		return "merge_all"
	default:
		return "unknown"
	}
}

// Merged is the single logical configuration produced from N sources.
type Merged struct {
	// Version is the highest-priority document version.
	Version string

	// Metadata is the highest-priority metadata block; may be nil.
	Metadata *action.Metadata

	// Actions is the merged action list. The first source to introduce
	// an id fixes its position; field values come from the
	// highest-priority source defining that id.
	Actions []action.Definition

	// KeyBindings is the unioned alias map; higher priority wins per key.
	KeyBindings map[string]string

	// Environment is the per-field merged environment; may be nil.
	Environment *action.Environment

	// Conflicts records id and key collisions observed during the merge.
	Conflicts []action.Conflict

	// Warnings carries the per-file lenient-mode warnings.
	Warnings []Warning
}

// Merge combines loaded configurations in ascending priority order.
// Entries must come from distinct sources; nil entries (absent
// discovered files) are skipped.
func Merge(loaded []*Loaded, strategy Strategy) *Merged {
	present := make([]*Loaded, 0, len(loaded))
	for _, ld := range loaded {
		if ld != nil && ld.Config != nil {
			present = append(present, ld)
		}
	}
	sort.SliceStable(present, func(i, j int) bool {
		return present[i].Source.Priority < present[j].Source.Priority
	})

	out := &Merged{KeyBindings: make(map[string]string)}
	for _, ld := range present {
		out.Warnings = append(out.Warnings, ld.Warnings...)
	}

	if strategy == Replace {
		if len(present) > 0 {
			top := present[len(present)-1]
			cfg := top.Config
			out.Version = cfg.Version
			out.Metadata = cfg.Metadata
			out.Actions = append(out.Actions, cfg.Actions...)
			for k, v := range cfg.KeyBindings {
				out.KeyBindings[k] = v
			}
			out.Environment = mergeEnvironment(nil, cfg.Environment)
		}
		return out
	}

	index := make(map[string]int)             // action id -> position in out.Actions
	contributors := make(map[string][]string) // action id -> source names, ascending

	for _, ld := range present {
		cfg := ld.Config
		name := ld.Source.Kind.String()

		if cfg.Version != "" {
			out.Version = cfg.Version
		}
		if cfg.Metadata != nil {
			out.Metadata = cfg.Metadata
		}

		for _, def := range cfg.Actions {
			contributors[def.ID] = append(contributors[def.ID], name)
			if pos, seen := index[def.ID]; seen {
				// Higher priority overwrites content in place; the
				// original position in the list is kept.
				out.Actions[pos] = def
				continue
			}
			index[def.ID] = len(out.Actions)
			out.Actions = append(out.Actions, def)
		}

		for k, v := range cfg.KeyBindings {
			out.KeyBindings[k] = v
		}

		out.Environment = mergeEnvironment(out.Environment, cfg.Environment)
	}

	// Record id collisions. Not errors: the highest-priority source wins.
	for _, def := range out.Actions {
		sources := contributors[def.ID]
		if len(sources) < 2 {
			continue
		}
		out.Conflicts = append(out.Conflicts, action.Conflict{
			Type:       action.ConflictDuplicateID,
			Key:        def.ID,
			Sources:    sources,
			Resolution: fmt.Sprintf("highest priority wins (%s)", sources[len(sources)-1]),
		})
	}

	out.Conflicts = append(out.Conflicts, keyCollisions(out.Actions, out.KeyBindings)...)
	return out
}

// keyCollisions records every effective key claimed by two or more
// distinct action ids after the merge.
func keyCollisions(actions []action.Definition, aliases map[string]string) []action.Conflict {
	claims := make(map[string][]string)
	order := make([]string, 0)
	claim := func(key, id string) {
		for _, existing := range claims[key] {
			if existing == id {
				return
			}
		}
		if len(claims[key]) == 0 {
			order = append(order, key)
		}
		claims[key] = append(claims[key], id)
	}

	for i := range actions {
		for _, k := range actions[i].EffectiveKeys() {
			claim(k, actions[i].ID)
		}
	}
	aliasKeys := make([]string, 0, len(aliases))
	for k := range aliases {
		aliasKeys = append(aliasKeys, k)
	}
	sort.Strings(aliasKeys)
	for _, k := range aliasKeys {
		claim(k, aliases[k])
	}

	var conflicts []action.Conflict
	for _, key := range order {
		ids := claims[key]
		if len(ids) < 2 {
			continue
		}
		conflicts = append(conflicts, action.Conflict{
			Type:       action.ConflictDuplicateKey,
			Key:        key,
			Sources:    ids,
			Resolution: "unresolved",
		})
	}
	return conflicts
}

// mergeEnvironment merges src over dst per field: scalar fields are
// overwritten by the higher-priority source, the variables map is a
// shallow union where higher-priority keys win.
func mergeEnvironment(dst, src *action.Environment) *action.Environment {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = &action.Environment{}
	}
	if src.Timeout > 0 {
		dst.Timeout = src.Timeout
	}
	if src.Shell != "" {
		dst.Shell = src.Shell
	}
	if len(src.Variables) > 0 {
		if dst.Variables == nil {
			dst.Variables = make(map[string]string, len(src.Variables))
		}
		for k, v := range src.Variables {
			dst.Variables[k] = v
		}
	}
	return dst
}
