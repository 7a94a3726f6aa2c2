// Package config resolves the viewer's action configuration.
//
// Configuration is layered across up to four JSON (or TOML) sources in
// ascending priority: OS-standard, user home, project local, and an
// optional explicitly-specified override. Building a registry is a pure
// pipeline: enumerate sources, load and validate each file, merge, then
// construct the action registry. The result is an immutable snapshot
// threaded explicitly through call sites; reloading means running the
// pipeline again, never mutating a registry in place.
package config

import (
	"github.com/hiliner/hiliner/internal/action"
)

// Options configures one registry construction.
type Options struct {
	// WorkDir anchors the project-local source and relative explicit
	// paths. Empty means the process working directory resolution is the
	// caller's problem; pass an absolute path.
	WorkDir string

	// ConfigPath is an optional explicit override file. A non-empty path
	// that does not exist is a fatal error.
	ConfigPath string

	// Strict aborts a whole file when any one action in it is invalid.
	// When false, invalid actions are dropped with recorded warnings.
	Strict bool

	// Strategy selects the merge strategy; the zero value is
	// DetectConflicts.
	Strategy Strategy
}

// Build is the outcome of one registry construction.
type Build struct {
	// Registry is the constructed, immutable action registry.
	Registry *action.Registry

	// Sources are the enumerated candidate files, ascending priority.
	Sources []Source

	// Warnings are the lenient-mode warnings from every loaded file.
	Warnings []Warning

	// Conflicts are the collisions recorded during merging.
	Conflicts []action.Conflict
}

// BuildRegistry runs the full pipeline. Every problem found in one pass
// is aggregated; on failure the error is a *action.BuildError and no
// registry exists. Concurrent calls are independent: nothing here
// touches shared mutable state.
func BuildRegistry(opts Options) (*Build, error) {
	sources, err := Sources(opts.WorkDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	loader := NewLoader(opts.Strict)
	loaded := make([]*Loaded, 0, len(sources))
	var problems []error
	for _, src := range sources {
		ld, err := loader.Load(src)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if ld != nil {
			loaded = append(loaded, ld)
		}
	}
	if len(problems) > 0 {
		return nil, &action.BuildError{Errors: problems}
	}

	merged := Merge(loaded, opts.Strategy)

	registry, err := action.NewRegistry(action.RegistryInput{
		Actions:     merged.Actions,
		KeyBindings: merged.KeyBindings,
		Environment: merged.Environment,
		Conflicts:   merged.Conflicts,
	})
	if err != nil {
		return nil, err
	}

	return &Build{
		Registry:  registry,
		Sources:   sources,
		Warnings:  merged.Warnings,
		Conflicts: merged.Conflicts,
	}, nil
}
