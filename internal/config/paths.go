package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the discovered configuration file name.
const ConfigFileName = "action-config.json"

// ConfigDirName is the dot-directory configuration lives in.
const ConfigDirName = ".hiliner"

// SourceKind identifies where a configuration source sits in the
// priority order.
type SourceKind uint8

const (
	// SourceSystem is the OS-standard config directory.
	SourceSystem SourceKind = iota
	// SourceUser is the user's home config.
	SourceUser
	// SourceProject is the project-local config.
	SourceProject
	// SourceExplicit is a path the user named directly.
	SourceExplicit
)

// String returns a human-readable name for the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceSystem:
		return "system"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Priority levels for configuration sources. Higher overrides lower
// during merging.
const (
	PrioritySystem   = 0
	PriorityUser     = 100
	PriorityProject  = 200
	PriorityExplicit = 300
)

// Source is one candidate configuration file.
type Source struct {
	// Kind identifies the source.
	Kind SourceKind

	// Path is the canonicalized file path.
	Path string

	// Priority determines merge order.
	Priority int
}

// Explicit reports whether a missing file is fatal for this source.
func (s Source) Explicit() bool {
	return s.Kind == SourceExplicit
}

// Sources returns the candidate configuration files in ascending
// priority order: OS-standard, user home, project local, and the
// explicit override when one is given. This performs no file I/O; the
// paths are candidates, not guaranteed to exist.
//
// A relative explicit path resolves against workDir; a leading "~"
// expands to the user's home directory.
func Sources(workDir, explicit string) ([]Source, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	system, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	sources := []Source{
		{
			Kind:     SourceSystem,
			Path:     filepath.Join(system, "hiliner", ConfigFileName),
			Priority: PrioritySystem,
		},
		{
			Kind:     SourceUser,
			Path:     filepath.Join(home, ConfigDirName, ConfigFileName),
			Priority: PriorityUser,
		},
		{
			Kind:     SourceProject,
			Path:     filepath.Join(workDir, ConfigDirName, ConfigFileName),
			Priority: PriorityProject,
		},
	}

	if explicit != "" {
		path, err := resolvePath(explicit, workDir, home)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{
			Kind:     SourceExplicit,
			Path:     path,
			Priority: PriorityExplicit,
		})
	}

	return sources, nil
}

// resolvePath canonicalizes an explicit config path: "~" expands to the
// home directory and relative paths resolve against workDir.
func resolvePath(path, workDir, home string) (string, error) {
	if path == "~" {
		return filepath.Clean(home), nil
	}
	if len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1]) {
		return filepath.Join(home, path[2:]), nil
	}
	if len(path) > 1 && path[0] == '~' {
		return "", fmt.Errorf("cannot expand %q: per-user home lookup is not supported", path)
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(workDir, path), nil
	}
	return filepath.Clean(path), nil
}
