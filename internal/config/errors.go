package config

import (
	"errors"
	"fmt"

	"github.com/hiliner/hiliner/internal/config/schema"
)

// Errors returned by configuration loading.
var (
	// ErrFileNotFound indicates an explicitly requested config file does
	// not exist. Missing auto-discovered files are not errors.
	ErrFileNotFound = errors.New("config file not found")

	// ErrEmptyFile indicates a config file exists but has no content.
	ErrEmptyFile = errors.New("config file is empty")
)

// ErrorKind classifies load failures.
type ErrorKind uint8

const (
	// KindFileNotFound indicates the file does not exist.
	KindFileNotFound ErrorKind = iota
	// KindParse indicates unreadable syntax, including empty files.
	KindParse
	// KindValidation indicates the document violates the schema.
	KindValidation
	// KindPermission indicates the file could not be read for lack of
	// permission.
	KindPermission
	// KindFileSystem indicates any other I/O failure.
	KindFileSystem
)

// String returns a stable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFileNotFound:
		return "file_not_found"
	case KindParse:
		return "parse_error"
	case KindValidation:
		return "validation_error"
	case KindPermission:
		return "permission_error"
	case KindFileSystem:
		return "file_system_error"
	default:
		return "unknown"
	}
}

// LoadError is a typed failure for one configuration file.
type LoadError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path is the file that failed to load.
	Path string

	// Line and Column locate syntax errors when known.
	Line   int
	Column int

	// Violations carries every schema violation for validation errors.
	Violations []schema.Violation

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch e.Kind {
	case KindValidation:
		if len(e.Violations) > 0 {
			return fmt.Sprintf("invalid config %s: %d schema violations (first: %s)",
				e.Path, len(e.Violations), e.Violations[0])
		}
		return fmt.Sprintf("invalid config %s", e.Path)
	case KindParse:
		if e.Line > 0 {
			return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
		}
		return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Warning records an action dropped in lenient mode.
type Warning struct {
	// Path is the file the action came from.
	Path string

	// Location is the dropped action's location within the document.
	Location string

	// Message explains why the action was dropped.
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Path, w.Location, w.Message)
}
