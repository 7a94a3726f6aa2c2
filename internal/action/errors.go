package action

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by registry construction.
var (
	// ErrKeyBindingConflict indicates two actions claim the same key.
	ErrKeyBindingConflict = errors.New("key binding conflict")

	// ErrCriticalBuiltinOverride indicates configuration tried to replace
	// a protected builtin.
	ErrCriticalBuiltinOverride = errors.New("cannot override critical built-in")
)

// KeyConflictError reports one key claimed by more than one action.
type KeyConflictError struct {
	// Key is the contested key token.
	Key string

	// ActionIDs are the ids claiming the key.
	ActionIDs []string

	// BuiltinID names the builtin involved, if one side is a builtin.
	BuiltinID string
}

// Error implements the error interface.
func (e *KeyConflictError) Error() string {
	if e.BuiltinID != "" {
		return fmt.Sprintf("key binding conflict: key %q is already bound to built-in action %q (claimed by %s)",
			e.Key, e.BuiltinID, strings.Join(e.ActionIDs, ", "))
	}
	return fmt.Sprintf("key binding conflict: key %q is claimed by actions %s",
		e.Key, strings.Join(e.ActionIDs, ", "))
}

// Is implements error matching for ErrKeyBindingConflict.
func (e *KeyConflictError) Is(target error) bool {
	return target == ErrKeyBindingConflict
}

// CriticalOverrideError reports an attempt to redefine a protected
// builtin.
type CriticalOverrideError struct {
	// ID is the protected builtin id.
	ID string
}

// Error implements the error interface.
func (e *CriticalOverrideError) Error() string {
	return fmt.Sprintf("cannot override critical built-in action %q", e.ID)
}

// Is implements error matching for ErrCriticalBuiltinOverride.
func (e *CriticalOverrideError) Is(target error) bool {
	return target == ErrCriticalBuiltinOverride
}

// DefinitionError reports an invalid action definition.
type DefinitionError struct {
	// ID is the offending action id ("" when the id itself is missing).
	ID string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid action: %s", e.Message)
	}
	return fmt.Sprintf("invalid action %q: %s", e.ID, e.Message)
}

// BuildError aggregates every problem found during one registry
// construction. Construction never stops at the first issue.
type BuildError struct {
	// Errors holds each individual problem.
	Errors []error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("registry construction failed: %s", e.Errors[0])
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("registry construction failed with %d problems:\n  - %s",
		len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	return e.Errors
}

// ConflictKeys returns the contested keys from every key conflict in the
// aggregate.
func (e *BuildError) ConflictKeys() []string {
	var keys []string
	for _, err := range e.Errors {
		var kc *KeyConflictError
		if errors.As(err, &kc) {
			keys = append(keys, kc.Key)
		}
	}
	return keys
}
