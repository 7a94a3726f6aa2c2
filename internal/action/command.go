package action

import (
	"encoding/json"
	"fmt"

	"github.com/google/shlex"
)

// BuiltinOp is a natively implemented viewer operation.
type BuiltinOp string

// The fixed set of native operations a builtin command may name.
const (
	OpQuit              BuiltinOp = "quit"
	OpToggleSelection   BuiltinOp = "toggleSelection"
	OpSelectAll         BuiltinOp = "selectAll"
	OpClearSelection    BuiltinOp = "clearSelection"
	OpScrollUp          BuiltinOp = "scrollUp"
	OpScrollDown        BuiltinOp = "scrollDown"
	OpPageUp            BuiltinOp = "pageUp"
	OpPageDown          BuiltinOp = "pageDown"
	OpGoToStart         BuiltinOp = "goToStart"
	OpGoToEnd           BuiltinOp = "goToEnd"
	OpShowHelp          BuiltinOp = "showHelp"
	OpReload            BuiltinOp = "reload"
	OpToggleLineNumbers BuiltinOp = "toggleLineNumbers"
)

// builtinOps is the set of valid builtin operations.
var builtinOps = map[BuiltinOp]struct{}{
	OpQuit: {}, OpToggleSelection: {}, OpSelectAll: {}, OpClearSelection: {},
	OpScrollUp: {}, OpScrollDown: {}, OpPageUp: {}, OpPageDown: {},
	OpGoToStart: {}, OpGoToEnd: {}, OpShowHelp: {}, OpReload: {},
	OpToggleLineNumbers: {},
}

// IsValid reports whether op names a known native operation.
func (op BuiltinOp) IsValid() bool {
	_, ok := builtinOps[op]
	return ok
}

// CommandType tags a structured command variant.
type CommandType string

const (
	// CommandBuiltin runs a native viewer operation.
	CommandBuiltin CommandType = "builtin"

	// CommandExternal spawns an external program directly.
	CommandExternal CommandType = "external"

	// CommandScript runs a command line through the configured shell.
	CommandScript CommandType = "script"

	// CommandSequence runs nested commands in order.
	CommandSequence CommandType = "sequence"
)

// Command is a structured command: a tagged variant over builtin,
// external, script, and sequence.
type Command struct {
	Type CommandType `json:"type"`

	// Builtin is the native operation, for type "builtin".
	Builtin BuiltinOp `json:"builtin,omitempty"`

	// Command is the program (external) or command line (script).
	Command string `json:"command,omitempty"`

	// Args are program arguments, for type "external".
	Args []string `json:"args,omitempty"`

	// Timeout is the per-command timeout in milliseconds.
	Timeout int `json:"timeout,omitempty"`

	// Environment holds extra environment variables for the command.
	Environment map[string]string `json:"environment,omitempty"`

	// WorkingDirectory is the directory the command runs in.
	WorkingDirectory string `json:"workingDirectory,omitempty"`

	// Sequence holds the nested commands, for type "sequence".
	Sequence []Command `json:"sequence,omitempty"`
}

// Validate checks the variant-specific requirements, recursing into
// sequences. The returned messages are suitable as schema violation text.
func (c *Command) Validate() []string {
	var problems []string
	switch c.Type {
	case CommandBuiltin:
		if c.Builtin == "" {
			problems = append(problems, "builtin command requires a builtin operation")
		} else if !c.Builtin.IsValid() {
			problems = append(problems, fmt.Sprintf("unknown builtin operation %q", c.Builtin))
		}
	case CommandExternal, CommandScript:
		if c.Command == "" {
			problems = append(problems, fmt.Sprintf("%s command requires a command", c.Type))
		}
	case CommandSequence:
		if len(c.Sequence) == 0 {
			problems = append(problems, "sequence command requires at least one nested command")
		}
		for i := range c.Sequence {
			for _, p := range c.Sequence[i].Validate() {
				problems = append(problems, fmt.Sprintf("sequence[%d]: %s", i, p))
			}
		}
	case "":
		problems = append(problems, "structured command requires a type")
	default:
		problems = append(problems, fmt.Sprintf("unknown command type %q", c.Type))
	}
	if c.Timeout < 0 {
		problems = append(problems, "timeout must not be negative")
	}
	return problems
}

// Script is an action's command: either a plain template string or a
// structured command. Exactly one of Text and Command is set.
type Script struct {
	// Text is the plain command template, for the string form.
	Text string

	// Command is the structured form; nil for the string form.
	Command *Command
}

// IsStructured reports whether the script uses the structured form.
func (s Script) IsStructured() bool {
	return s.Command != nil
}

// Validate checks variant-specific requirements.
func (s Script) Validate() []string {
	if s.Command != nil {
		return s.Command.Validate()
	}
	if s.Text == "" {
		return []string{"script must not be empty"}
	}
	return nil
}

// Argv splits a plain-string script into an argument vector for the
// downstream executor, honoring shell-style quoting. Structured scripts
// return their command and args directly; sequences and builtins have no
// argv.
func (s Script) Argv() ([]string, error) {
	if s.Command == nil {
		return shlex.Split(s.Text)
	}
	switch s.Command.Type {
	case CommandExternal:
		return append([]string{s.Command.Command}, s.Command.Args...), nil
	case CommandScript:
		return shlex.Split(s.Command.Command)
	default:
		return nil, fmt.Errorf("command type %q has no argument vector", s.Command.Type)
	}
}

// UnmarshalJSON accepts either a JSON string or a structured command
// object.
func (s *Script) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Text)
	}
	cmd := &Command{}
	if err := json.Unmarshal(data, cmd); err != nil {
		return fmt.Errorf("script must be a string or a structured command: %w", err)
	}
	s.Command = cmd
	return nil
}

// MarshalJSON writes the string form as a JSON string and the structured
// form as an object.
func (s Script) MarshalJSON() ([]byte, error) {
	if s.Command != nil {
		return json.Marshal(s.Command)
	}
	return json.Marshal(s.Text)
}
