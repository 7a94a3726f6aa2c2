package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"

	"github.com/hiliner/hiliner/internal/action"
	"github.com/hiliner/hiliner/internal/config/schema"
)

// FileSystem abstracts file reads so loading can be tested against an
// in-memory tree.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loaded is one successfully loaded configuration file.
type Loaded struct {
	// Source is where the config came from.
	Source Source

	// Config is the parsed and validated document.
	Config *action.Config

	// Warnings records actions dropped in lenient mode.
	Warnings []Warning
}

// Loader reads, parses, and schema-validates configuration files.
type Loader struct {
	fs     FileSystem
	strict bool
}

// NewLoader creates a loader. In strict mode any invalid action aborts
// the whole file; otherwise invalid actions are dropped with a recorded
// warning and the rest of the file still loads.
func NewLoader(strict bool) *Loader {
	return &Loader{fs: OSFS{}, strict: strict}
}

// WithFS substitutes the file system, for tests.
func (l *Loader) WithFS(fsys FileSystem) *Loader {
	l.fs = fsys
	return l
}

// Load reads one configuration source.
//
// The missing-file contract is asymmetric on purpose: an absent
// auto-discovered file means "no config contributed" and returns
// (nil, nil), while an absent explicitly-requested file is a hard
// error. The first encodes optional layering, the second a direct user
// request that could not be honored.
func (l *Loader) Load(src Source) (*Loaded, error) {
	data, err := l.fs.ReadFile(src.Path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if src.Explicit() {
				return nil, &LoadError{Kind: KindFileNotFound, Path: src.Path, Err: ErrFileNotFound}
			}
			return nil, nil
		case errors.Is(err, fs.ErrPermission):
			return nil, &LoadError{Kind: KindPermission, Path: src.Path, Err: err}
		default:
			return nil, &LoadError{Kind: KindFileSystem, Path: src.Path, Err: err}
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Kind: KindParse, Path: src.Path, Err: ErrEmptyFile}
	}

	isTOML := strings.EqualFold(filepath.Ext(src.Path), ".toml")

	doc, perr := parseDocument(src.Path, data, isTOML)
	if perr != nil {
		return nil, perr
	}

	// Document-level validation, with action elements set aside for
	// per-element handling below.
	docSchema := schema.Document()
	docSchema.Properties["actions"].Items = &schema.Schema{Type: schema.TypeAny}
	top := &schema.Violations{}
	docSchema.ValidateInto("", doc, top)

	rawActions, _ := doc["actions"].([]any)
	actionSchema := schema.Action()

	var (
		kept     []action.Definition
		warnings []Warning
		all      = &schema.Violations{}
	)
	all.Merge(top)

	for i, elem := range rawActions {
		loc := fmt.Sprintf("actions[%d]", i)
		vs := &schema.Violations{}
		actionSchema.ValidateInto(loc, elem, vs)

		var def action.Definition
		if !vs.HasViolations() {
			if err := decodeElement(elem, &def); err != nil {
				vs.Add(loc, err.Error())
			} else {
				for _, msg := range def.Script.Validate() {
					vs.Add(loc+".script", msg)
				}
			}
		}

		if !vs.HasViolations() {
			kept = append(kept, def)
			continue
		}

		if l.strict {
			all.Merge(vs)
			continue
		}
		for _, v := range vs.List() {
			warnings = append(warnings, Warning{
				Path:     src.Path,
				Location: v.Location,
				Message:  droppedMessage(data, isTOML, i, v.Message),
			})
		}
	}

	if l.strict {
		if all.HasViolations() {
			return nil, &LoadError{Kind: KindValidation, Path: src.Path, Violations: all.List()}
		}
	} else if top.HasViolations() {
		return nil, &LoadError{Kind: KindValidation, Path: src.Path, Violations: top.List()}
	}

	cfg, err := decodeConfig(doc)
	if err != nil {
		return nil, &LoadError{Kind: KindParse, Path: src.Path, Err: err}
	}
	cfg.Actions = kept

	return &Loaded{Source: src, Config: cfg, Warnings: warnings}, nil
}

// parseDocument parses raw bytes into a generic document map.
func parseDocument(path string, data []byte, isTOML bool) (map[string]any, *LoadError) {
	var doc map[string]any
	if isTOML {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Kind: KindParse, Path: path, Err: err}
		}
		// Round-trip through JSON so TOML documents validate against the
		// same value shapes JSON ones do.
		if err := decodeElement(raw, &doc); err != nil {
			return nil, &LoadError{Kind: KindParse, Path: path, Err: err}
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		le := &LoadError{Kind: KindParse, Path: path, Err: err}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			le.Line, le.Column = offsetToPosition(data, syn.Offset)
		}
		return nil, le
	}
	return doc, nil
}

// offsetToPosition converts a byte offset into a 1-based line and column.
func offsetToPosition(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// decodeElement decodes one generic value into a typed destination by
// round-tripping through JSON. TOML documents take the same path, which
// keeps Script's string-or-object handling in one place.
func decodeElement(elem any, dst any) error {
	raw, err := json.Marshal(elem)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// decodeConfig decodes the document's non-action fields.
func decodeConfig(doc map[string]any) (*action.Config, error) {
	top := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "actions" {
			continue
		}
		top[k] = v
	}
	cfg := &action.Config{}
	if err := decodeElement(top, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// droppedMessage annotates a lenient-mode warning with the dropped
// action's id when the raw document can still tell us what it was.
func droppedMessage(data []byte, isTOML bool, index int, message string) string {
	if isTOML {
		return message
	}
	id := gjson.GetBytes(data, fmt.Sprintf("actions.%d.id", index))
	if !id.Exists() || id.String() == "" {
		return message
	}
	return fmt.Sprintf("dropped action %q: %s", id.String(), message)
}
