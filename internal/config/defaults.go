package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/sjson"
)

// starterConfig is the scaffold written by WriteStarterConfig. Metadata
// fields are stamped at write time.
const starterConfig = `{
  "version": "1.0.0",
  "metadata": {
    "name": "",
    "description": "Custom actions for hiliner",
    "created": ""
  },
  "actions": [
    {
      "id": "copyLines",
      "name": "Copy Lines",
      "description": "Copy the selected lines to the clipboard",
      "key": "y",
      "script": "printf '%s' '{{selectedText}}' | xclip -selection clipboard",
      "when": { "hasSelection": true }
    },
    {
      "id": "openEditor",
      "name": "Open in Editor",
      "description": "Open the current file in $EDITOR at the cursor line",
      "key": "e",
      "script": "${EDITOR:-vi} +{{currentLine}} {{filePath}}"
    }
  ],
  "keyBindings": {},
  "environment": {
    "variables": {},
    "timeout": 30000,
    "shell": "bash"
  }
}
`

// WriteStarterConfig writes a starter document with example actions to path,
// creating parent directories as needed. It refuses to overwrite an
// existing file.
func WriteStarterConfig(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	doc := []byte(starterConfig)
	doc, err := sjson.SetBytes(doc, "metadata.name", name)
	if err != nil {
		return fmt.Errorf("stamping starter config: %w", err)
	}
	doc, err = sjson.SetBytes(doc, "metadata.created", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("stamping starter config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("writing starter config: %w", err)
	}
	return nil
}
