package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestWriteStarterConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDirName, ConfigFileName)
	if err := WriteStarterConfig(path, "my-project"); err != nil {
		t.Fatalf("WriteStarterConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "metadata.name").String(); got != "my-project" {
		t.Errorf("metadata.name = %q", got)
	}
	if got := gjson.GetBytes(data, "metadata.created").String(); got == "" {
		t.Error("metadata.created not stamped")
	}

	// The scaffold has to pass its own validation.
	src := Source{Kind: SourceExplicit, Path: path, Priority: PriorityExplicit}
	ld, err := NewLoader(true).Load(src)
	if err != nil {
		t.Fatalf("starter config does not validate: %v", err)
	}
	if len(ld.Config.Actions) != 2 {
		t.Errorf("actions = %+v, want the two examples", ld.Config.Actions)
	}
}

func TestWriteStarterConfigRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteStarterConfig(path, "x")
	if err == nil {
		t.Fatal("existing file overwritten")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("err = %v", err)
	}
}
