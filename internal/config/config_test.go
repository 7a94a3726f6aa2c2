package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hiliner/hiliner/internal/action"
)

// layout builds an isolated home, XDG config dir, and work dir so the
// discovered sources point inside the test's temp tree.
func layout(t *testing.T) (home, work string) {
	t.Helper()
	root := t.TempDir()
	home = filepath.Join(root, "home")
	work = filepath.Join(root, "work")
	xdg := filepath.Join(root, "xdg")
	for _, dir := range []string{home, work, xdg} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return home, work
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildRegistryLayeredOverride(t *testing.T) {
	home, work := layout(t)

	writeConfig(t, filepath.Join(home, ConfigDirName, ConfigFileName), `{
		"version": "1.0.0",
		"actions": [
			{"id": "deploy", "description": "user deploy", "key": "D", "script": "echo user"}
		],
		"environment": {"shell": "zsh", "variables": {"USER_VAR": "u"}}
	}`)
	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `{
		"version": "1.2.0",
		"actions": [
			{"id": "deploy", "description": "project deploy", "key": "D", "script": "echo project"}
		],
		"environment": {"timeout": 5000}
	}`)

	build, err := BuildRegistry(Options{WorkDir: work})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	def, ok := build.Registry.ActionByID("deploy")
	if !ok {
		t.Fatal("deploy not registered")
	}
	if def.Script.Text != "echo project" {
		t.Errorf("script = %q, want project's", def.Script.Text)
	}

	env := build.Registry.EnvironmentContext()
	if env.Shell != "zsh" {
		t.Errorf("shell = %q, want user's to survive", env.Shell)
	}
	if env.Timeout != 5000 {
		t.Errorf("timeout = %d, want project's", env.Timeout)
	}

	if len(build.Sources) != 3 {
		t.Errorf("sources = %+v, want three discovered candidates", build.Sources)
	}
}

func TestBuildRegistryNoFilesYieldsBuiltins(t *testing.T) {
	_, work := layout(t)

	build, err := BuildRegistry(Options{WorkDir: work})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if _, ok := build.Registry.ActionByID("quit"); !ok {
		t.Error("builtins missing from an empty configuration")
	}
	if len(build.Warnings) != 0 || len(build.Conflicts) != 0 {
		t.Errorf("warnings=%v conflicts=%v, want none", build.Warnings, build.Conflicts)
	}
}

func TestBuildRegistryExplicitMissingIsFatal(t *testing.T) {
	_, work := layout(t)

	_, err := BuildRegistry(Options{WorkDir: work, ConfigPath: filepath.Join(work, "absent.json")})
	if err == nil {
		t.Fatal("missing explicit path did not fail")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}
}

func TestBuildRegistryCriticalOverrideIsFatal(t *testing.T) {
	_, work := layout(t)

	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `{
		"version": "1.0.0",
		"actions": [
			{"id": "quit", "description": "hijack", "key": "q", "script": "rm -rf /"}
		]
	}`)

	_, err := BuildRegistry(Options{WorkDir: work})
	if err == nil {
		t.Fatal("critical override did not fail")
	}
	if !errors.Is(err, action.ErrCriticalBuiltinOverride) {
		t.Errorf("err = %v, want ErrCriticalBuiltinOverride", err)
	}
}

func TestBuildRegistryAggregatesLoadProblems(t *testing.T) {
	home, work := layout(t)

	writeConfig(t, filepath.Join(home, ConfigDirName, ConfigFileName), `{not json`)
	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `   `)

	_, err := BuildRegistry(Options{WorkDir: work})
	if err == nil {
		t.Fatal("broken files did not fail")
	}
	var build *action.BuildError
	if !errors.As(err, &build) {
		t.Fatalf("err = %T, want *action.BuildError", err)
	}
	if len(build.Errors) != 2 {
		t.Errorf("problems = %v, want both files reported", build.Errors)
	}
}

func TestBuildRegistryLenientSurfacesWarnings(t *testing.T) {
	_, work := layout(t)

	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `{
		"version": "1.0.0",
		"actions": [
			{"id": "good", "description": "fine", "key": "1", "script": "echo ok"},
			{"id": "2bad", "description": "broken id", "key": "2", "script": "echo no"}
		]
	}`)

	build, err := BuildRegistry(Options{WorkDir: work})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if _, ok := build.Registry.ActionByID("good"); !ok {
		t.Error("valid action dropped alongside the invalid one")
	}
	if _, ok := build.Registry.ActionByID("2bad"); ok {
		t.Error("invalid action registered")
	}
	if len(build.Warnings) == 0 {
		t.Error("dropped action left no warning")
	}
}

func TestBuildRegistryStrictRejectsWholeFile(t *testing.T) {
	_, work := layout(t)

	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `{
		"version": "1.0.0",
		"actions": [
			{"id": "good", "description": "fine", "key": "1", "script": "echo ok"},
			{"id": "2bad", "description": "broken id", "key": "2", "script": "echo no"}
		]
	}`)

	_, err := BuildRegistry(Options{WorkDir: work, Strict: true})
	if err == nil {
		t.Fatal("strict mode accepted an invalid file")
	}
	var load *LoadError
	if !errors.As(err, &load) {
		t.Fatalf("err = %v, want to unwrap to *LoadError", err)
	}
	if load.Kind != KindValidation {
		t.Errorf("kind = %v, want KindValidation", load.Kind)
	}
}

func TestBuildRegistryExplicitWinsOverProject(t *testing.T) {
	_, work := layout(t)

	writeConfig(t, filepath.Join(work, ConfigDirName, ConfigFileName), `{
		"version": "1.0.0",
		"actions": [{"id": "x", "description": "proj", "key": "X", "script": "echo proj"}]
	}`)
	explicit := filepath.Join(work, "override.json")
	writeConfig(t, explicit, `{
		"version": "1.0.0",
		"actions": [{"id": "x", "description": "explicit", "key": "X", "script": "echo explicit"}]
	}`)

	build, err := BuildRegistry(Options{WorkDir: work, ConfigPath: explicit})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	def, ok := build.Registry.ActionByID("x")
	if !ok {
		t.Fatal("x not registered")
	}
	if def.Script.Text != "echo explicit" {
		t.Errorf("script = %q, want explicit source's", def.Script.Text)
	}
}
