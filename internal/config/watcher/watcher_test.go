package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no event observed")
		return Event{}
	}
}

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "action-config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.SetDebounce(10 * time.Millisecond)

	events := make(chan Event, 1)
	w.OnChange(func(ev Event) { events <- ev })

	if err := os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	if ev.Path != path {
		t.Errorf("path = %q, want %q", ev.Path, path)
	}
	if ev.Op != OpWrite && ev.Op != OpCreate {
		t.Errorf("op = %v", ev.Op)
	}
}

func TestWatcherPicksUpCreatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "action-config.json")

	w, err := New([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.SetDebounce(10 * time.Millisecond)

	events := make(chan Event, 1)
	w.OnChange(func(ev Event) { events <- ev })

	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	if ev.Op != OpCreate && ev.Op != OpWrite {
		t.Errorf("op = %v", ev.Op)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "action-config.json")
	other := filepath.Join(dir, "unrelated.txt")

	w, err := New([]string{watched})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.SetDebounce(10 * time.Millisecond)

	events := make(chan Event, 1)
	w.OnChange(func(ev Event) { events <- ev })

	if err := os.WriteFile(other, []byte("noise"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected event for %q", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "action-config.json")})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherRejectsEmptyPathSet(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("empty path set accepted")
	}
}
