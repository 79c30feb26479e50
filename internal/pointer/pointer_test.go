package pointer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriter_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtstash.ini")
	w := NewWriter(path)

	if err := w.Set("/data/moment_tensors.db"); err != nil {
		t.Fatalf("failed to set pointer: %v", err)
	}

	got, err := w.Get()
	if err != nil {
		t.Fatalf("failed to get pointer: %v", err)
	}
	if got != "/data/moment_tensors.db" {
		t.Errorf("expected /data/moment_tensors.db, got %q", got)
	}
}

func TestWriter_SetOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtstash.ini")

	// Pre-existing content with a stray section must not survive a Set.
	stale := "[DATA]\ndbfile = /old/moment_tensors.db\n\n[EXTRA]\nkey = value\n"
	if err := os.WriteFile(path, []byte(stale), 0o644); err != nil {
		t.Fatalf("failed to seed pointer file: %v", err)
	}

	w := NewWriter(path)
	if err := w.Set("/new/moment_tensors.db"); err != nil {
		t.Fatalf("failed to set pointer: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read pointer file: %v", err)
	}
	if strings.Contains(string(raw), "EXTRA") {
		t.Error("Set must replace the file wholesale, stale section survived")
	}

	got, err := w.Get()
	if err != nil {
		t.Fatalf("failed to get pointer: %v", err)
	}
	if got != "/new/moment_tensors.db" {
		t.Errorf("expected new location, got %q", got)
	}
}

func TestWriter_SetCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mtstash", "mtstash.ini")

	if err := NewWriter(path).Set("/data/moment_tensors.db"); err != nil {
		t.Fatalf("failed to set pointer in nested dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("pointer file missing: %v", err)
	}
}

func TestWriter_GetMissingFile(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "absent.ini"))
	if _, err := w.Get(); err == nil {
		t.Fatal("expected error for missing pointer file")
	}
}

func TestWriter_GetMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtstash.ini")
	if err := os.WriteFile(path, []byte("[DATA]\nother = x\n"), 0o644); err != nil {
		t.Fatalf("failed to write pointer file: %v", err)
	}

	if _, err := NewWriter(path).Get(); err == nil {
		t.Fatal("expected error for missing dbfile key")
	}
}
