// Package pointer maintains the active-database pointer: a small INI file
// holding the location of the most recently committed moment-tensor store.
// Later consumers read it to find the database without being told the path.
package pointer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	// Section and Key locate the pointer entry inside the INI file.
	Section = "DATA"
	Key     = "dbfile"

	fileName = "mtstash.ini"
)

// WriteError reports that the pointer file could not be written. When it
// follows a confirmed store commit, the database holds the new records but
// the pointer is stale.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write config pointer %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DefaultPath returns the per-user pointer file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "mtstash", fileName), nil
}

// Writer owns the pointer file. Each Set replaces the file wholesale; prior
// contents are never merged. Last successful ingestion run wins.
type Writer struct {
	path string
}

// NewWriter returns a Writer for the given pointer file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the pointer file location.
func (w *Writer) Path() string { return w.path }

// Set rewrites the pointer to reference dbfile. The new contents are staged
// to a temp file and renamed into place so a crash mid-write never leaves a
// truncated pointer.
func (w *Writer) Set(dbfile string) error {
	cfg := ini.Empty()
	cfg.Section(Section).Key(Key).SetValue(dbfile)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return &WriteError{Path: w.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o750); err != nil {
		return &WriteError{Path: w.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), fileName+".tmp-*")
	if err != nil {
		return &WriteError{Path: w.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: w.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: w.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: w.path, Err: err}
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: w.path, Err: err}
	}
	return nil
}

// Get reads the active database location from the pointer file.
func (w *Writer) Get() (string, error) {
	cfg, err := ini.Load(w.path)
	if err != nil {
		return "", fmt.Errorf("read config pointer %s: %w", w.path, err)
	}
	dbfile := cfg.Section(Section).Key(Key).String()
	if dbfile == "" {
		return "", fmt.Errorf("config pointer %s has no %s.%s entry", w.path, Section, Key)
	}
	return dbfile, nil
}
