package ingest

import "fmt"

// MissingFileError reports that the local input file does not exist. It is
// raised before any loading or store work begins.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("input file does not exist: %s", e.Path)
}

// LockedError reports that another run holds the commit lock for the same
// database. The caller may retry; nothing was written.
type LockedError struct {
	Path string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("database is locked by another ingestion run: %s", e.Path)
}

// PointerStaleError reports a pointer rewrite failure after the store commit
// succeeded: the database holds the new records, but the active-database
// pointer still references the previous location.
type PointerStaleError struct {
	DBPath string
	Err    error
}

func (e *PointerStaleError) Error() string {
	return fmt.Sprintf("records committed to %s but config pointer update failed: %v", e.DBPath, e.Err)
}

func (e *PointerStaleError) Unwrap() error { return e.Err }
