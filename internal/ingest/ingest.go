// Package ingest orchestrates one moment-tensor ingestion run: load a local
// file or fetch the canonical catalog, normalize and tag the records, then
// commit them to the store and rewrite the active-database pointer.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seismotools/mtstash/internal/pointer"
	"github.com/seismotools/mtstash/internal/schema"
	"github.com/seismotools/mtstash/internal/store"
	"github.com/seismotools/mtstash/internal/tabular"
)

// Fetcher obtains the canonical catalog as a normalized dataset.
type Fetcher interface {
	FetchCanonical(ctx context.Context) (*schema.Dataset, error)
}

// Options configure one ingestion run.
type Options struct {
	// DataDir is where the database file lives (or is created).
	DataDir string
	// FilePath is the local input file. Empty selects the remote-fetch path.
	FilePath string
	// Source is the caller's provenance choice for local-file runs. Remote
	// runs ignore it; catalog records always carry the catalog tag.
	Source schema.SourceSpec
	// PointerPath overrides the per-user config pointer location. Empty
	// selects pointer.DefaultPath.
	PointerPath string
}

// Result summarizes a successful run.
type Result struct {
	Records     int
	Source      string
	DBPath      string
	PointerPath string
}

// Ingestor runs ingestion end to end. A run is synchronous and either
// commits fully or leaves the database and pointer untouched; the one
// exception is a pointer-write failure after a confirmed store commit,
// reported as *PointerStaleError.
type Ingestor struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// New returns an Ingestor. The fetcher may be nil if only local-file runs
// are performed.
func New(fetcher Fetcher, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{fetcher: fetcher, logger: logger}
}

// Run executes one ingestion run.
func (ing *Ingestor) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	var (
		ds  *schema.Dataset
		err error
	)
	if opts.FilePath != "" {
		ds, err = ing.loadLocal(opts.FilePath, opts.Source)
	} else {
		ds, err = ing.fetchRemote(ctx)
	}
	if err != nil {
		return nil, err
	}

	return ing.commit(ctx, opts, ds)
}

// loadLocal runs the local-file path: existence check, format-sniffed load,
// schema projection, source resolution.
func (ing *Ingestor) loadLocal(path string, spec schema.SourceSpec) (*schema.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &MissingFileError{Path: path}
	}

	ing.logger.Debug("loading local file", "path", path)

	tbl, err := tabular.Load(path)
	if err != nil {
		return nil, withColumnGuidance(err)
	}

	ds, err := schema.Project(tbl)
	if err != nil {
		return nil, withColumnGuidance(err)
	}

	ds.SetSource(schema.ResolveSource(spec, tbl))
	ing.logger.Debug("local file loaded", "records", ds.Len(), "source", ds.Source)
	return ds, nil
}

// fetchRemote runs the remote-fetch path. The catalog client validates its
// own output, so the dataset arrives normalized and tagged.
func (ing *Ingestor) fetchRemote(ctx context.Context) (*schema.Dataset, error) {
	if ing.fetcher == nil {
		return nil, fmt.Errorf("no catalog fetcher configured and no input file supplied")
	}
	return ing.fetcher.FetchCanonical(ctx)
}

// commit stashes the dataset and rewrites the config pointer, serialized by
// an advisory lock on the data directory. Reached only with a fully
// normalized, tagged dataset in hand.
func (ing *Ingestor) commit(ctx context.Context, opts Options, ds *schema.Dataset) (*Result, error) {
	if err := os.MkdirAll(opts.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	dbPath := filepath.Join(opts.DataDir, store.DBFileName)

	lock, err := acquireCommitLock(dbPath + ".lock")
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.release() }()

	st, err := store.Open(dbPath, true, ing.logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	if err := st.Stash(ctx, ds); err != nil {
		return nil, err
	}

	ptrPath := opts.PointerPath
	if ptrPath == "" {
		ptrPath, err = pointer.DefaultPath()
		if err != nil {
			return nil, &PointerStaleError{DBPath: dbPath, Err: err}
		}
	}
	if err := pointer.NewWriter(ptrPath).Set(dbPath); err != nil {
		// The stash is already committed; report the stale pointer
		// distinctly from an aborted run.
		return nil, &PointerStaleError{DBPath: dbPath, Err: err}
	}

	ing.logger.Info("ingestion committed",
		"records", ds.Len(), "source", ds.Source, "db", dbPath, "pointer", ptrPath)

	return &Result{
		Records:     ds.Len(),
		Source:      ds.Source,
		DBPath:      dbPath,
		PointerPath: ptrPath,
	}, nil
}

// withColumnGuidance appends the required-column list to schema failures so
// the user sees what a conforming file must carry.
func withColumnGuidance(err error) error {
	var ferr *tabular.FormatError
	if errors.As(err, &ferr) {
		return fmt.Errorf("%w (required columns: %s)", err, strings.Join(schema.RequiredColumns, ", "))
	}
	return err
}
