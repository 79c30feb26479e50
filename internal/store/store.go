// Package store persists normalized moment-tensor datasets in SQLite.
// Records are partitioned by provenance source, and every stash appends a
// row to the ingestion-run history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/seismotools/mtstash/internal/schema"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "moment_tensors.db"

// WriteError reports that the store rejected or could not persist a dataset.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IngestRun is one row of the stash history.
type IngestRun struct {
	ID          string
	Source      string
	RowCount    int
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      string
}

// Run statuses.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Store is a SQLite-backed moment-tensor store.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the database at path. With createIfAbsent the file and schema
// are created as needed; without it, a missing database is a *WriteError so
// a mistyped location never silently spawns an empty store. Use ":memory:"
// for tests.
func Open(path string, createIfAbsent bool, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := path
	if path != ":memory:" {
		if !createIfAbsent {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil, &WriteError{Path: path, Err: fmt.Errorf("database does not exist")}
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("open database: %w", err)}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &WriteError{Path: path, Err: fmt.Errorf("ping database: %w", err)}
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, &WriteError{Path: path, Err: err}
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Stash appends the dataset's records, tagged with the dataset source, and
// records the ingestion run in the same transaction. Either both land or
// neither does.
func (s *Store) Stash(ctx context.Context, ds *schema.Dataset) error {
	if s.db == nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("database not opened")}
	}
	if ds.Source == "" {
		return &WriteError{Path: s.path, Err: fmt.Errorf("dataset has no source tag")}
	}

	started := time.Now().UTC()
	s.logger.Debug("stashing dataset", "source", ds.Source, "records", ds.Len(), "path", s.path)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO moment_tensors
		(time, lat, lon, depth, mag, mrr, mtt, mpp, mrt, mrp, mtp, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	for _, rec := range ds.Records {
		if _, err := stmt.ExecContext(ctx,
			rec.Time.UTC().Format(time.RFC3339),
			rec.Lat, rec.Lon, rec.Depth, rec.Mag,
			rec.Mrr, rec.Mtt, rec.Mpp, rec.Mrt, rec.Mrp, rec.Mtp,
			ds.Source,
		); err != nil {
			return &WriteError{Path: s.path, Err: fmt.Errorf("insert record: %w", err)}
		}
	}

	completed := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_runs (id, source, row_count, started_at, completed_at, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), ds.Source, ds.Len(), started, completed, RunStatusCompleted,
	); err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("record ingest run: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("commit: %w", err)}
	}

	s.logger.Info("dataset stashed", "source", ds.Source, "records", ds.Len())
	return nil
}

// Fetch returns every stored record in insertion order. The dataset source
// is set only when all records share one tag.
func (s *Store) Fetch(ctx context.Context) (*schema.Dataset, error) {
	return s.fetch(ctx, `SELECT time, lat, lon, depth, mag, mrr, mtt, mpp, mrt, mrp, mtp, source
		FROM moment_tensors ORDER BY id`)
}

// FetchBySource returns stored records with the given provenance tag.
func (s *Store) FetchBySource(ctx context.Context, source string) (*schema.Dataset, error) {
	return s.fetch(ctx, `SELECT time, lat, lon, depth, mag, mrr, mtt, mpp, mrt, mrp, mtp, source
		FROM moment_tensors WHERE source = ? ORDER BY id`, source)
}

func (s *Store) fetch(ctx context.Context, query string, args ...any) (*schema.Dataset, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	ds := &schema.Dataset{}
	single := ""
	mixed := false
	for rows.Next() {
		var rec schema.Record
		var ts string
		if err := rows.Scan(&ts, &rec.Lat, &rec.Lon, &rec.Depth, &rec.Mag,
			&rec.Mrr, &rec.Mtt, &rec.Mpp, &rec.Mrt, &rec.Mrp, &rec.Mtp, &rec.Source); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Time, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse stored timestamp %q: %w", ts, err)
		}
		if single == "" && !mixed {
			single = rec.Source
		} else if rec.Source != single {
			mixed = true
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	if !mixed {
		ds.Source = single
	}
	return ds, nil
}

// Runs returns the ingestion-run history, most recent first.
func (s *Store) Runs(ctx context.Context) ([]IngestRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, started_at, completed_at, status
		 FROM ingest_runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []IngestRun
	for rows.Next() {
		var run IngestRun
		var completed sql.NullTime
		if err := rows.Scan(&run.ID, &run.Source, &run.RowCount,
			&run.StartedAt, &completed, &run.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if completed.Valid {
			run.CompletedAt = &completed.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
