package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seismotools/mtstash/internal/catalog"
	"github.com/seismotools/mtstash/internal/ingest"
	"github.com/seismotools/mtstash/internal/schema"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <data-dir>",
		Short: "Ingest moment-tensor records into the stash",
		Long: `Ingest moment-tensor records from a local CSV or XLSX file, or from the
remote canonical catalog when no file is given.

Records are validated against the required schema, tagged with a
provenance source, appended to <data-dir>/moment_tensors.db, and the
active-database pointer is rewritten to reference that file.`,
		Example: `  # Ingest a local CSV, tagged with the default source "user"
  mtstash ingest ./data --file tensors.csv

  # Ingest an XLSX workbook under an explicit source tag
  mtstash ingest ./data --file survey.xlsx --source fieldwork-2025

  # Let the file's own embedded source column win
  mtstash ingest ./data --file merged.csv --source-from-file

  # No file: fetch the canonical catalog
  mtstash ingest ./data`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args)
		},
	}

	cmd.Flags().String("file", "", "Local input file (omit to fetch the canonical catalog)")
	cmd.Flags().String("source", "", "Provenance tag for local-file records (default \"user\")")
	cmd.Flags().Bool("source-from-file", false, "Prefer the file's embedded source column over the default tag")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	dataDir := cfg.DataDir
	if len(args) > 0 {
		dataDir = args[0]
	}
	if dataDir == "" {
		return fmt.Errorf("data directory is required (argument or --data-dir)")
	}

	filePath, _ := cmd.Flags().GetString("file")
	sourceTag, _ := cmd.Flags().GetString("source")
	fromFile, _ := cmd.Flags().GetBool("source-from-file")

	// The source spec is the caller-visible tri-state: --source-from-file
	// prefers an embedded column, an explicit --source always wins, and
	// otherwise the configured default tag applies.
	var srcSpec schema.SourceSpec
	switch {
	case cmd.Flags().Changed("source") && sourceTag != "":
		srcSpec = schema.ExplicitSource(sourceTag)
	case fromFile:
		srcSpec = schema.EmbeddedSource()
	case cfg.Source != "":
		srcSpec = schema.ExplicitSource(cfg.Source)
	}

	ing := ingest.New(catalog.New(cfg.CatalogURL, logger), logger)
	res, err := ing.Run(cmd.Context(), ingest.Options{
		DataDir:     dataDir,
		FilePath:    filePath,
		Source:      srcSpec,
		PointerPath: cfg.PointerPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Committed %d records (source %q) to %s\n",
		res.Records, res.Source, res.DBPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Active database pointer: %s\n", res.PointerPath)
	return nil
}
