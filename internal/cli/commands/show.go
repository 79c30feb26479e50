package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/seismotools/mtstash/internal/pointer"
	"github.com/seismotools/mtstash/internal/schema"
	"github.com/seismotools/mtstash/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stashed moment-tensor records",
		Long: `Display the records in the active moment-tensor database.

The database is located through the config pointer written by the most
recent successful ingestion run.`,
		Example: `  # Show all records
  mtstash show

  # Show only records from one provenance source
  mtstash show --source gcmt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd)
		},
	}

	cmd.Flags().String("source", "", "Only show records with this provenance tag")

	return cmd
}

func runShow(cmd *cobra.Command) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	st, err := openActiveStore(cfg.PointerPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sourceTag, _ := cmd.Flags().GetString("source")

	var ds *schema.Dataset
	if sourceTag != "" {
		ds, err = st.FetchBySource(cmd.Context(), sourceTag)
	} else {
		ds, err = st.Fetch(cmd.Context())
	}
	if err != nil {
		return err
	}

	if ds.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(0 records)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"time", "lat", "lon", "depth", "mag", "mrr", "mtt", "mpp", "mrt", "mrp", "mtp", "source"})
	for _, rec := range ds.Records {
		t.AppendRow(table.Row{
			rec.Time.Format(time.RFC3339),
			fmtFloat(rec.Lat), fmtFloat(rec.Lon), fmtFloat(rec.Depth), fmtFloat(rec.Mag),
			fmtFloat(rec.Mrr), fmtFloat(rec.Mtt), fmtFloat(rec.Mpp),
			fmtFloat(rec.Mrt), fmtFloat(rec.Mrp), fmtFloat(rec.Mtp),
			rec.Source,
		})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d records in %s\n", ds.Len(), st.Path())
	return nil
}

// openActiveStore resolves the config pointer and opens the database it
// references. The database must already exist; read commands never create one.
func openActiveStore(pointerPath string, logger *slog.Logger) (*store.Store, error) {
	var err error
	if pointerPath == "" {
		pointerPath, err = pointer.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	dbPath, err := pointer.NewWriter(pointerPath).Get()
	if err != nil {
		return nil, fmt.Errorf("no active database (run ingest first): %w", err)
	}

	return store.Open(dbPath, false, logger)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
