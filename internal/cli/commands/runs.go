package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List ingestion-run history",
		Long: `List the ingestion runs recorded in the active moment-tensor database,
most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd)
		},
	}
}

func runRuns(cmd *cobra.Command) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	st, err := openActiveStore(cfg.PointerPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	runs, err := st.Runs(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(no ingestion runs)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"id", "source", "records", "started", "status"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID, run.Source, run.RowCount,
			run.StartedAt.Format(time.RFC3339), run.Status,
		})
	}
	t.Render()
	return nil
}
