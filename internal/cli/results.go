package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sachitrajbhandari/swrlapi/internal/store"
)

// ResultsOptions holds flags for the results command.
type ResultsOptions struct {
	*RootOptions
	Database string
}

// ResultSummary describes one exported result set.
type ResultSummary struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	Name       string `json:"name"`
	RowCount   int    `json:"row_count"`
	Distinct   bool   `json:"distinct"`
	SchemaHash string `json:"schema_hash"`
}

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResultsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "results [id]",
		Short: "List or show exported result tables",
		Long: `List the result tables exported by "swrlapi query --db", in export
order, or show the rows of one result table by ID.

Example:
  swrlapi results --db results.db
  swrlapi results --db results.db 0192f0e4-6c1e-7b9a-a3c4-1d2e3f405162`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runResults(opts, id, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runResults(opts *ResultsOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// Never create a database just to list it
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("opening database: %v", err), nil)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if id == "" {
		return listResults(ctx, formatter, st)
	}
	return showResult(ctx, formatter, st, id)
}

func listResults(ctx context.Context, formatter *OutputFormatter, st *store.Store) error {
	sets, err := st.ListResults(ctx)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	summaries := make([]ResultSummary, len(sets))
	for i, rs := range sets {
		summaries[i] = summarize(rs)
	}

	if formatter.Format == "json" {
		return formatter.Success(summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(formatter.Writer, "No results stored.")
		return nil
	}
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tNAME\tROWS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.Seq, s.ID, s.Name, s.RowCount)
	}
	return tw.Flush()
}

func showResult(ctx context.Context, formatter *OutputFormatter, st *store.Store, id string) error {
	rs, t, err := st.ReadResult(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no result with id %s", id), nil)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(TableOutput{
			Name:     rs.Name,
			ResultID: rs.ID,
			Columns:  t.ColumnNames(),
			Rows:     encodeRows(t.Rows()),
		})
	}
	return renderTable(formatter.Writer, fmt.Sprintf("result %s (%s)", rs.ID, rs.Name), t)
}

func summarize(rs store.ResultSet) ResultSummary {
	return ResultSummary{
		ID:         rs.ID,
		Seq:        rs.Seq,
		Name:       rs.Name,
		RowCount:   rs.RowCount,
		Distinct:   rs.Distinct,
		SchemaHash: rs.SchemaHash,
	}
}
