package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/query"
	"github.com/sachitrajbhandari/swrlapi/internal/result"
	"github.com/sachitrajbhandari/swrlapi/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Name     string   // run only this query
	Database string   // export prepared tables to this SQLite file
	Prefixes []string // "prefix=namespace" mappings
}

// TableOutput is a prepared result table in canonical value form.
type TableOutput struct {
	Name     string   `json:"name"`
	ResultID string   `json:"result_id,omitempty"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <path>",
		Short: "Execute CUE query specs into result tables",
		Long: `Compile the queries under the top-level query field of a CUE file or
directory, execute each into a prepared result table and print the rows.

With --db every prepared table is exported to a SQLite database, where the
results command can list and show it.

Exit codes:
  0 - All queries executed
  1 - A result table rejected its rows (e.g. an aggregate over mixed kinds)
  2 - Command error (invalid path, invalid query, database error)

Examples:
  swrlapi query ./queries
  swrlapi query ./queries/salaries.cue --name avgSalary
  swrlapi query ./queries --db results.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "run only the named query")
	cmd.Flags().StringVar(&opts.Database, "db", "", "export result tables to this SQLite database")
	cmd.Flags().StringArrayVar(&opts.Prefixes, "prefix", nil, "prefix mapping prefix=namespace (repeatable)")

	return cmd
}

func runQuery(opts *QueryOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := newFactory(opts.Prefixes)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidArg, err.Error(), nil)
	}

	loadResult, loadErrors := LoadQueries(path, f, LoadModeFailFast)
	if len(loadErrors) > 0 {
		return failLoad(formatter, loadErrors[0])
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, path)

	queries := loadResult.Queries
	if opts.Name != "" {
		queries = selectQuery(queries, opts.Name)
		if len(queries) == 0 {
			return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no query named %q", opts.Name), nil)
		}
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("opening database: %v", err), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputs := make([]TableOutput, 0, len(queries))
	tables := make([]*result.Table, 0, len(queries))
	for _, q := range queries {
		formatter.VerboseLog("Executing query: %s", q.Name)

		v := query.Validate(q)
		for _, w := range v.Warnings {
			slog.Warn("query warning", "query", q.Name, "warning", w)
		}
		if !v.Valid() {
			return formatter.fail(ExitCommandError, ErrCodeInvalidQuery,
				fmt.Sprintf("query %s: %s", q.Name, strings.Join(v.Errors, "; ")),
				map[string]any{"query": q.Name, "errors": v.Errors})
		}

		t, err := query.Execute(q)
		if err != nil {
			return failTable(formatter, q.Name, err)
		}

		out := TableOutput{Name: q.Name, Columns: t.ColumnNames(), Rows: encodeRows(t.Rows())}
		if st != nil {
			rs, err := st.WriteResult(ctx, q.Name, t)
			if err != nil {
				return formatter.fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
			}
			out.ResultID = rs.ID
			slog.Info("result exported", "query", q.Name, "id", rs.ID, "rows", rs.RowCount)
		}
		outputs = append(outputs, out)
		tables = append(tables, t)
	}

	if opts.Format == "json" {
		return formatter.Success(outputs)
	}
	for i, out := range outputs {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		title := "query " + out.Name
		if out.ResultID != "" {
			title += " (stored as " + out.ResultID + ")"
		}
		if err := renderTable(formatter.Writer, title, tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func selectQuery(queries []query.Query, name string) []query.Query {
	for _, q := range queries {
		if q.Name == name {
			return []query.Query{q}
		}
	}
	return nil
}

// failLoad reports a loader error as a command error.
func failLoad(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		var details any
		if loadErr.Pos.IsValid() {
			details = map[string]any{
				"file":   loadErr.Pos.Filename(),
				"line":   loadErr.Pos.Line(),
				"column": loadErr.Pos.Column(),
			}
		}
		return formatter.fail(ExitCommandError, loadErr.Code, loadErr.Message, details)
	}
	return formatter.fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}

// failTable reports a result table error as an evaluation failure.
func failTable(formatter *OutputFormatter, name string, err error) error {
	details := map[string]any{"query": name}
	for _, code := range []result.ResultErrorCode{
		result.ErrCodeSchemaMismatch,
		result.ErrCodeInvalidSelectionParameter,
		result.ErrCodeOrderingOnNonExistentColumn,
		result.ErrCodeTypeMismatch,
		result.ErrCodeIndexOutOfRange,
		result.ErrCodeInvalidState,
		result.ErrCodeUnknownAggregate,
	} {
		if result.HasCode(err, code) {
			details["code"] = string(code)
			break
		}
	}
	return formatter.fail(ExitFailure, ErrCodeTableFailed, err.Error(), details)
}

func encodeRows(rows [][]ir.Value) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = ir.EncodeRow(row)
	}
	return out
}

// renderTable prints a prepared table by walking its cursor.
func renderTable(w io.Writer, title string, t *result.Table) error {
	fmt.Fprintln(w, title)
	if err := t.Reset(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.ColumnNames(), "\t"))
	for {
		ok, err := t.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		cells := make([]string, t.NumberOfColumns())
		for i := range cells {
			v, err := t.GetValue(result.Index(i))
			if err != nil {
				return err
			}
			cells[i] = v.Lexical()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", t.NumberOfRows())
	return t.Reset()
}
