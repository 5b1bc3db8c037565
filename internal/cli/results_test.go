package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/store"
)

func emptyDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	return path
}

func TestResultsEmpty(t *testing.T) {
	db := emptyDatabase(t)

	out, err := execute(t, NewResultsCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No results stored.\n", out)

	out, err = execute(t, NewResultsCommand(&RootOptions{Format: "json"}), "--db", db)
	require.NoError(t, err)
	var summaries []ResultSummary
	resp := decodeResponse(t, out, &summaries)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, summaries)
}

func TestResultsListText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")
	_, err := execute(t, NewQueryCommand(&RootOptions{Format: "text"}), salariesFile, "--db", db, "--name", "avgSalary")
	require.NoError(t, err)

	out, err := execute(t, NewResultsCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "SEQ")
	assert.Contains(t, out, "avgSalary")
}

func TestResultsErrors(t *testing.T) {
	_, err := execute(t, NewResultsCommand(&RootOptions{Format: "text"}), "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)

	out, err := execute(t, NewResultsCommand(&RootOptions{Format: "json"}), "--db", emptyDatabase(t), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, decodeResponse(t, out, nil).Error.Code)

	_, err = execute(t, NewResultsCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
}
