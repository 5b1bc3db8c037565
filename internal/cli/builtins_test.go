package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBuiltIns(t *testing.T) {
	infos := ListBuiltIns()
	require.NotEmpty(t, infos)

	byName := make(map[string]BuiltInInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	add, ok := byName["swrlb:add"]
	require.True(t, ok)
	assert.Equal(t, "at least 2", add.Arity)
	assert.Equal(t, "http://www.w3.org/2003/11/swrlb#add", add.IRI)
	assert.Equal(t, "3", byName["swrlb:tokenize"].Arity)
}

func TestBuiltInsCommand(t *testing.T) {
	out, err := execute(t, NewBuiltInsCommand(&RootOptions{Format: "text"}))
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "swrlb:stringConcat")

	out, err = execute(t, NewBuiltInsCommand(&RootOptions{Format: "json"}))
	require.NoError(t, err)
	var infos []BuiltInInfo
	resp := decodeResponse(t, out, &infos)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ListBuiltIns(), infos)
}
