package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalText(t *testing.T) {
	out, err := execute(t, NewEvalCommand(&RootOptions{Format: "text"}), "add", "?x", "int:20", "int:30")
	require.NoError(t, err)
	assert.Equal(t, "swrlb:add: true\n  ?x = xsd:int 50\n", out)
}

func TestEvalJSON(t *testing.T) {
	out, err := execute(t, NewEvalCommand(&RootOptions{Format: "json"}), "swrlb:substring", "?x", "string:abcdef", "int:1", "int:3")
	require.NoError(t, err)

	var result EvalResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "swrlb:substring", result.BuiltIn)
	assert.True(t, result.Satisfied)
	assert.Equal(t, map[string]any{"type": "xsd:string", "value": "bc"}, result.Bindings["x"])
}

func TestEvalMultiValueBinding(t *testing.T) {
	out, err := execute(t, NewEvalCommand(&RootOptions{Format: "json"}), "tokenize", "?t", "string:a,b,c", "string:,")
	require.NoError(t, err)

	var result EvalResult
	decodeResponse(t, out, &result)
	tokens, ok := result.Bindings["t"].([]any)
	require.True(t, ok)
	assert.Len(t, tokens, 3)

	out, err = execute(t, NewEvalCommand(&RootOptions{Format: "text"}), "tokenize", "?t", "string:a b", "string: ")
	require.NoError(t, err)
	assert.Contains(t, out, "?t = [xsd:string a, xsd:string b]")
}

func TestEvalNotSatisfied(t *testing.T) {
	out, err := execute(t, NewEvalCommand(&RootOptions{Format: "text"}), "greaterThan", "int:1", "int:2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "swrlb:greaterThan: false\n", out)
}

func TestEvalPrefixes(t *testing.T) {
	cmd := NewEvalCommand(&RootOptions{Format: "text"})
	out, err := execute(t, cmd, "--prefix", "test=http://example.org/test#", "equal", "class:test:C1", "class:test:C1")
	require.NoError(t, err)
	assert.Contains(t, out, "swrlb:equal: true")

	_, err = execute(t, NewEvalCommand(&RootOptions{Format: "text"}), "equal", "class:test:C1", "class:test:C1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInvalidArg)
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exitCode int
		code     string
	}{
		{"unknown built-in", []string{"noSuchBuiltIn", "int:1"}, ExitCommandError, ErrCodeBuiltInShape},
		{"wrong arity", []string{"add", "?x"}, ExitCommandError, ErrCodeBuiltInShape},
		{"unbound input", []string{"add", "?x", "?y"}, ExitCommandError, ErrCodeBuiltInShape},
		{"division by zero", []string{"divide", "?x", "int:1", "int:0"}, ExitFailure, ErrCodeBuiltInValue},
		{"argument type", []string{"upperCase", "?x", "int:1"}, ExitFailure, ErrCodeBuiltInValue},
		{"malformed argument", []string{"add", "?x", "nope:1"}, ExitCommandError, ErrCodeInvalidArg},
		{"malformed prefix", []string{"--prefix", "test", "add", "?x", "int:1"}, ExitCommandError, ErrCodeInvalidArg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewEvalCommand(&RootOptions{Format: "json"}), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
