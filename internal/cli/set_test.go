package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confroute/confroute/document"
)

func TestSetCommand_RoundTrip(t *testing.T) {
	path := writeTestConfig(t, "app.json", `{"server": {"port": 8080}}`)

	out, err := executeCommand(t, "set", path, "server.port", "9090")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	out, err = executeCommand(t, "get", path, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "9090\n", out)
}

func TestSetCommand_CreatesIntermediates(t *testing.T) {
	path := writeTestConfig(t, "app.yaml", "")

	_, err := executeCommand(t, "set", path, "server.tls.enabled", "true")
	require.NoError(t, err)

	out, err := executeCommand(t, "get", path, "server.tls.enabled")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestSetCommand_StrictConflict(t *testing.T) {
	original := `{"server": {"port": 8080}}`
	path := writeTestConfig(t, "app.json", original)

	out, err := executeCommand(t, "set", path, "server.port.inner", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E004")

	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, original, string(data), "a refused update must not touch the file")
}

func TestSetCommand_OverwriteConflicts(t *testing.T) {
	path := writeTestConfig(t, "app.json", `{"server": {"port": 8080}}`)

	_, err := executeCommand(t, "set", path, "server.port.inner", "1", "--overwrite-conflicts")
	require.NoError(t, err)

	out, err := executeCommand(t, "get", path, "server.port.inner")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestSetCommand_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	out, err := executeCommand(t, "set", path, "a", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E005")
}

func TestSetCommand_Journal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	journalPath := filepath.Join(dir, "changes.db")

	_, err := executeCommand(t, "set", path, "a", "1", "--journal", journalPath)
	require.NoError(t, err)

	out, err := executeCommand(t, "history", journalPath)
	require.NoError(t, err)
	assert.Contains(t, out, "set")
	assert.Contains(t, out, "a = 1")
}

func TestParseValueArg(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want document.Value
	}{
		{"integer", "9090", document.Int(9090)},
		{"float", "0.5", document.Float(0.5)},
		{"bool", "true", document.Bool(true)},
		{"null", "null", document.Null{}},
		{"json_string", `"quoted"`, document.String("quoted")},
		{"bare_word", "localhost", document.String("localhost")},
		{"json_object", `{"a": 1}`, document.NewMapping(document.P("a", document.Int(1)))},
		{"json_array", `[1, 2]`, document.Sequence{document.Int(1), document.Int(2)}},
		{"trailing_garbage", "1 2 3", document.String("1 2 3")},
		{"empty", "", document.String("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValueArg(tt.raw)
			require.NoError(t, err)
			assert.True(t, document.Equal(got, tt.want), "got %#v", got)
		})
	}
}
