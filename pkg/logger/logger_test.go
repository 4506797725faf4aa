package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestInfofWritesJSONToNonTerminal(t *testing.T) {
	buf := captureLogs(t, false)

	Infof("analyzed %d packages", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "analyzed 3 packages", entry["msg"])
}

func TestDebugfOnlyWhenVerbose(t *testing.T) {
	buf := captureLogs(t, false)
	Debugf("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debugf("shown %s", "now")
	assert.Contains(t, buf.String(), "shown now")
}

func TestErrorf(t *testing.T) {
	buf := captureLogs(t, false)

	Errorf("lookup failed: %v", "timeout")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"ERROR"`)
	assert.Contains(t, lines[0], "lookup failed: timeout")
}
