package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:5000", cfg.Client.ServerURL)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "https://pypi.org/pypi", cfg.Registry.PyPI)
	assert.Equal(t, 5*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
client:
  serverUrl: http://autopsy.internal:8080
  timeout: 3s
registry:
  concurrency: 2
severity:
  high: warning
ignorePackages:
  - setuptools
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://autopsy.internal:8080", cfg.Client.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 2, cfg.Registry.Concurrency)
	assert.Equal(t, "warning", cfg.Severity.High)
	// untouched keys keep their defaults
	assert.Equal(t, "warning", cfg.Severity.Medium)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.True(t, cfg.IsPackageIgnored("SetupTools"))
	assert.False(t, cfg.IsPackageIgnored("flask"))
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "client: [oops")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoadConfig_Env(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "server:\n  addr: ':7000'\n")
	t.Setenv("AUTOPSY_SERVER_URL", "http://env:1234")
	t.Setenv("AUTOPSY_PYPI_URL", "http://mirror/pypi")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:1234", cfg.Client.ServerURL)
	assert.Equal(t, "http://mirror/pypi", cfg.Registry.PyPI)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	t.Setenv("AUTOPSY_LISTEN_ADDR", "127.0.0.1:9001")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.Addr)
}

func TestFindAndLoadConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "output:\n  format: sarif\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := FindAndLoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "sarif", cfg.Output.Format)

	cfg, err = FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestSarifLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "error", cfg.SarifLevel(analyzer.RiskHigh))
	assert.Equal(t, "warning", cfg.SarifLevel(analyzer.RiskMedium))
	assert.Equal(t, "note", cfg.SarifLevel(analyzer.RiskLow))
	assert.Equal(t, "none", cfg.SarifLevel(analyzer.RiskUpToDate))
	assert.Equal(t, "warning", cfg.SarifLevel("mystery"))
}
