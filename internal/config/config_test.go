package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvToken, "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendREST, cfg.Backend)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultListID, cfg.ListID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Token)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
backend = "rest"
base_url = "http://tasks.internal:9000"
token = "file-token"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))

	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvToken, "env-token")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://tasks.internal:9000", cfg.BaseURL)
	assert.Equal(t, "env-token", cfg.Token, "environment wins over file")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`backend = "carrier-pigeon"`), 0600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`backend = `), 0600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config.toml")
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestPaths(t *testing.T) {
	cfg, err := New("/cfg")
	require.NoError(t, err)

	assert.Equal(t, "/cfg/config.toml", cfg.FilePath())
	assert.Equal(t, "/cfg/oauth_client.json", cfg.OAuthClientPath())
	assert.Equal(t, "/cfg/token.json", cfg.TokenPath())
	assert.False(t, cfg.HasToken())
}
