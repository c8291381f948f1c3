package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubscope/hubscope/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := writeConfigFile(t, "token: from-file\napi_url: http://file.test\n")
	t.Setenv("HUBSCOPE_CONFIG", path)
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("HUBSCOPE_API_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, "http://file.test", cfg.APIBaseURL)
	assert.True(t, cfg.Authenticated())
}

func TestLoad_GHTokenFallback(t *testing.T) {
	t.Setenv("HUBSCOPE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "gh-cli-token")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "gh-cli-token", cfg.Token)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("HUBSCOPE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Authenticated())
	assert.Equal(t, 2, cfg.RetryMax, "default retry count")
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := writeConfigFile(t, "token: [unclosed\n")
	t.Setenv("HUBSCOPE_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestUseApp_RequiresAllThreeCredentials(t *testing.T) {
	cfg := &config.Config{AppID: 1, InstallationID: 2}
	assert.False(t, cfg.UseApp())

	cfg.PrivateKeyPath = "/tmp/key.pem"
	assert.True(t, cfg.UseApp())
	assert.True(t, cfg.Authenticated())
}
