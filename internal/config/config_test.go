package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	t.Setenv("HOME", "/home/ada")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	p := GetPaths()
	assert.Equal(t, filepath.Join("/xdg/config", AppName), p.Config)
	assert.Equal(t, filepath.Join("/xdg/state", AppName), p.State)
	assert.Equal(t, filepath.Join("/home/ada/.local/share", AppName), p.Data)
	assert.Equal(t, filepath.Join("/home/ada/.cache", AppName), p.Cache)
	assert.Equal(t, filepath.Join("/xdg/state", AppName, "logs"), p.LogDir())
	assert.Equal(t, filepath.Join("/xdg/config", AppName, ".env"), p.GlobalEnvFile())
}

func TestEnsurePaths(t *testing.T) {
	root := t.TempDir()
	p := &Paths{
		Data:   filepath.Join(root, "data"),
		Config: filepath.Join(root, "config"),
		Cache:  filepath.Join(root, "cache"),
		State:  filepath.Join(root, "state"),
	}
	require.NoError(t, p.EnsurePaths())
	for _, dir := range []string{p.Data, p.Config, p.Cache, p.State} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	for _, k := range []string{"FORGE_CONFIG_DIR", "FORGE_LOG_LEVEL", "FORGE_PRINT_LOGS", "FORGE_LOG_TO_FILE", "FORGE_LOG_DIR", "FORGE_NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "config", s.ConfigDir)
	assert.Equal(t, "INFO", s.LogLevel)
	assert.False(t, s.PrintLogs)
	assert.False(t, s.NoColor)
	assert.Equal(t, filepath.Join("/xdg/state", AppName, "logs"), s.LogDir)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FORGE_CONFIG_DIR=commands\nFORGE_LOG_LEVEL=debug\n"), 0o644))

	t.Setenv("FORGE_CONFIG_DIR", "")
	os.Unsetenv("FORGE_CONFIG_DIR")
	t.Setenv("FORGE_LOG_LEVEL", "")
	os.Unsetenv("FORGE_LOG_LEVEL")
	t.Setenv("FORGE_NO_COLOR", "true")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "commands", s.ConfigDir)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.NoColor)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("FORGE_PRINT_LOGS", "not-a-bool")

	var s Settings
	err := ParseEnv(&s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadEnvFiles_Missing(t *testing.T) {
	assert.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
}
