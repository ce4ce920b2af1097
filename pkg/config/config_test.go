package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, "dir = /tmp/plans\n")

	cfg, found, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/tmp/plans", cfg.Dir)
	assert.True(t, cfg.WarnUnexpected)
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, found, err := LoadFrom(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, cfg.Dir)
	assert.True(t, cfg.WarnUnexpected)
}

func TestLoadFromIgnoresCommentsAndSections(t *testing.T) {
	path := writeConfig(t, `# a comment
; another comment
[core]
dir = /tmp/plans
not a key value line
`)

	cfg, found, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/tmp/plans", cfg.Dir)
}

func TestLoadFromFirstDirWins(t *testing.T) {
	path := writeConfig(t, "dir = /first\ndir = /second\n")

	cfg, found, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/first", cfg.Dir)
}

func TestLoadFromQuotedValue(t *testing.T) {
	path := writeConfig(t, `dir = "/tmp/my plans"`)

	cfg, _, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my plans", cfg.Dir)
}

func TestLoadFromExtraKeys(t *testing.T) {
	path := writeConfig(t, `dir = /tmp/plans
warn_unexpected = false
ignore = *.bak
ignore = scratch.txt
`)

	cfg, _, err := LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, cfg.WarnUnexpected)
	assert.Equal(t, []string{"*.bak", "scratch.txt"}, cfg.IgnorePatterns)
}

func TestLoadPrefersEnv(t *testing.T) {
	t.Setenv("PLAN_DIR", "/env/plans")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/env/plans", cfg.Dir)
	assert.True(t, cfg.WarnUnexpected)
}

func TestLoadEnvKeepsFileScanSettings(t *testing.T) {
	t.Setenv("PLAN_DIR", "/env/plans")
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "plan"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "plan", "config"), []byte(`dir = /file/plans
warn_unexpected = false
ignore = *.bak
`), 0o644))

	// PLAN_DIR overrides only the directory; scan settings still come
	// from the config file.
	cfg, found, err := Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/env/plans", cfg.Dir)
	assert.False(t, cfg.WarnUnexpected)
	assert.Equal(t, []string{"*.bak"}, cfg.IgnorePatterns)
}

func TestLoadFallsBackToConfigFile(t *testing.T) {
	t.Setenv("PLAN_DIR", "")
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "plan"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "plan", "config"), []byte("dir = /file/plans\n"), 0o644))

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/file/plans", cfg.Dir)
}

func TestInitRoundTrip(t *testing.T) {
	t.Setenv("PLAN_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Init("/tmp/plans"))

	cfg, found, err := Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/tmp/plans", cfg.Dir)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "plan"), ExpandTilde("~/plan"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "~user/plan", ExpandTilde("~user/plan"))
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "plan", "config"), path)
}
