package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return base
}

func TestNew(t *testing.T) {
	base := setupXDG(t)
	work := t.TempDir()

	p, err := New(work)
	require.NoError(t, err)

	assert.Equal(t, work, p.WorkDir())
	assert.Equal(t, filepath.Join(base, "config", "srcmake"), p.ConfigDir())
	assert.Equal(t, filepath.Join(base, "data", "srcmake"), p.DataDir())
	assert.Equal(t, filepath.Join(base, "state", "srcmake"), p.StateDir())

	assert.Equal(t, filepath.Join(base, "config", "srcmake", "config.toml"), p.UserConfigFile())
	assert.Equal(t, filepath.Join(work, ".srcmake.toml"), p.ProjectConfigFile())
	assert.Equal(t, filepath.Join(base, "data", "srcmake", "history.db"), p.HistoryFile())
	assert.Equal(t, filepath.Join(base, "state", "srcmake", "srcmake.log"), p.LogFile())
}

func TestNewDefaultsToWorkingDirectory(t *testing.T) {
	setupXDG(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, wd, p.WorkDir())
}

func TestTemplateRoots(t *testing.T) {
	base := setupXDG(t)
	work := t.TempDir()
	extra := t.TempDir()

	p, err := New(work)
	require.NoError(t, err)
	p.execDir = "/opt/srcmake"

	roots := p.TemplateRoots([]string{extra, "", "shared/templates", extra})
	assert.Equal(t, []string{
		filepath.Join(work, ".srcmake", "templates"),
		extra,
		filepath.Join(work, "shared", "templates"),
		filepath.Join(base, "config", "srcmake", "templates"),
		filepath.Join("/opt/srcmake", "templates"),
	}, roots)

	p.execDir = ""
	langs := p.LanguageRoots(nil)
	assert.Equal(t, []string{
		filepath.Join(work, ".srcmake", "languages"),
		filepath.Join(base, "config", "srcmake", "languages"),
	}, langs)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "templates"), ExpandHome("~/templates"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestExecutableDir(t *testing.T) {
	dir := ExecutableDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir))
}
