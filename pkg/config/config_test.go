package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.Generate.Author)
	assert.Equal(t, "ask", cfg.Generate.Overwrite)
	assert.True(t, cfg.Generate.Strict)
	assert.True(t, cfg.Generate.CollapseBlankLines)
	assert.True(t, cfg.Generate.TrimDoubleSpaces)
	assert.Empty(t, cfg.Paths.Templates)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, FormatText, cfg.Output.Format)

	policy, err := cfg.OverwritePolicy()
	require.NoError(t, err)
	assert.Equal(t, types.OverwriteAsk, policy)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "config.toml", `
[generate]
author = "Jane Doe"
overwrite = "never"

[paths]
templates = ["~/my-templates"]
`)
	project := writeFile(t, dir, ".srcmake.toml", `
[generate]
overwrite = "always"
`)

	cfg, err := Load(Options{UserFile: user, ProjectFile: project, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", cfg.Generate.Author, "user file applies")
	assert.Equal(t, "always", cfg.Generate.Overwrite, "project file wins over user file")
	assert.Equal(t, []string{"~/my-templates"}, cfg.Paths.Templates)
	assert.True(t, cfg.Generate.Strict, "defaults survive")
}

func TestLoadMissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Options{
		UserFile:    filepath.Join(dir, "nope.toml"),
		ProjectFile: filepath.Join(dir, "nope2.toml"),
		SkipEnv:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ask", cfg.Generate.Overwrite)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(Options{ExplicitFile: filepath.Join(dir, "missing.toml"), SkipEnv: true})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeFile(t, dir, "srcmake.yaml", "output:\n  format: json\nhistory:\n  enabled: false\n")
		cfg, err := Load(Options{ExplicitFile: path, SkipEnv: true})
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, cfg.Output.Format)
		assert.False(t, cfg.History.Enabled)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := writeFile(t, dir, "bad.toml", "[generate\nauthor=")
		_, err := Load(Options{ExplicitFile: path, SkipEnv: true})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SRCMAKE_GENERATE__AUTHOR", "  Env Author ")
	t.Setenv("SRCMAKE_GENERATE__STRICT", "false")
	t.Setenv("SRCMAKE_PATHS__LANGUAGES", "/a,/b")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "Env Author", cfg.Generate.Author)
	assert.False(t, cfg.Generate.Strict)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Paths.Languages)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SRCMAKE_OUTPUT__COLOR", "always")

	cfg, err := Load(Options{Overrides: map[string]interface{}{"output.color": "never"}})
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.Output.Color)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]interface{}{
		"overwrite": {"generate.overwrite": "sometimes"},
		"color":     {"output.color": "purple"},
		"format":    {"output.format": "xml"},
	}
	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(Options{Overrides: overrides, SkipEnv: true})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": "text", "TEXT": "text", "json": "json", " yaml": "yaml"} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), "[generate]")
}
