package styles_test

import (
	"os"
	"testing"

	"github.com/srcmake/srcmake/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoaded(t *testing.T) {
	for _, name := range []string{
		"Header", "SubHeader", "Success", "Warning", "Error", "Muted", "Bold",
		"FilePath", "Language", "Flag", "Macro", "DryRunBanner", "NoContent",
		"StatusCreated", "StatusOverwritten", "StatusSkipped", "StatusPlanned",
	} {
		_, ok := styles.StyleRegistry[name]
		assert.True(t, ok, "missing style %s", name)
	}
}

func TestGetStyleUnknown(t *testing.T) {
	styles.SetColor(false)
	assert.Equal(t, "plain", styles.GetStyle("DoesNotExist").Render("plain"))
}

func TestRenderWithoutColor(t *testing.T) {
	styles.SetColor(false)
	assert.Equal(t, "Logger.hpp", styles.Render("FilePath", "Logger.hpp"))
	assert.NotContains(t, styles.Render("Error", "boom"), "\x1b[")
}

func TestLoadStylesFromData(t *testing.T) {
	t.Cleanup(func() {
		data, err := os.ReadFile("styles.yaml")
		require.NoError(t, err)
		require.NoError(t, styles.LoadStylesFromData(data))
	})

	data := []byte(`
colors:
  red: {light: "#f00", dark: "#f00"}
styles:
  Only:
    foreground: red
    bold: true
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	assert.Len(t, styles.StyleRegistry, 1)
	assert.True(t, styles.GetStyle("Only").GetBold())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [unclosed")))
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, styles.ColorEnabled("always", nil))
	assert.False(t, styles.ColorEnabled("never", os.Stdout))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, styles.ColorEnabled("auto", os.Stdout))
}

func TestColorEnabledNonTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, styles.ColorEnabled("auto", f))
}
