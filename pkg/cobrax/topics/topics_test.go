package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"macros.md":           {Data: []byte("# Macros\n\nTokens look like $NAME$.\n")},
		"languages.txt":       {Data: []byte("Language definitions are TOML files.")},
		"option-dry-run.txt":  {Data: []byte("Render without writing.")},
		"nested/templates.md": {Data: []byte("# Templates\n")},
		"config.txxt":         {Data: []byte("ignored by default")},
		"README.json":         {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"languages", "macros", "option-dry-run", "templates"}, tm.ListTopics())

		topic, ok := tm.GetTopic("languages")
		require.True(t, ok)
		assert.Equal(t, "Language definitions are TOML files.", topic.Content)
		assert.Equal(t, "languages.txt", topic.FilePath)

		_, ok = tm.GetTopic("config")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil source", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"--dry-run", "-dry-run", "dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-dry-run", topic.Name)
	}
}

func TestWriteList(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	var buf bytes.Buffer
	tm.WriteList(&buf, "srcmake")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  languages\n  macros\n  templates\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "Use 'srcmake help <topic>'")

	buf.Reset()
	New(nil).WriteList(&buf, "srcmake")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "srcmake", Short: "root command", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "generate", Short: "generate files", Run: func(*cobra.Command, []string) {}})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	_, err := Initialize(root, topicFS())
	require.NoError(t, err)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "languages"}, "Language definitions are TOML files."},
		{"flag topic", []string{"help", "--dry-run"}, "Render without writing."},
		{"topic list", []string{"help", "topics"}, "Available help topics:"},
		{"command help", []string{"help", "generate"}, "generate files"},
		{"root help", []string{"help"}, "root command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot(t)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestStripPersistentFlags(t *testing.T) {
	root := &cobra.Command{Use: "srcmake"}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().Bool("no-color", false, "")
	root.PersistentFlags().String("config", "", "")

	got := stripPersistentFlags(root, []string{"--no-color", "-vv", "--config", "a.toml", "macros", "--dry-run", "--config=b.toml"})
	assert.Equal(t, []string{"macros", "--dry-run"}, got)

	root.SetArgs([]string{"--no-color", "help", "languages"})
	var out bytes.Buffer
	root.SetOut(&out)
	_, err := Initialize(root, topicFS())
	require.NoError(t, err)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Language definitions are TOML files.")
}

func TestHelpCommandReplacesExisting(t *testing.T) {
	root, _ := newRoot(t)
	count := 0
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			count++
			assert.True(t, strings.HasPrefix(c.Use, "help [command or topic]"))
		}
	}
	assert.Equal(t, 1, count)
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := NewGlamourRenderer(false)
	assert.Equal(t, "notty", g.Style)
	assert.Equal(t, "raw text", g.Render("raw text", ".txt"))

	rendered := g.Render("# Macros\n\nTokens look like `$NAME$`.\n", ".md")
	assert.Contains(t, rendered, "Macros")
	assert.Contains(t, rendered, "$NAME$")

	assert.Equal(t, "auto", NewGlamourRenderer(true).Style)
}
