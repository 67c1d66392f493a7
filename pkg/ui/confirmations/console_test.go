package confirmations

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ types.Prompter = (*ConsoleDialog)(nil)
	_ types.Prompter = Static(false)
)

func TestConsoleDialogConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"  YES  \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"y", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			d := NewConsoleDialog(strings.NewReader(tt.input), &out)

			got, err := d.Confirm("Overwrite Logger.hpp?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Overwrite Logger.hpp? [y/N]: ")
		})
	}
}

func TestConsoleDialogSequentialAnswers(t *testing.T) {
	d := NewConsoleDialog(strings.NewReader("y\nn\n"), &bytes.Buffer{})

	first, err := d.Confirm("one")
	require.NoError(t, err)
	second, err := d.Confirm("two")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, stderrors.New("tty gone") }

func TestConsoleDialogReadError(t *testing.T) {
	d := NewConsoleDialog(failingReader{}, &bytes.Buffer{})
	_, err := d.Confirm("q")
	assert.ErrorContains(t, err, "tty gone")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, stderrors.New("closed") }

func TestConsoleDialogWriteError(t *testing.T) {
	d := NewConsoleDialog(strings.NewReader("y\n"), failingWriter{})
	ok, err := d.Confirm("q")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, errors.ErrInternal, errors.GetErrorCode(err))
}

func TestStatic(t *testing.T) {
	yes, err := Static(true).Confirm("anything")
	require.NoError(t, err)
	assert.True(t, yes)

	no, _ := Static(false).Confirm("anything")
	assert.False(t, no)
}
