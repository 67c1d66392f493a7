package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverwritePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want OverwritePolicy
	}{
		{"", OverwriteAsk},
		{"ask", OverwriteAsk},
		{"Always", OverwriteAlways},
		{" never ", OverwriteNever},
	}
	for _, tt := range tests {
		got, err := ParseOverwritePolicy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseOverwritePolicy("sometimes")
	assert.Error(t, err)
}

func TestFileStatusWritten(t *testing.T) {
	assert.True(t, FileCreated.Written())
	assert.True(t, FileOverwritten.Written())
	assert.False(t, FileSkipped.Written())
	assert.False(t, FilePlanned.Written())
}
