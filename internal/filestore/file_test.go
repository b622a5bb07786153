package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, name, content string) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	f, err := Open(path)
	require.NoError(t, err)
	return f
}

func TestOpen(t *testing.T) {
	f := openTemp(t, "script.py", "print('hi')\n")

	assert.Equal(t, "print('hi')\n", f.Content())
	assert.Equal(t, "script.py", f.Name())
	assert.Equal(t, ".py", f.Ext())
	assert.False(t, f.Hidden())
	assert.True(t, filepath.IsAbs(f.Path()))
}

func TestOpen_Hidden(t *testing.T) {
	f := openTemp(t, ".lector.yaml", "version: \"1.0\"\n")
	assert.True(t, f.Hidden())
	assert.Equal(t, ".yaml", f.Ext())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestFile_Rewrite(t *testing.T) {
	f := openTemp(t, "a.txt", "old")

	require.NoError(t, f.Rewrite("new content"))
	assert.Equal(t, "new content", f.Content())

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestFile_Clear(t *testing.T) {
	f := openTemp(t, "a.txt", "something")

	require.NoError(t, f.Clear())
	assert.Equal(t, "", f.Content())

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFile_ReplaceLines(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		content    string
		start, end int
		expected   string
	}{
		{"middle range", "a\nb\nc\nd", "X", 2, 3, "a\nX\nd"},
		{"start zero defaults to first line", "a\nb\nc", "X", 0, 1, "X\nb\nc"},
		{"end zero defaults to EOF", "a\nb\nc", "X", 2, 0, "a\nX"},
		{"start beyond EOF clamps and takes rest", "a\nb\nc", "X\nY", 99, 1, "a\nb\nX\nY"},
		{"end beyond EOF clamps", "a\nb\nc", "X", 2, 99, "a\nX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := openTemp(t, "r.txt", tt.initial)
			require.NoError(t, f.ReplaceLines(tt.content, tt.start, tt.end))
			assert.Equal(t, tt.expected, f.Content())

			data, err := os.ReadFile(f.Path())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestFile_ReplaceLines_EndBeforeStart(t *testing.T) {
	f := openTemp(t, "r.txt", "a\nb\nc")
	err := f.ReplaceLines("X", 3, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
