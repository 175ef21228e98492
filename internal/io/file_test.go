package ioutils

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-photo.jpg", "normal-photo.jpg"},
		{"photo:with:colons.jpg", "photo_with_colons.jpg"},
		{"../escape.jpg", ".._escape.jpg"},
		{"dir\\photo.jpg", "dir_photo.jpg"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces.png", "multiple spaces.png"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestResolveWithin(t *testing.T) {
	base := filepath.Join("data", "photos")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain name", "a.jpg", filepath.Join(base, "a.jpg"), nil},
		{"nested name", "sub/a.jpg", filepath.Join(base, "sub", "a.jpg"), nil},
		{"inner dotdot stays inside", "sub/../a.jpg", filepath.Join(base, "a.jpg"), nil},
		{"empty", "", "", ErrEmptyName},
		{"parent", "../a.jpg", "", ErrOutsideBase},
		{"bare parent", "..", "", ErrOutsideBase},
		{"dot", ".", "", ErrOutsideBase},
		{"absolute", "/etc/passwd", "", ErrOutsideBase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWithin(base, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWithin_EmptyBase(t *testing.T) {
	got, err := ResolveWithin("", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got)
}

// chunkRecorder remembers the size of every Write call.
type chunkRecorder struct {
	bytes.Buffer
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return c.Buffer.Write(p)
}

func TestCopyChunks_ChunkSize(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte("a"), 20000))
	dst := &chunkRecorder{}

	n, err := CopyChunks(dst, src, DefaultChunkSize)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), n)
	assert.Equal(t, 20000, dst.Len())
	for _, size := range dst.sizes {
		assert.LessOrEqual(t, size, DefaultChunkSize)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

type failingReader struct {
	data io.Reader
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.data.Read(p)
	if err == io.EOF {
		return n, errors.New("connection reset")
	}
	return n, err
}

func TestCopyChunks_Errors(t *testing.T) {
	t.Run("write error is wrapped", func(t *testing.T) {
		_, err := CopyChunks(failingWriter{}, strings.NewReader("data"), 4)

		var werr *WriteError
		require.True(t, errors.As(err, &werr))
		assert.EqualError(t, werr.Err, "disk full")
	})

	t.Run("read error is returned as is", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := CopyChunks(&buf, &failingReader{data: strings.NewReader("partial")}, 0)

		require.Error(t, err)
		var werr *WriteError
		assert.False(t, errors.As(err, &werr))
		assert.Equal(t, int64(len("partial")), n)
	})
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	assert.NoError(t, EnsureDir(""))
}
