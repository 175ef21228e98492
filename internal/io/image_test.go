package ioutils

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageService_InspectFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))

	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	info, err := NewImageService().InspectFile(path)
	require.NoError(t, err)

	assert.Equal(t, ImageInfo{Format: "png", Width: 40, Height: 30}, info)
	assert.Equal(t, "40x30 png", info.String())
}

func TestImageService_InspectNotAnImage(t *testing.T) {
	_, err := NewImageService().Inspect(strings.NewReader("not an image"))
	assert.Error(t, err)
}
