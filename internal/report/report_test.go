package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/handiism/catalog-photo-downloader/internal/model"
)

func TestPrint_AllSucceeded(t *testing.T) {
	r := model.NewReport(2, "/srv/photos")
	r.Attempted = 2

	var buf bytes.Buffer
	Print(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Download complete!")
	assert.Contains(t, out, "2/2 success, 0 failed")
	assert.NotContains(t, out, "Failed to download")
	assert.Contains(t, out, "Photos saved to: /srv/photos")
}

func TestPrint_WithFailures(t *testing.T) {
	r := model.NewReport(2, "/srv/photos")
	r.Attempted = 2
	r.AddFailure("b.jpg", errors.New("HTTP 404: 404 Not Found"))

	var buf bytes.Buffer
	Print(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "1/2 success, 1 failed")
	assert.Contains(t, out, "Failed to download 1 photos:\n  - b.jpg\n")
}

func TestPrint_Cancelled(t *testing.T) {
	r := model.NewReport(5, "/srv/photos")
	r.Attempted = 2
	r.Cancelled = true

	var buf bytes.Buffer
	Print(&buf, r)

	assert.Contains(t, buf.String(), "Download cancelled after 2/5 photos")
	assert.NotContains(t, buf.String(), "Download complete!")
}

func TestSummary_Empty(t *testing.T) {
	assert.Equal(t, "0/0 success, 0 failed", Summary(model.NewReport(0, "")))
}

func TestWriteYAML(t *testing.T) {
	r := model.NewReport(3, "s3://shop/photos/")
	r.Attempted = 3
	r.AddFailure("c.jpg", errors.New("HTTP 500"))
	r.Finish()

	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, WriteYAML(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, r.RunID, decoded["run_id"])
	assert.Equal(t, 3, decoded["total"])
	assert.Equal(t, 2, decoded["succeeded"])
	assert.Equal(t, false, decoded["cancelled"])

	failed, ok := decoded["failed"].([]any)
	require.True(t, ok)
	require.Len(t, failed, 1)
	assert.Equal(t, map[string]any{"name": "c.jpg", "error": "HTTP 500"}, failed[0])
}
