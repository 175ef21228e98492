package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/handiism/catalog-photo-downloader/internal/catalog"
	"github.com/handiism/catalog-photo-downloader/internal/config"
	"github.com/handiism/catalog-photo-downloader/internal/download"
	"github.com/handiism/catalog-photo-downloader/internal/model"
)

func TestNewModel_PrefillsCatalogURL(t *testing.T) {
	settings := config.DefaultSettings()
	m := NewModel(settings)

	assert.Equal(t, StateInput, m.state)
	assert.Equal(t, settings.CatalogURL, m.textInput.Value())
	assert.Contains(t, m.View(), "Catalog URL:")
}

func TestUpdate_InitError(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateInitializing

	next, _ := m.Update(InitDoneMsg{Err: &catalog.ParseError{Err: errors.New("invalid character '<'")}})
	got := next.(Model)

	assert.Equal(t, StateError, got.state)
	assert.Contains(t, got.View(), "Error parsing the catalog")
}

func TestUpdate_DownloadDone(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateDownloading

	r := model.NewReport(12, "/srv/photos")
	r.Attempted = 12
	for i := 0; i < 11; i++ {
		r.AddFailure(fmt.Sprintf("p%d.jpg", i), errors.New("HTTP 404"))
	}

	next, _ := m.Update(DownloadDoneMsg{Report: r})
	got := next.(Model)

	assert.Equal(t, StateComplete, got.state)
	view := got.View()
	assert.Contains(t, view, "1/12 success, 11 failed")
	assert.Contains(t, view, "p0.jpg")
	assert.Contains(t, view, "and 1 more")
}

func TestUpdate_ProgressFiltersVerbose(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	next, _ := m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "Downloaded: a.jpg", Level: download.LevelVerbose}})
	assert.Empty(t, next.(Model).logs)

	next, _ = m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "Error downloading b.jpg", Level: download.LevelError}})
	assert.Len(t, next.(Model).logs, 1)
}

func TestUpdate_LogsAreCapped(t *testing.T) {
	var cur tea.Model = NewModel(config.DefaultSettings())
	for i := 0; i < maxLogs+5; i++ {
		cur, _ = cur.Update(ProgressMsg{Event: download.ProgressEvent{Message: fmt.Sprint(i), Level: download.LevelInfo}})
	}

	logs := cur.(Model).logs
	assert.Len(t, logs, maxLogs)
	assert.Equal(t, fmt.Sprint(maxLogs+4), logs[len(logs)-1].Message)
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "cancelled by user", describeError(context.Canceled))
	assert.Contains(t, describeError(&catalog.FetchError{URL: "u", Err: errors.New("HTTP 503")}), "Error requesting the catalog: HTTP 503")
	assert.Contains(t, describeError(errors.New("disk full")), "Unexpected error: disk full")
}
