package download

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/handiism/catalog-photo-downloader/internal/catalog"
	"github.com/handiism/catalog-photo-downloader/internal/config"
	"github.com/handiism/catalog-photo-downloader/internal/http"
	ioutils "github.com/handiism/catalog-photo-downloader/internal/io"
	"github.com/handiism/catalog-photo-downloader/internal/model"
	"github.com/handiism/catalog-photo-downloader/internal/storage"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// DownloadError is a per-photo failure. It never stops the run.
type DownloadError struct {
	Name string
	URL  string
	Err  error
}

func (e *DownloadError) Error() string {
	return e.Err.Error()
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// StorageError is returned when a photo cannot be written to the store.
// It aborts the run.
type StorageError struct {
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Name, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PhotoURL builds the download URL of a photo by plain concatenation.
// The name is not escaped or altered.
func PhotoURL(base, name string) string {
	return base + name
}

// Manager coordinates the catalog fetch and photo downloads.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	fetcher    *catalog.Fetcher
	store      storage.Store
	images     *ioutils.ImageService

	names []string

	totalFiles     int32
	processedFiles int32
	failedFiles    int32
	receivedBytes  int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager writing photos to store.
func NewManager(settings *config.Settings, store storage.Store, onProgress func(ProgressEvent)) *Manager {
	client := http.NewClient(settings.UserAgent, settings.Timeout)

	return &Manager{
		settings:   settings,
		httpClient: client,
		fetcher:    catalog.NewFetcher(client, settings.CatalogURL),
		store:      store,
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Initialize fetches the catalog and collects the photo names.
//
// Errors are *catalog.FetchError or *catalog.ParseError; both mean the run
// cannot continue.
func (m *Manager) Initialize(ctx context.Context) error {
	m.progress(ProgressEvent{Message: "Fetching product catalog...", Level: LevelInfo})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Catalog URL: %s", m.fetcher.URL()), Level: LevelVerbose})

	cat, err := m.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	m.names = cat.PhotoNames()
	atomic.StoreInt32(&m.totalFiles, int32(len(m.names)))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d photos to download", len(m.names)), Level: LevelInfo})
	return nil
}

// PhotoNames returns the names collected by Initialize.
func (m *Manager) PhotoNames() []string {
	return m.names
}

// StartDownloads downloads every collected photo, strictly in order and one
// at a time.
//
// Per-photo failures are recorded in the returned report. The returned
// error is non-nil only for a *StorageError, in which case the report
// covers the photos processed before it. Cancelling ctx stops the loop and
// marks the report as cancelled.
func (m *Manager) StartDownloads(ctx context.Context) (*model.Report, error) {
	report := model.NewReport(len(m.names), m.store.Location())
	defer report.Finish()

	for _, name := range m.names {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		err := m.downloadPhoto(ctx, name)

		var storageErr *StorageError
		switch {
		case err == nil:
		case ctx.Err() != nil:
			report.Cancelled = true
			m.finish(report)
			return report, nil
		case errors.As(err, &storageErr):
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving %s: %v", name, storageErr.Err), Level: LevelError})
			return report, err
		default:
			report.AddFailure(name, err)
			atomic.AddInt32(&m.failedFiles, 1)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", name, err), Level: LevelError})
		}

		report.Attempted++
		atomic.AddInt32(&m.processedFiles, 1)
	}

	m.finish(report)
	return report, nil
}

// finish emits the closing event of a run that was not aborted.
func (m *Manager) finish(report *model.Report) {
	switch {
	case report.Cancelled:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cancelled after %d of %d photos", report.Attempted, report.Total), Level: LevelWarning})
	case len(report.Failed) > 0:
		m.progress(ProgressEvent{Message: fmt.Sprintf("%d of %d photos could not be downloaded", len(report.Failed), report.Total), Level: LevelWarning})
	default:
		m.progress(ProgressEvent{Message: fmt.Sprintf("All %d photos downloaded", report.Total), Level: LevelSuccess})
	}
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (processed, total, failed int32, received int64) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles),
		atomic.LoadInt32(&m.failedFiles), atomic.LoadInt64(&m.receivedBytes)
}

func (m *Manager) downloadPhoto(ctx context.Context, name string) error {
	url := PhotoURL(m.settings.ImageBaseURL, name)

	target, err := m.store.Target(name)
	if err != nil {
		return &DownloadError{Name: name, URL: url, Err: err}
	}

	stream, err := m.httpClient.GetStream(ctx, url)
	if err != nil {
		return &DownloadError{Name: name, URL: url, Err: err}
	}
	defer stream.Body.Close()

	obj, err := m.store.Create(ctx, name)
	if err != nil {
		return &StorageError{Name: name, Err: err}
	}

	var last int64
	writer := &http.ProgressWriter{
		Writer: obj,
		Total:  stream.ContentLength,
		OnUpdate: func(written, total int64) {
			atomic.AddInt64(&m.receivedBytes, written-last)
			last = written
		},
	}

	if _, err := ioutils.CopyChunks(writer, stream.Body, m.settings.ChunkSize); err != nil {
		obj.Abort()

		var writeErr *ioutils.WriteError
		if errors.As(err, &writeErr) {
			return &StorageError{Name: name, Err: writeErr.Err}
		}
		return &DownloadError{Name: name, URL: url, Err: err}
	}

	if err := obj.Commit(); err != nil {
		return &StorageError{Name: name, Err: err}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", name), Level: LevelVerbose})
	m.inspect(name, target)
	return nil
}

// inspect logs the dimensions of a locally stored photo.
func (m *Manager) inspect(name, target string) {
	if !m.settings.InspectImages {
		return
	}
	if _, ok := m.store.(*storage.Local); !ok {
		return
	}

	info, err := m.images.InspectFile(target)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not read image header of %s: %v", name, err), Level: LevelVerbose})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("%s (%s)", name, info), Level: LevelVerbose})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
