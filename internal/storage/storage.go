// Package storage provides the destinations downloaded photos are written to.
//
// Two backends are available:
//   - Local writes <download_dir>/<name> on the local file system
//   - S3 uploads <prefix><name> to an S3 (or S3-compatible) bucket
//
// Writes go through an Object: data is written in chunks, then the object
// is either committed or aborted. Aborting removes whatever was written so
// far, so a failed transfer never leaves a partial photo behind.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/handiism/catalog-photo-downloader/internal/config"
)

// ErrInvalidName is returned by Target for names that cannot be stored.
var ErrInvalidName = errors.New("invalid photo name")

// Store is a destination for downloaded photos.
type Store interface {
	// Target validates name and returns where it would be stored.
	Target(name string) (string, error)

	// Create opens a new object for name, replacing any existing one.
	Create(ctx context.Context, name string) (Object, error)

	// Location describes the store for reports, e.g. an absolute directory.
	Location() string
}

// Object is a photo being written to a Store.
type Object interface {
	io.Writer

	// Commit finalizes the object.
	Commit() error

	// Abort discards the object and anything written to it.
	Abort() error
}

// New creates the Store selected by settings.
func New(ctx context.Context, settings *config.Settings) (Store, error) {
	switch settings.Storage {
	case config.StorageLocal, "":
		return NewLocal(settings.DownloadDir, settings.SanitizeFileNames), nil
	case config.StorageS3:
		return NewS3(ctx, settings.S3, settings.SanitizeFileNames)
	default:
		return nil, fmt.Errorf("unknown storage %q", settings.Storage)
	}
}
