package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ioutils "github.com/handiism/catalog-photo-downloader/internal/io"
)

// Local stores photos in a directory on the local file system.
//
// Names are joined to the directory verbatim unless sanitize is set. Names
// that would land outside the directory are rejected.
type Local struct {
	dir      string
	sanitize bool
}

// NewLocal creates a Local store rooted at dir. An empty dir is the
// current working directory.
func NewLocal(dir string, sanitize bool) *Local {
	return &Local{dir: dir, sanitize: sanitize}
}

// Target returns the file path name will be written to.
func (l *Local) Target(name string) (string, error) {
	if l.sanitize {
		name = ioutils.SanitizeFileName(name)
	}
	path, err := ioutils.ResolveWithin(l.dir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return path, nil
}

// Create opens the file for name, creating or truncating it.
func (l *Local) Create(ctx context.Context, name string) (Object, error) {
	path, err := l.Target(name)
	if err != nil {
		return nil, err
	}

	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &localObject{file: file, path: path}, nil
}

// Location returns the absolute download directory.
func (l *Local) Location() string {
	abs, err := filepath.Abs(l.dir)
	if err != nil {
		return l.dir
	}
	return abs
}

type localObject struct {
	file *os.File
	path string
}

func (o *localObject) Write(p []byte) (int, error) {
	return o.file.Write(p)
}

func (o *localObject) Commit() error {
	return o.file.Close()
}

func (o *localObject) Abort() error {
	o.file.Close()
	if err := os.Remove(o.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
