// Package ioutils provides file system utilities for the catalog photo downloader.
package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultChunkSize is the buffer size used when streaming bodies to disk.
const DefaultChunkSize = 8192

var (
	// ErrEmptyName is returned for an empty file name.
	ErrEmptyName = errors.New("empty file name")

	// ErrOutsideBase is returned when a name resolves outside its base directory.
	ErrOutsideBase = errors.New("path escapes download directory")
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// WriteError marks a failure on the destination side of CopyChunks.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CopyChunks copies src to dst in chunks of at most chunkSize bytes.
//
// Each chunk is written as soon as it is read. Errors from dst are wrapped
// in *WriteError; errors from src are returned unchanged. A chunkSize of
// zero or less uses DefaultChunkSize.
func CopyChunks(dst io.Writer, src io.Reader, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, &WriteError{Err: werr}
			}
			if nw != nr {
				return written, &WriteError{Err: io.ErrShortWrite}
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

// ResolveWithin joins base and name and checks the result stays inside base.
//
// The name is used verbatim: no characters are replaced. Absolute names and
// names containing ".." segments that climb above base are rejected with
// ErrOutsideBase. An empty base means the current directory.
func ResolveWithin(base, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, name)
	}

	rel := filepath.Clean(name)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, name)
	}

	return filepath.Join(base, name), nil
}

// SanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("../photo.jpg")   // Returns ".._photo.jpg"
//	SanitizeFileName("Photo: 1/2.png") // Returns "Photo_ 1_2.png"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	name = strings.TrimRight(name, " ")
	return name
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// An empty path refers to the current directory and is a no-op.
func EnsureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
