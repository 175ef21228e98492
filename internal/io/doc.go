// Package ioutils provides file system and image inspection utilities.
//
// This package contains functions for:
//   - Chunked copying that tells read failures from write failures
//   - Filename sanitization and containment checks
//   - Directory creation
//   - Reading image dimensions from downloaded files
//
// # Chunked Copy
//
//	n, err := ioutils.CopyChunks(file, body, 8192)
//	var werr *ioutils.WriteError
//	if errors.As(err, &werr) {
//	    // the destination failed, not the source
//	}
//
// # Path Containment
//
//	path, err := ioutils.ResolveWithin("/photos", "a.jpg")      // "/photos/a.jpg"
//	_, err = ioutils.ResolveWithin("/photos", "../etc/passwd")  // ErrOutsideBase
//
// # Image Inspection
//
//	svc := ioutils.NewImageService()
//	info, err := svc.InspectFile("/photos/a.jpg")
//	fmt.Println(info) // "800x600 jpeg"
package ioutils
