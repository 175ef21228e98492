// Package http provides the HTTP client used to talk to the catalog API and
// the image endpoint.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Optional timeouts (none by default)
//   - Classifying non-2xx responses as *StatusError
//   - Streaming response bodies without buffering them in memory
//
// # Basic Usage
//
//	client := http.NewClient("catalog-photo-downloader", 0)
//
//	// Fetch the catalog document
//	body, err := client.Get(ctx, "https://example.com/api/products")
//
//	// Stream an image
//	stream, err := client.GetStream(ctx, "https://example.com/api/image/a.jpg")
//	defer stream.Body.Close()
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    stream.ContentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
