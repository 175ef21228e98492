package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when no User-Agent is configured.
const DefaultUserAgent = "catalog-photo-downloader"

// Client wraps HTTP operations for the catalog and image endpoints.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional timeout handling
//   - Streaming GET for large bodies
//
// Example usage:
//
//	client := NewClient("", 0)
//
//	// Fetch JSON content
//	data, err := client.Get(ctx, "https://example.com/api/products")
//
//	// Stream a file
//	stream, err := client.GetStream(ctx, "https://example.com/api/image/a.jpg")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// A zero timeout disables the client timeout entirely, so a hung request
// blocks until the context is cancelled. An empty userAgent falls back to
// DefaultUserAgent.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header), or -1.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Stream is an open response body whose status has already been checked.
type Stream struct {
	// Body must be closed by the caller.
	Body io.ReadCloser

	// ContentLength is the advertised body size, or -1 when unknown.
	ContentLength int64
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx (*StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	stream, err := c.GetStream(ctx, url)
	if err != nil {
		return nil, err
	}
	defer stream.Body.Close()

	return io.ReadAll(stream.Body)
}

// GetStream performs a GET request and returns the body unread.
//
// The status is checked before returning, so a non-nil Stream always
// belongs to a 2xx response. The caller reads the body incrementally and
// must close it.
func (c *Client) GetStream(ctx context.Context, url string) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}

	return &Stream{Body: resp.Body, ContentLength: resp.ContentLength}, nil
}
