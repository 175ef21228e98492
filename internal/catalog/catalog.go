package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/handiism/catalog-photo-downloader/internal/catalog/dto"
	"github.com/handiism/catalog-photo-downloader/internal/http"
	"github.com/handiism/catalog-photo-downloader/internal/model"
)

// FetchError reports a failed catalog request: a network failure or a
// non-2xx response.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a catalog document that is not valid JSON or does not
// have the expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse catalog: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the catalog from the products endpoint.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher creates a Fetcher for the catalog at url.
func NewFetcher(client *http.Client, url string) *Fetcher {
	return &Fetcher{client: client, url: url}
}

// URL returns the catalog URL.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch issues a single GET for the catalog and parses it.
//
// There are no retries. Errors are *FetchError or *ParseError.
func (f *Fetcher) Fetch(ctx context.Context) (*model.Catalog, error) {
	data, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	return Parse(data)
}

// Parse decodes a catalog document.
//
// A document without a "products" key is an empty catalog.
func Parse(data []byte) (*model.Catalog, error) {
	var doc dto.JSONCatalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	catalog, err := doc.ToCatalog()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return catalog, nil
}
