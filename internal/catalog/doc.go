// Package catalog fetches and parses the product catalog.
//
// The catalog endpoint returns a JSON document of the form:
//
//	{"products": [{"...": "...", "photos": ["a.jpg", "b.jpg"]}, ...]}
//
// Products are opaque apart from their optional "photos" list.
//
// # Fetching
//
//	fetcher := catalog.NewFetcher(client, "https://example.com/api/products")
//	cat, err := fetcher.Fetch(ctx)
//	var fetchErr *catalog.FetchError
//	if errors.As(err, &fetchErr) {
//	    // network failure or non-2xx status
//	}
//
// # Parsing
//
// Parse can be used on its own when the document is already in memory:
//
//	cat, err := catalog.Parse(data)
//	names := cat.PhotoNames()
package catalog
