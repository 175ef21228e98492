package model

import "encoding/json"

// Product is a single catalog record.
//
// The catalog API returns products as free-form JSON objects; only the
// optional "photos" field is interpreted. All other fields are kept
// untouched in Raw so callers can inspect them if needed.
type Product struct {
	// Raw holds every field of the product object as returned by the API.
	Raw map[string]json.RawMessage

	// Photos lists the photo filenames attached to the product, in API order.
	// Duplicates and empty names are preserved.
	Photos []string
}

// Catalog is the ordered list of products returned by the catalog API.
type Catalog struct {
	Products []Product
}

// PhotoNames returns the photo filenames of every product, concatenated in
// catalog order.
func (c *Catalog) PhotoNames() []string {
	if c == nil {
		return []string{}
	}
	return CollectPhotoNames(c.Products)
}

// CollectPhotoNames flattens the photo lists of products into one sequence.
//
// Order is preserved per product and per list. No filtering, deduplication
// or validation is applied: a name listed twice is returned twice.
//
// Example:
//
//	CollectPhotoNames([]Product{
//	    {Photos: []string{"a.jpg", "b.jpg"}},
//	    {Photos: nil},
//	    {Photos: []string{"a.jpg"}},
//	})
//	// Returns ["a.jpg", "b.jpg", "a.jpg"]
func CollectPhotoNames(products []Product) []string {
	total := 0
	for _, p := range products {
		total += len(p.Photos)
	}

	names := make([]string, 0, total)
	for _, p := range products {
		names = append(names, p.Photos...)
	}
	return names
}
