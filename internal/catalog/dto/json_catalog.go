package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/catalog-photo-downloader/internal/model"
)

// JSONCatalog is the document returned by the products endpoint.
type JSONCatalog struct {
	Products []json.RawMessage `json:"products"`
}

// JSONProduct is a single product object. Only "photos" is interpreted.
type JSONProduct map[string]json.RawMessage

// ToCatalog converts the document to a model.Catalog.
//
// Products are kept in API order. A missing or null "products" key yields
// an empty catalog.
func (jc *JSONCatalog) ToCatalog() (*model.Catalog, error) {
	catalog := &model.Catalog{Products: make([]model.Product, 0, len(jc.Products))}

	for i, raw := range jc.Products {
		if isNull(raw) {
			return nil, fmt.Errorf("product %d is null", i)
		}

		var jp JSONProduct
		if err := json.Unmarshal(raw, &jp); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}

		product, err := jp.ToProduct()
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		catalog.Products = append(catalog.Products, product)
	}

	return catalog, nil
}

// ToProduct converts the object to a model.Product.
//
// The "photos" field follows truthiness rules: absent, null, false, 0, ""
// and [] all mean "no photos". An array must contain only strings. Any
// other value is an error.
func (jp JSONProduct) ToProduct() (model.Product, error) {
	photos, err := decodePhotos(jp["photos"])
	if err != nil {
		return model.Product{}, err
	}
	return model.Product{Raw: jp, Photos: photos}, nil
}

func decodePhotos(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		if !v {
			return nil, nil
		}
	case float64:
		if v == 0 {
			return nil, nil
		}
	case string:
		if v == "" {
			return nil, nil
		}
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
	case []any:
		photos := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("photos[%d]: expected string, got %T", i, item)
			}
			photos = append(photos, name)
		}
		return photos, nil
	}

	return nil, errors.New("photos: expected an array of strings")
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
