package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPhotoNames(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		want     []string
	}{
		{
			name:     "no products",
			products: nil,
			want:     []string{},
		},
		{
			name: "keeps catalog and list order",
			products: []Product{
				{Photos: []string{"a.jpg", "b.jpg"}},
				{Photos: []string{"c.jpg"}},
			},
			want: []string{"a.jpg", "b.jpg", "c.jpg"},
		},
		{
			name: "products without photos contribute nothing",
			products: []Product{
				{Photos: nil},
				{Photos: []string{}},
				{Photos: []string{"x.png"}},
			},
			want: []string{"x.png"},
		},
		{
			name: "duplicates and empty names are kept",
			products: []Product{
				{Photos: []string{"a.jpg", ""}},
				{Photos: []string{"a.jpg"}},
			},
			want: []string{"a.jpg", "", "a.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectPhotoNames(tt.products)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectPhotoNames_LengthIsSumOfLists(t *testing.T) {
	products := []Product{
		{Photos: []string{"1", "2", "3"}},
		{Photos: nil},
		{Photos: []string{"4"}},
		{Photos: []string{"5", "6"}},
	}

	want := 0
	for _, p := range products {
		want += len(p.Photos)
	}

	assert.Len(t, CollectPhotoNames(products), want)
}

func TestCatalog_PhotoNames_Nil(t *testing.T) {
	var c *Catalog
	assert.Empty(t, c.PhotoNames())
}

func TestReport_Counts(t *testing.T) {
	r := NewReport(3, "/tmp/photos")
	require.NotEmpty(t, r.RunID)

	r.Attempted = 3
	r.AddFailure("b.jpg", errors.New("HTTP 404"))

	assert.Equal(t, 2, r.Succeeded())
	assert.Equal(t, []string{"b.jpg"}, r.FailedNames())
	assert.Equal(t, r.Total, r.Succeeded()+len(r.Failed))
}

func TestReport_UniqueRunIDs(t *testing.T) {
	a := NewReport(0, "")
	b := NewReport(0, "")
	assert.NotEqual(t, a.RunID, b.RunID)
}
