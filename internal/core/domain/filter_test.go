package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter(query(t, "brand=Sony,,LG,Sony&q=oled&category=TVs"))
	assert.Equal(t, []string{"Sony", "LG"}, f.SelectedBrands)
	assert.Equal(t, "oled", f.SearchQuery)
	assert.Equal(t, "TVs", f.Category)
	assert.True(t, f.HasActiveFilters())
	assert.True(t, f.IsBrandSelected("LG"))
	assert.False(t, f.IsBrandSelected("Bosch"))

	empty := ParseFilter(url.Values{})
	assert.NotNil(t, empty.SelectedBrands)
	assert.Empty(t, empty.SelectedBrands)
	assert.False(t, empty.HasActiveFilters())
}

func TestToggleBrand(t *testing.T) {
	q := query(t, "q=tv")

	added := ToggleBrand(q, "Sony")
	assert.Equal(t, "Sony", added.Get(BrandParam))
	assert.Equal(t, "tv", added.Get(SearchParam))
	assert.Empty(t, q.Get(BrandParam), "input is not mutated")

	added = ToggleBrand(added, "LG")
	assert.Equal(t, "Sony,LG", added.Get(BrandParam))

	removed := ToggleBrand(added, "Sony")
	assert.Equal(t, "LG", removed.Get(BrandParam))

	t.Run("TwiceRestoresAbsentBrand", func(t *testing.T) {
		q := query(t, "brand=Sony&q=tv")
		assert.Equal(t, q, ToggleBrand(ToggleBrand(q, "LG"), "LG"))
	})

	t.Run("LastBrandDeletesParam", func(t *testing.T) {
		next := ToggleBrand(query(t, "brand=Sony"), "Sony")
		_, ok := next[BrandParam]
		assert.False(t, ok)
	})
}

func TestClearFilters(t *testing.T) {
	q := query(t, "brand=Sony,LG&q=tv&category=TVs")

	noBrands := ClearBrandFilters(q)
	assert.Empty(t, noBrands.Get(BrandParam))
	assert.Equal(t, "tv", noBrands.Get(SearchParam))
	assert.Equal(t, "TVs", noBrands.Get(CategoryParam))

	assert.Empty(t, ClearAllFilters(q))
	assert.Equal(t, "Sony,LG", q.Get(BrandParam))
}

func TestSetSearchAndCategory(t *testing.T) {
	q := SetSearch(url.Values{}, "fridge")
	q = SetCategory(q, "Refrigerators")
	assert.Equal(t, "fridge", q.Get(SearchParam))
	assert.Equal(t, "Refrigerators", q.Get(CategoryParam))

	q = SetSearch(q, "")
	_, ok := q[SearchParam]
	assert.False(t, ok)

	q = SetCategory(q, "")
	assert.Empty(t, q)
}
