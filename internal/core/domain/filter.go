package domain

import (
	"net/url"
	"slices"
	"strings"
)

// Query parameters carrying the filter state.
const (
	BrandParam    = "brand"
	SearchParam   = "q"
	CategoryParam = "category"
)

const brandSep = ","

// A FilterState is derived from a URL query on every read and never stored.
type FilterState struct {
	SelectedBrands []string `json:"selectedBrands"`
	SearchQuery    string   `json:"searchQuery"`
	Category       string   `json:"category"`
}

func (f FilterState) HasActiveFilters() bool {
	return len(f.SelectedBrands) > 0 || f.SearchQuery != "" || f.Category != ""
}

func (f FilterState) IsBrandSelected(brand string) bool {
	return slices.Contains(f.SelectedBrands, brand)
}

// ParseFilter reads the filter state from q.
//
// Brands keep their first-seen order, duplicates and empty entries are dropped.
func ParseFilter(q url.Values) FilterState {
	return FilterState{
		SelectedBrands: parseBrands(q.Get(BrandParam)),
		SearchQuery:    q.Get(SearchParam),
		Category:       q.Get(CategoryParam),
	}
}

func parseBrands(param string) []string {
	brands := []string{}
	if param == "" {
		return brands
	}
	for _, b := range strings.Split(param, brandSep) {
		if b == "" || slices.Contains(brands, b) {
			continue
		}
		brands = append(brands, b)
	}
	return brands
}

// ToggleBrand returns a copy of q with brand added to or removed from the
// brand parameter. The parameter is deleted when no brand remains.
func ToggleBrand(q url.Values, brand string) url.Values {
	brands := parseBrands(q.Get(BrandParam))
	if slices.Contains(brands, brand) {
		brands = slices.DeleteFunc(brands, func(b string) bool { return b == brand })
	} else if brand != "" {
		brands = append(brands, brand)
	}

	next := cloneQuery(q)
	setOrDelete(next, BrandParam, strings.Join(brands, brandSep))
	return next
}

// ClearBrandFilters deletes only the brand parameter.
func ClearBrandFilters(q url.Values) url.Values {
	next := cloneQuery(q)
	next.Del(BrandParam)
	return next
}

// ClearAllFilters resets the query.
func ClearAllFilters(url.Values) url.Values {
	return url.Values{}
}

func SetSearch(q url.Values, query string) url.Values {
	next := cloneQuery(q)
	setOrDelete(next, SearchParam, query)
	return next
}

func SetCategory(q url.Values, name string) url.Values {
	next := cloneQuery(q)
	setOrDelete(next, CategoryParam, name)
	return next
}

func setOrDelete(q url.Values, key, value string) {
	if value == "" {
		q.Del(key)
		return
	}
	q.Set(key, value)
}

func cloneQuery(q url.Values) url.Values {
	next := make(url.Values, len(q))
	for k, vs := range q {
		next[k] = slices.Clone(vs)
	}
	return next
}
