package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogReader = Catalog{}

const relatedLimit = 4

// A Catalog derives read-only views over a fixed product source.
type Catalog struct {
	source port.ProductsSource
}

func NewCatalog(source port.ProductsSource) Catalog {
	return Catalog{source}
}

func (c Catalog) Products() []domain.Product {
	return slices.Clone(c.source.Products())
}

func (c Catalog) Categories() []domain.Category {
	return slices.Clone(c.source.Categories())
}

func (c Catalog) Product(id string) (domain.Product, error) {
	const op = "Catalog.Product"

	ps := c.source.Products()
	idx := slices.IndexFunc(ps, func(p domain.Product) bool {
		return p.ID == id
	})
	if idx < 0 {
		return domain.Product{}, fmt.Errorf("%s: %q: %w", op, id, domain.ErrNotFound)
	}
	return ps[idx], nil
}

// Related returns up to four other products of the same category.
func (c Catalog) Related(p domain.Product) []domain.Product {
	related := c.filter(func(o domain.Product) bool {
		return o.Category == p.Category && o.ID != p.ID
	})
	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}
	return related
}

func (c Catalog) Featured() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.IsFeatured })
}

func (c Catalog) NewArrivals() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.IsNew })
}

func (c Catalog) Deals() []domain.Product {
	return c.filter(domain.Product.OnSale)
}

func (c Catalog) ByCategory(name string) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == name })
}

func (c Catalog) ByBrand(brand string) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Brand == brand })
}

// ByPriceRange keeps products priced within [lo, hi].
func (c Catalog) ByPriceRange(lo, hi decimal.Decimal) []domain.Product {
	return c.filter(func(p domain.Product) bool {
		return inPriceRange(p, &lo, &hi)
	})
}

// Brands returns the sorted distinct brands of the catalog.
func (c Catalog) Brands() []string {
	brands := []string{}
	for _, p := range c.source.Products() {
		if !slices.Contains(brands, p.Brand) {
			brands = append(brands, p.Brand)
		}
	}
	slices.Sort(brands)
	return brands
}

// List applies every restriction of q and then sorts the result.
func (c Catalog) List(q domain.ProductQuery) []domain.Product {
	ps := c.filter(func(p domain.Product) bool {
		f := q.Filter
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if len(f.SelectedBrands) > 0 && !f.IsBrandSelected(p.Brand) {
			return false
		}
		if f.SearchQuery != "" && !matchesSearch(p, f.SearchQuery) {
			return false
		}
		return inPriceRange(p, q.MinPrice, q.MaxPrice)
	})
	return Sort(ps, q.Sort)
}

func (c Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	ps := []domain.Product{}
	for _, p := range c.source.Products() {
		if keep(p) {
			ps = append(ps, p)
		}
	}
	return ps
}

// Sort returns a sorted copy of ps. [domain.SortFeatured] keeps catalog order.
func Sort(ps []domain.Product, order domain.SortOrder) []domain.Product {
	sorted := slices.Clone(ps)

	var less func(a, b domain.Product) int
	switch order {
	case domain.SortPriceLow:
		less = func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceHigh:
		less = func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortRating:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, less)
	return sorted
}

func inPriceRange(p domain.Product, lo, hi *decimal.Decimal) bool {
	if lo != nil && p.Price.LessThan(*lo) {
		return false
	}
	if hi != nil && p.Price.GreaterThan(*hi) {
		return false
	}
	return true
}

func matchesSearch(p domain.Product, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	for _, field := range []string{p.Name, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
