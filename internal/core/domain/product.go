package domain

import "github.com/shopspring/decimal"

type (
	Product struct {
		ID            string            `json:"id"`
		Name          string            `json:"name"`
		Category      string            `json:"category"`
		Price         decimal.Decimal   `json:"price"`
		OriginalPrice *decimal.Decimal  `json:"originalPrice,omitempty"`
		Image         string            `json:"image"`
		Rating        float64           `json:"rating"`
		Reviews       int               `json:"reviews"`
		InStock       bool              `json:"inStock"`
		IsFeatured    bool              `json:"isFeatured,omitempty"`
		IsNew         bool              `json:"isNew,omitempty"`
		Brand         string            `json:"brand"`
		Description   string            `json:"description"`
		Specs         map[string]string `json:"specs"`
	}

	Category struct {
		Name  string `json:"name"`
		Image string `json:"image"`
		Count int    `json:"count"`
	}
)

// OnSale reports whether the product carries a discounted original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// ParseSortOrder falls back to [SortFeatured] for unknown values.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(s); o {
	case SortPriceLow, SortPriceHigh, SortRating:
		return o
	default:
		return SortFeatured
	}
}

// A ProductQuery narrows the catalog listing.
//
// Zero values mean "no restriction".
type ProductQuery struct {
	Filter   FilterState
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortOrder
}
