package httphandler

import (
	"github.com/niksmo/electrostyle/internal/core/domain"
)

type (
	ProductsResponse struct {
		Products         []domain.Product   `json:"products"`
		Filter           domain.FilterState `json:"filter"`
		HasActiveFilters bool               `json:"hasActiveFilters"`
		Sort             domain.SortOrder   `json:"sort"`
	}

	ProductDetailResponse struct {
		Product    domain.Product   `json:"product"`
		Related    []domain.Product `json:"related"`
		IsFavorite bool             `json:"isFavorite"`
	}

	CategoryProductsResponse struct {
		Category string           `json:"category"`
		Products []domain.Product `json:"products"`
	}
)

type (
	FilterRequest struct {
		Query  string `json:"query"`
		Action string `json:"action"`
		Value  string `json:"value"`
	}

	FilterResponse struct {
		Query  string             `json:"query"`
		Filter domain.FilterState `json:"filter"`
	}
)

type (
	AddToCartRequest struct {
		ProductID string `json:"productId"`
	}

	CartResponse struct {
		Items   []domain.CartItem  `json:"items"`
		Count   int                `json:"count"`
		Summary domain.CartSummary `json:"summary"`
	}

	FavoritesResponse struct {
		Products []domain.Product `json:"products"`
		Count    int              `json:"count"`
	}

	FavoriteStatus struct {
		ProductID  string `json:"productId"`
		IsFavorite bool   `json:"isFavorite"`
	}
)

type (
	OrderResponse struct {
		Order domain.Order `json:"order"`
	}

	NotificationsResponse struct {
		Notifications []domain.Notification `json:"notifications"`
	}

	ErrorResponse struct {
		Error    string            `json:"error"`
		Fields   map[string]string `json:"fields,omitempty"`
		Redirect string            `json:"redirect,omitempty"`
	}
)

func newCartResponse(s domain.CartState) CartResponse {
	items := s.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		Items:   items,
		Count:   s.Count,
		Summary: domain.Summarize(s.Total()),
	}
}

func nonNilProducts(ps []domain.Product) []domain.Product {
	if ps == nil {
		return []domain.Product{}
	}
	return ps
}
