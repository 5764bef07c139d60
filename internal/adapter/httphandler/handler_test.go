package httphandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/electrostyle/internal/adapter/catalog"
	"github.com/niksmo/electrostyle/internal/adapter/httphandler"
	"github.com/niksmo/electrostyle/internal/adapter/storage"
	"github.com/niksmo/electrostyle/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "electrostyle_session"

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()

	book := storage.NewMemoryOrderBook()
	router := httphandler.NewRouter(
		httphandler.Deps{
			Catalog:  service.NewCatalog(catalog.Static{}),
			Filter:   service.FilterController{},
			Checkout: service.NewCheckout(book, 0),
			Orders:   book,
			Sessions: service.NewSessions(
				storage.NewMemoryLocalStorage(),
				nil,
				service.StoreConfig{WriteAttempts: 1},
			),
		},
		httphandler.SessionConfig{CookieName: cookieName, MaxAge: time.Hour},
	)
	return &client{t: t, router: router}
}

func (c *client) do(method, target, body string, v any) int {
	c.t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		r.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, r)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			c.cookie = ck
		}
	}

	if v != nil {
		require.NoError(c.t, json.NewDecoder(w.Body).Decode(v))
	}
	return w.Code
}

func TestListProducts(t *testing.T) {
	c := newClient(t)

	t.Run("BrandFilter", func(t *testing.T) {
		var res httphandler.ProductsResponse
		code := c.do(http.MethodGet, "/v1/products?brand=Sony,LG&sort=price-low", "", &res)
		require.Equal(t, http.StatusOK, code)

		require.Len(t, res.Products, 2)
		assert.Equal(t, "Sony", res.Products[0].Brand)
		assert.Equal(t, "LG", res.Products[1].Brand)
		assert.Equal(t, []string{"Sony", "LG"}, res.Filter.SelectedBrands)
		assert.True(t, res.HasActiveFilters)
	})

	t.Run("PriceRange", func(t *testing.T) {
		var res httphandler.ProductsResponse
		code := c.do(http.MethodGet, "/v1/products?min_price=100&max_price=400", "", &res)
		require.Equal(t, http.StatusOK, code)

		require.Len(t, res.Products, 2)
		for _, p := range res.Products {
			assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(100)))
			assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(400)))
		}
	})

	t.Run("BadPrice", func(t *testing.T) {
		var res httphandler.ErrorResponse
		code := c.do(http.MethodGet, "/v1/products?min_price=abc", "", &res)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, res.Fields, "min_price")
	})

	t.Run("NoMatches", func(t *testing.T) {
		var res httphandler.ProductsResponse
		code := c.do(http.MethodGet, "/v1/products?q=toaster", "", &res)
		require.Equal(t, http.StatusOK, code)
		assert.NotNil(t, res.Products)
		assert.Empty(t, res.Products)
	})
}

func TestGetProduct(t *testing.T) {
	c := newClient(t)

	var res httphandler.ProductDetailResponse
	code := c.do(http.MethodGet, "/v1/products/1", "", &res)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1", res.Product.ID)
	for _, p := range res.Related {
		assert.Equal(t, "TVs", p.Category)
		assert.NotEqual(t, "1", p.ID)
	}

	code = c.do(http.MethodGet, "/v1/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestApplyFilter(t *testing.T) {
	c := newClient(t)

	var res httphandler.FilterResponse
	code := c.do(http.MethodPost, "/v1/filter",
		`{"query":"brand=Sony&q=tv","action":"toggle_brand","value":"LG"}`, &res)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Sony", "LG"}, res.Filter.SelectedBrands)
	assert.Equal(t, "tv", res.Filter.SearchQuery)

	code = c.do(http.MethodPost, "/v1/filter",
		`{"query":"","action":"explode"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCartFlow(t *testing.T) {
	c := newClient(t)

	var cart httphandler.CartResponse
	code := c.do(http.MethodPost, "/v1/cart/items", `{"productId":"4"}`, &cart)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, c.cookie)
	assert.Equal(t, 1, cart.Count)

	code = c.do(http.MethodPost, "/v1/cart/items/4/increase", "", &cart)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, "299.98", cart.Summary.Subtotal.StringFixed(2))
	assert.Equal(t, "49.99", cart.Summary.Shipping.StringFixed(2))

	t.Run("OutOfStock", func(t *testing.T) {
		var res httphandler.ErrorResponse
		code := c.do(http.MethodPost, "/v1/cart/items", `{"productId":"7"}`, &res)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "product is out of stock", res.Error)
	})

	t.Run("SessionIsolation", func(t *testing.T) {
		other := newClient(t)
		other.router = c.router

		var res httphandler.CartResponse
		other.do(http.MethodGet, "/v1/cart", "", &res)
		assert.Equal(t, 0, res.Count)
		assert.NotNil(t, res.Items)
	})

	code = c.do(http.MethodDelete, "/v1/cart/items/4", "", &cart)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, cart.Count)

	var notes httphandler.NotificationsResponse
	c.do(http.MethodGet, "/v1/notifications", "", &notes)
	titles := make([]string, 0, len(notes.Notifications))
	for _, n := range notes.Notifications {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{
		"Added to Cart", "Quantity Updated", "Out of Stock", "Removed from Cart",
	}, titles)

	c.do(http.MethodGet, "/v1/notifications", "", &notes)
	assert.Empty(t, notes.Notifications)
}

func TestFavorites(t *testing.T) {
	c := newClient(t)

	var status httphandler.FavoriteStatus
	c.do(http.MethodPost, "/v1/favorites/2/toggle", "", &status)
	assert.True(t, status.IsFavorite)

	var favs httphandler.FavoritesResponse
	c.do(http.MethodGet, "/v1/favorites", "", &favs)
	require.Equal(t, 1, favs.Count)
	assert.Equal(t, "2", favs.Products[0].ID)

	c.do(http.MethodPost, "/v1/favorites/2/toggle", "", &status)
	assert.False(t, status.IsFavorite)

	code := c.do(http.MethodPost, "/v1/favorites/999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCheckout(t *testing.T) {
	c := newClient(t)

	const form = `{
		"fullName": "Jane Doe",
		"phone": "+1 (555) 123-4567",
		"address": "12 Main Street, Springfield",
		"paymentMethod": "card"
	}`

	t.Run("EmptyCart", func(t *testing.T) {
		var res httphandler.ErrorResponse
		code := c.do(http.MethodPost, "/v1/checkout", form, &res)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "/cart", res.Redirect)
	})

	c.do(http.MethodPost, "/v1/cart/items", `{"productId":"6"}`, nil)

	t.Run("InvalidForm", func(t *testing.T) {
		var res httphandler.ErrorResponse
		code := c.do(http.MethodPost, "/v1/checkout",
			`{"fullName":"Jo","phone":"123","address":"short"}`, &res)
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, res.Fields, "fullName")
		assert.Contains(t, res.Fields, "phone")
		assert.Contains(t, res.Fields, "address")
	})

	var placed httphandler.OrderResponse
	code := c.do(http.MethodPost, "/v1/checkout", form, &placed)
	require.Equal(t, http.StatusCreated, code)
	assert.Len(t, placed.Order.Number, 9)

	var cart httphandler.CartResponse
	c.do(http.MethodGet, "/v1/cart", "", &cart)
	assert.Equal(t, 0, cart.Count)

	var got httphandler.OrderResponse
	code = c.do(http.MethodGet, "/v1/orders/"+placed.Order.Number, "", &got)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, placed.Order.Summary.Total.Equal(got.Order.Summary.Total))
}

func TestAllowJSON(t *testing.T) {
	c := newClient(t)

	r := httptest.NewRequest(http.MethodPost, "/v1/filter", strings.NewReader("x=1"))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}
