package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/shopspring/decimal"
)

// Query parameters of the product listing besides the filter ones.
const (
	sortParam     = "sort"
	minPriceParam = "min_price"
	maxPriceParam = "max_price"
)

const cartPath = "/cart"

// A StorefrontHandler serves the storefront navigation surface.
type StorefrontHandler struct {
	catalog  port.CatalogReader
	filter   port.FilterApplier
	checkout port.OrderPlacer
	orders   port.OrderReader
}

// Deps are the ports the router needs. All fields are required.
type Deps struct {
	Catalog  port.CatalogReader
	Filter   port.FilterApplier
	Checkout port.OrderPlacer
	Orders   port.OrderReader
	Sessions port.SessionOpener
}

func NewRouter(deps Deps, sessionCfg SessionConfig) http.Handler {
	h := StorefrontHandler{
		catalog:  deps.Catalog,
		filter:   deps.Filter,
		checkout: deps.Checkout,
		orders:   deps.Orders,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(AllowJSON)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/featured", h.Featured)
		r.Get("/products/new", h.NewArrivals)
		r.Get("/products/deals", h.Deals)
		r.Get("/categories", h.Categories)
		r.Get("/categories/{name}/products", h.CategoryProducts)
		r.Get("/brands", h.Brands)
		r.Post("/filter", h.ApplyFilter)
		r.Get("/orders/{number}", h.GetOrder)

		r.Group(func(r chi.Router) {
			r.Use(WithSession(deps.Sessions, sessionCfg))

			r.Get("/products/{id}", h.GetProduct)

			r.Get("/cart", h.GetCart)
			r.Delete("/cart", h.ClearCart)
			r.Post("/cart/items", h.AddToCart)
			r.Delete("/cart/items/{id}", h.RemoveFromCart)
			r.Post("/cart/items/{id}/increase", h.IncreaseQty)
			r.Post("/cart/items/{id}/decrease", h.DecreaseQty)

			r.Get("/favorites", h.GetFavorites)
			r.Get("/favorites/{id}", h.GetFavorite)
			r.Post("/favorites/{id}", h.AddToFavorites)
			r.Delete("/favorites/{id}", h.RemoveFromFavorites)
			r.Post("/favorites/{id}/toggle", h.ToggleFavorite)

			r.Post("/checkout", h.Checkout)
			r.Get("/notifications", h.Notifications)
		})
	})

	return r
}

func (h StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.ListProducts"

	q := r.URL.Query()
	query, err := parseProductQuery(q)
	if err != nil {
		writeError(w, op, err)
		return
	}

	writeJSON(w, op, http.StatusOK, ProductsResponse{
		Products:         nonNilProducts(h.catalog.List(query)),
		Filter:           query.Filter,
		HasActiveFilters: query.Filter.HasActiveFilters(),
		Sort:             query.Sort,
	})
}

func (h StorefrontHandler) Featured(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Featured"
	writeJSON(w, op, http.StatusOK, nonNilProducts(h.catalog.Featured()))
}

func (h StorefrontHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.NewArrivals"
	writeJSON(w, op, http.StatusOK, nonNilProducts(h.catalog.NewArrivals()))
}

func (h StorefrontHandler) Deals(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Deals"
	writeJSON(w, op, http.StatusOK, nonNilProducts(h.catalog.Deals()))
}

func (h StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetProduct"

	p, err := h.catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, op, err)
		return
	}

	s := sessionFrom(r.Context())
	writeJSON(w, op, http.StatusOK, ProductDetailResponse{
		Product:    p,
		Related:    nonNilProducts(h.catalog.Related(p)),
		IsFavorite: s.Favorites().IsFavorite(p.ID),
	})
}

func (h StorefrontHandler) Categories(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Categories"
	writeJSON(w, op, http.StatusOK, h.catalog.Categories())
}

func (h StorefrontHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.CategoryProducts"

	name := chi.URLParam(r, "name")
	writeJSON(w, op, http.StatusOK, CategoryProductsResponse{
		Category: name,
		Products: nonNilProducts(h.catalog.ByCategory(name)),
	})
}

func (h StorefrontHandler) Brands(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Brands"
	writeJSON(w, op, http.StatusOK, h.catalog.Brands())
}

func (h StorefrontHandler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.ApplyFilter"
	log := slog.With("op", op)

	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	q, err := url.ParseQuery(req.Query)
	if err != nil {
		http.Error(w, "invalid query", http.StatusBadRequest)
		log.Warn("failed to parse query", "err", err)
		return
	}

	next, err := h.filter.ApplyFilter(q, req.Action, req.Value)
	if err != nil {
		writeError(w, op, err)
		return
	}

	writeJSON(w, op, http.StatusOK, FilterResponse{
		Query:  next.Encode(),
		Filter: domain.ParseFilter(next),
	})
}

func (h StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetCart"
	s := sessionFrom(r.Context())
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.ClearCart"
	s := sessionFrom(r.Context())
	s.Cart().ClearCart(r.Context())
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.AddToCart"
	log := slog.With("op", op)

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.catalog.Product(req.ProductID)
	if err != nil {
		writeError(w, op, err)
		return
	}

	s := sessionFrom(r.Context())
	if err := s.Cart().AddToCart(r.Context(), p); err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.RemoveFromCart"
	s := sessionFrom(r.Context())
	s.Cart().RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) IncreaseQty(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.IncreaseQty"
	s := sessionFrom(r.Context())
	if err := s.Cart().IncreaseQty(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) DecreaseQty(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.DecreaseQty"
	s := sessionFrom(r.Context())
	s.Cart().DecreaseQty(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, op, http.StatusOK, newCartResponse(s.Cart().State()))
}

func (h StorefrontHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetFavorites"
	favorites := sessionFrom(r.Context()).Favorites().Favorites()
	writeJSON(w, op, http.StatusOK, FavoritesResponse{
		Products: nonNilProducts(favorites),
		Count:    len(favorites),
	})
}

func (h StorefrontHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetFavorite"
	id := chi.URLParam(r, "id")
	s := sessionFrom(r.Context())
	writeJSON(w, op, http.StatusOK, FavoriteStatus{
		ProductID:  id,
		IsFavorite: s.Favorites().IsFavorite(id),
	})
}

func (h StorefrontHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.AddToFavorites"

	p, err := h.catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, op, err)
		return
	}

	s := sessionFrom(r.Context())
	s.Favorites().AddToFavorites(r.Context(), p)
	writeJSON(w, op, http.StatusOK, FavoriteStatus{p.ID, s.Favorites().IsFavorite(p.ID)})
}

func (h StorefrontHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.RemoveFromFavorites"
	id := chi.URLParam(r, "id")
	s := sessionFrom(r.Context())
	s.Favorites().RemoveFromFavorites(r.Context(), id)
	writeJSON(w, op, http.StatusOK, FavoriteStatus{id, s.Favorites().IsFavorite(id)})
}

func (h StorefrontHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.ToggleFavorite"

	p, err := h.catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, op, err)
		return
	}

	s := sessionFrom(r.Context())
	s.Favorites().ToggleFavorite(r.Context(), p)
	writeJSON(w, op, http.StatusOK, FavoriteStatus{p.ID, s.Favorites().IsFavorite(p.ID)})
}

func (h StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Checkout"
	log := slog.With("op", op)

	var form domain.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	s := sessionFrom(r.Context())
	order, err := h.checkout.PlaceOrder(r.Context(), s, form)
	if err != nil {
		writeError(w, op, err)
		return
	}

	log.Info("order placed", "number", order.Number, "items", len(order.Items))
	writeJSON(w, op, http.StatusCreated, OrderResponse{order})
}

func (h StorefrontHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetOrder"

	order, err := h.orders.ReadOrder(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, op, http.StatusOK, OrderResponse{order})
}

func (h StorefrontHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.Notifications"
	s := sessionFrom(r.Context())
	writeJSON(w, op, http.StatusOK, NotificationsResponse{s.Notifications()})
}

func parseProductQuery(q url.Values) (domain.ProductQuery, error) {
	query := domain.ProductQuery{
		Filter: domain.ParseFilter(q),
		Sort:   domain.ParseSortOrder(q.Get(sortParam)),
	}

	var err error
	if query.MinPrice, err = parsePrice(q, minPriceParam); err != nil {
		return domain.ProductQuery{}, err
	}
	if query.MaxPrice, err = parsePrice(q, maxPriceParam); err != nil {
		return domain.ProductQuery{}, err
	}
	return query, nil
}

func parsePrice(q url.Values, param string) (*decimal.Decimal, error) {
	raw := q.Get(param)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, &domain.ValidationError{
			Fields: map[string]string{param: "must be a non-negative number"},
		}
	}
	return &d, nil
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, op string, err error) {
	log := slog.With("op", op)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, op, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, op, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, op, http.StatusConflict, ErrorResponse{
			Error:    domain.ErrEmptyCart.Error(),
			Redirect: cartPath,
		})
	case errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrStockLimit),
		errors.Is(err, domain.ErrSubmitInProgress):
		writeJSON(w, op, http.StatusConflict, ErrorResponse{Error: rootErr(err)})
	case errors.Is(err, domain.ErrUnknownFilter):
		writeJSON(w, op, http.StatusBadRequest, ErrorResponse{
			Error: domain.ErrUnknownFilter.Error(),
		})
	default:
		log.Error("request failed", "err", err)
		writeJSON(w, op, http.StatusServiceUnavailable, ErrorResponse{
			Error: "service unavailable",
		})
	}
}

func rootErr(err error) string {
	for _, target := range []error{
		domain.ErrOutOfStock, domain.ErrStockLimit, domain.ErrSubmitInProgress,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
