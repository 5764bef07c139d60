package port

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrNoItem is returned by [LocalStorage.GetItem] for a missing key.
var ErrNoItem = errors.New("no item")

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// A LocalStorage is the string keyed record store of one client session.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
}

// A LocalStorageProvider hands out the storage namespace of a session.
type LocalStorageProvider interface {
	LocalStorage(sessionID string) LocalStorage
}

type Notifier interface {
	Notify(context.Context, domain.Notification)
}

type OrderPublisher interface {
	PublishOrder(context.Context, domain.Order) error
}

type OrderReader interface {
	ReadOrder(ctx context.Context, number string) (domain.Order, error)
}

type OrdersProcessor interface {
	runnerContextWg
	closer
}

type ProductsSource interface {
	Products() []domain.Product
	Categories() []domain.Category
}

type CatalogReader interface {
	Products() []domain.Product
	Categories() []domain.Category
	Product(id string) (domain.Product, error)
	Related(p domain.Product) []domain.Product
	Featured() []domain.Product
	NewArrivals() []domain.Product
	Deals() []domain.Product
	ByCategory(name string) []domain.Product
	Brands() []string
	List(domain.ProductQuery) []domain.Product
}

type CartStore interface {
	AddToCart(context.Context, domain.Product) error
	RemoveFromCart(ctx context.Context, productID string)
	IncreaseQty(ctx context.Context, productID string) error
	DecreaseQty(ctx context.Context, productID string)
	ClearCart(context.Context)
	State() domain.CartState
	CartTotal() decimal.Decimal
}

type FavoritesStore interface {
	AddToFavorites(context.Context, domain.Product)
	RemoveFromFavorites(ctx context.Context, productID string)
	ToggleFavorite(context.Context, domain.Product)
	IsFavorite(productID string) bool
	Favorites() []domain.Product
}

// A Session bundles the stores owned by one client.
type Session interface {
	Notifier
	ID() string
	Cart() CartStore
	Favorites() FavoritesStore
	Notifications() []domain.Notification
	StartSubmit() bool
	FinishSubmit()
}

type SessionOpener interface {
	Open(ctx context.Context, sessionID string) Session
}

type OrderPlacer interface {
	PlaceOrder(context.Context, Session, domain.CheckoutForm) (domain.Order, error)
	Summary(Session) domain.CartSummary
}

type FilterApplier interface {
	ApplyFilter(q url.Values, action, value string) (url.Values, error)
}
