package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultStockCeiling is the per item quantity limit
// used when an item carries no explicit stock.
const DefaultStockCeiling = 99

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
	Stock    int `json:"stock,omitempty"`
}

func (i CartItem) Ceiling() int {
	if i.Stock > 0 {
		return i.Stock
	}
	return DefaultStockCeiling
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Valid reports whether the item satisfies 1 <= quantity <= ceiling.
func (i CartItem) Valid() bool {
	return i.ID != "" && i.Quantity >= 1 && i.Quantity <= i.Ceiling()
}

// A CartState is the ordered list of cart items plus the cached unit count.
//
// Count always equals the sum of item quantities.
type CartState struct {
	Items []CartItem
	Count int
}

func (s CartState) Find(productID string) (CartItem, bool) {
	idx := s.index(productID)
	if idx < 0 {
		return CartItem{}, false
	}
	return s.Items[idx], true
}

// Total returns the sum of price × quantity over all items.
func (s CartState) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CanAdd returns the rejection [ReduceCart] would silently apply
// for [AddToCart] of p, or nil.
func (s CartState) CanAdd(p Product) error {
	if !p.InStock {
		return ErrOutOfStock
	}
	if item, ok := s.Find(p.ID); ok && item.Quantity >= item.Ceiling() {
		return ErrStockLimit
	}
	return nil
}

// CanIncrease returns [ErrStockLimit] when the item is at its ceiling.
// Absent items are not an error.
func (s CartState) CanIncrease(productID string) error {
	if item, ok := s.Find(productID); ok && item.Quantity >= item.Ceiling() {
		return ErrStockLimit
	}
	return nil
}

func (s CartState) index(productID string) int {
	return slices.IndexFunc(s.Items, func(item CartItem) bool {
		return item.ID == productID
	})
}

// A CartAction is one of the closed set of cart transitions.
type CartAction interface {
	cartAction()
}

type (
	AddToCart struct {
		Product Product
	}

	RemoveFromCart struct {
		ProductID string
	}

	IncreaseQty struct {
		ProductID string
	}

	DecreaseQty struct {
		ProductID string
	}

	ClearCart struct{}

	LoadCart struct {
		Items []CartItem
	}
)

func (AddToCart) cartAction()      {}
func (RemoveFromCart) cartAction() {}
func (IncreaseQty) cartAction()    {}
func (DecreaseQty) cartAction()    {}
func (ClearCart) cartAction()      {}
func (LoadCart) cartAction()       {}

// ReduceCart applies a to s and returns the next state.
//
// It never mutates s. Rule violations leave the state unchanged.
func ReduceCart(s CartState, a CartAction) CartState {
	var items []CartItem

	switch a := a.(type) {
	case AddToCart:
		if s.CanAdd(a.Product) != nil {
			return s
		}
		idx := s.index(a.Product.ID)
		if idx < 0 {
			items = append(slices.Clone(s.Items), CartItem{
				Product:  a.Product,
				Quantity: 1,
				Stock:    DefaultStockCeiling,
			})
			break
		}
		items = slices.Clone(s.Items)
		items[idx].Quantity++

	case RemoveFromCart:
		items = slices.DeleteFunc(slices.Clone(s.Items), func(item CartItem) bool {
			return item.ID == a.ProductID
		})

	case IncreaseQty:
		items = slices.Clone(s.Items)
		if idx := s.index(a.ProductID); idx >= 0 {
			if items[idx].Quantity >= items[idx].Ceiling() {
				return s
			}
			items[idx].Quantity++
		}

	case DecreaseQty:
		items = slices.Clone(s.Items)
		if idx := s.index(a.ProductID); idx >= 0 {
			items[idx].Quantity = max(1, items[idx].Quantity-1)
		}

	case ClearCart:
		items = nil

	case LoadCart:
		items = slices.Clone(a.Items)

	default:
		return s
	}

	return CartState{Items: items, Count: countUnits(items)}
}

func countUnits(items []CartItem) (n int) {
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
