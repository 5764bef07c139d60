package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is exclusive: only subtotals strictly
	// above it ship for free.
	FreeShippingThreshold = decimal.NewFromInt(500)
	ShippingFee           = decimal.RequireFromString("49.99")
	TaxRate               = decimal.RequireFromString("0.08")

	cent = decimal.New(1, -2)
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type CheckoutForm struct {
	FullName      string        `json:"fullName" validate:"required,min=3"`
	Phone         string        `json:"phone" validate:"required,phone"`
	Address       string        `json:"address" validate:"required,min=10"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"oneof=cash card"`
}

// A CartSummary holds the money figures shown on cart and checkout views.
type CartSummary struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
}

// Shipping returns the flat fee unless subtotal is strictly above
// [FreeShippingThreshold].
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

func Summarize(subtotal decimal.Decimal) CartSummary {
	shipping := Shipping(subtotal)
	tax := subtotal.Mul(TaxRate).Round(2)

	// smallest amount that lifts the subtotal strictly above the threshold
	remaining := decimal.Zero
	if !shipping.IsZero() {
		remaining = FreeShippingThreshold.Sub(subtotal).Add(cent)
	}

	return CartSummary{
		Subtotal:              subtotal,
		Shipping:              shipping,
		Tax:                   tax,
		Total:                 subtotal.Add(shipping).Add(tax),
		FreeShippingRemaining: remaining,
	}
}

// An Order is the confirmation of a simulated checkout.
type Order struct {
	Number        string        `json:"number"`
	FullName      string        `json:"fullName"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Items         []CartItem    `json:"items"`
	Summary       CartSummary   `json:"summary"`
	PlacedAt      time.Time     `json:"placedAt"`
}
