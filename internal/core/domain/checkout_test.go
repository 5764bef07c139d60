package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  string
		shipping  string
		tax       string
		total     string
		remaining string
	}{
		{"Empty", "0", "49.99", "0.00", "49.99", "500.01"},
		{"BelowThreshold", "450", "49.99", "36.00", "535.99", "50.01"},
		{"AtThreshold", "500", "49.99", "40.00", "589.99", "0.01"},
		{"AboveThreshold", "600", "0", "48.00", "648.00", "0"},
		{"TaxRounding", "149.99", "49.99", "12.00", "211.98", "350.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(decimal.RequireFromString(tt.subtotal))

			assert.Equal(t, tt.shipping, s.Shipping.String())
			assert.Equal(t, tt.tax, s.Tax.StringFixed(2))
			assert.Equal(t, tt.total, s.Total.StringFixed(2))
			assert.Equal(t, tt.remaining, s.FreeShippingRemaining.String())
		})
	}
}
