package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStockLimit       = errors.New("stock limit reached")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrSubmitInProgress = errors.New("order submission in progress")
	ErrUnknownFilter    = errors.New("unknown filter action")
)

// A ValidationError holds field level messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(e.Fields[name])
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}
