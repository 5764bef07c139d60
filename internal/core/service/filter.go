package service

import (
	"fmt"
	"net/url"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var _ port.FilterApplier = FilterController{}

// Filter actions accepted by [FilterController.ApplyFilter].
const (
	ActionToggleBrand       = "toggle_brand"
	ActionClearBrandFilters = "clear_brands"
	ActionClearAllFilters   = "clear_all"
	ActionSetSearch         = "set_search"
	ActionSetCategory       = "set_category"
)

// A FilterController rewrites URL queries. It keeps no state of its own.
type FilterController struct{}

func (FilterController) ApplyFilter(
	q url.Values, action, value string,
) (url.Values, error) {
	const op = "FilterController.ApplyFilter"

	switch action {
	case ActionToggleBrand:
		return domain.ToggleBrand(q, value), nil
	case ActionClearBrandFilters:
		return domain.ClearBrandFilters(q), nil
	case ActionClearAllFilters:
		return domain.ClearAllFilters(q), nil
	case ActionSetSearch:
		return domain.SetSearch(q, value), nil
	case ActionSetCategory:
		return domain.SetCategory(q, value), nil
	default:
		return nil, fmt.Errorf("%s: %q: %w", op, action, domain.ErrUnknownFilter)
	}
}
