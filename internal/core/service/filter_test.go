package service

import (
	"net/url"
	"testing"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterController(t *testing.T) {
	var fc FilterController
	q := url.Values{"q": {"tv"}, "brand": {"Sony"}}

	tests := []struct {
		action string
		value  string
		want   string
	}{
		{ActionToggleBrand, "LG", "brand=Sony%2CLG&q=tv"},
		{ActionToggleBrand, "Sony", "q=tv"},
		{ActionClearBrandFilters, "", "q=tv"},
		{ActionClearAllFilters, "", ""},
		{ActionSetSearch, "oled", "brand=Sony&q=oled"},
		{ActionSetCategory, "TVs", "brand=Sony&category=TVs&q=tv"},
	}

	for _, tt := range tests {
		t.Run(tt.action+"/"+tt.value, func(t *testing.T) {
			next, err := fc.ApplyFilter(q, tt.action, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.Encode())
		})
	}

	t.Run("UnknownAction", func(t *testing.T) {
		next, err := fc.ApplyFilter(q, "sort_by_mood", "")
		assert.ErrorIs(t, err, domain.ErrUnknownFilter)
		assert.Nil(t, next)
	})

	assert.Equal(t, "brand=Sony&q=tv", q.Encode(), "input is not mutated")
}
