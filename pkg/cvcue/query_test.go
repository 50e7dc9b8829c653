package cvcue_test

import (
	"testing"

	"github.com/netkit-io/cvcue/pkg/cvcue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	t.Run("empty params", func(t *testing.T) {
		t.Parallel()

		values, err := cvcue.NewQueryParams().ToValues()
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("pagination and sorting", func(t *testing.T) {
		t.Parallel()

		values, err := cvcue.NewQueryParams().
			WithPage(2).
			WithPageSize(50).
			WithSortBy("-name").
			ToValues()
		require.NoError(t, err)

		assert.Equal(t, "2", values.Get("page"))
		assert.Equal(t, "50", values.Get("pageSize"))
		assert.Equal(t, "-name", values.Get("sortBy"))
	})

	t.Run("filter carried through", func(t *testing.T) {
		t.Parallel()

		filter := cvcue.NewFilterBuilder(cvcue.CombineAnd).Equals("active", true)

		values, err := cvcue.NewQueryParams().WithFilter(filter).ToValues()
		require.NoError(t, err)

		assert.NotEmpty(t, values.Get("filter"))
		assert.Equal(t, "AND", values.Get("combineOperation"))
	})

	t.Run("invalid filter fails before any request", func(t *testing.T) {
		t.Parallel()

		filter := cvcue.NewFilterBuilder(cvcue.CombineAnd)

		_, err := cvcue.NewQueryParams().WithFilter(filter).ToValues()

		filterErr := &cvcue.InvalidFilterError{}
		require.ErrorAs(t, err, &filterErr)
	})
}
