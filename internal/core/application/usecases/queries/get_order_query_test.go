package queries_test

import (
	"testing"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_AcceptsUUID(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetOrderQuery(id.String())

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	require.NotNil(t, q.ID())
	assert.True(t, q.ID().IsEqual(id))
	assert.Nil(t, q.Code())
}

func TestNewGetOrderQuery_AcceptsOrderCode(t *testing.T) {
	q, err := queries.NewGetOrderQuery("LAUNDRY-2025-00069")

	require.NoError(t, err)
	require.NotNil(t, q.Code())
	assert.Equal(t, int64(69), q.Code().Sequence())
	assert.Nil(t, q.ID())
}

func TestNewGetOrderQuery_RejectsGarbage(t *testing.T) {
	for _, key := range []string{"", "garbage", "LAUNDRY-69", "2025-00069"} {
		_, err := queries.NewGetOrderQuery(key)

		require.Error(t, err, "key %q should be rejected", key)
	}
}

func TestGetOrderQuery_NotConstructed(t *testing.T) {
	q := queries.GetOrderQuery{}

	err := q.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewListOrdersQuery_ClampsPaging(t *testing.T) {
	q := queries.NewListOrdersQuery(queries.ListOrdersParams{Page: -3, Limit: 1000})

	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 100, q.Limit())
}

func TestNewListOrdersQuery_Defaults(t *testing.T) {
	q := queries.NewListOrdersQuery(queries.ListOrdersParams{})

	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 10, q.Limit())
	assert.Equal(t, "created_at", q.SortBy())
	assert.True(t, q.SortDesc())
}

func TestNewListOrdersQuery_RejectsUnknownSortColumn(t *testing.T) {
	q := queries.NewListOrdersQuery(queries.ListOrdersParams{
		SortBy: "customer_phone; DROP TABLE orders",
	})

	assert.Equal(t, "created_at", q.SortBy())
}

func TestNewListOrdersQuery_KeepsWhitelistedSort(t *testing.T) {
	q := queries.NewListOrdersQuery(queries.ListOrdersParams{SortBy: "total_amount"})

	assert.Equal(t, "total_amount", q.SortBy())
	assert.False(t, q.SortDesc())
}
