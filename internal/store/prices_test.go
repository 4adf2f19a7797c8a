package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTable_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	s := newSQLStore(t)

	empty, err := NewPriceTable(s).Prices(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, NewPriceTable(s).SetPrice(ctx, 5, decimal.RequireFromString("3.10")))
	require.NoError(t, NewPriceTable(s).SetPrice(ctx, 14, decimal.RequireFromString("79.99")))

	prices, err := NewPriceTable(s).Prices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "3.1", prices[5].String())
	assert.Equal(t, "79.99", prices[14].String())

	raw, err := s.Load(ctx, PricesKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"5":"3.1","14":"79.99"}`, string(raw))
}

func TestPriceTable_Clear(t *testing.T) {
	ctx := context.Background()
	table := NewPriceTable(NewMemoryStore())
	require.NoError(t, table.SetPrice(ctx, 5, decimal.NewFromInt(3)))

	removed, err := table.Clear(ctx, 5)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = table.Clear(ctx, 5)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPriceTable_RejectsCorruptTable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, PricesKey, []byte(`{"five":"1"}`)))

	_, err := NewPriceTable(s).Prices(ctx)
	assert.Error(t, err)
}

func TestEnsurePrices(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	wrote, err := EnsurePrices(ctx, s)
	require.NoError(t, err)
	assert.True(t, wrote)

	require.NoError(t, NewPriceTable(s).SetPrice(ctx, 5, decimal.NewFromInt(3)))
	wrote, err = EnsurePrices(ctx, s)
	require.NoError(t, err)
	assert.False(t, wrote)

	prices, err := NewPriceTable(s).Prices(ctx)
	require.NoError(t, err)
	assert.Len(t, prices, 1)
}
