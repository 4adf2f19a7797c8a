package catalog

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// PriceTable is the shared table of promoted default unit prices. A missing
// id is a normal outcome and means the catalog base price applies.
type PriceTable interface {
	Prices(ctx context.Context) (map[int]decimal.Decimal, error)
	SetPrice(ctx context.Context, id int, price decimal.Decimal) error
}

// MemoryPrices is an in-process PriceTable.
type MemoryPrices struct {
	mu     sync.Mutex
	prices map[int]decimal.Decimal
}

// NewMemoryPrices returns an empty in-memory price table.
func NewMemoryPrices() *MemoryPrices {
	return &MemoryPrices{prices: make(map[int]decimal.Decimal)}
}

func (m *MemoryPrices) Prices(context.Context) (map[int]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]decimal.Decimal, len(m.prices))
	for id, p := range m.prices {
		out[id] = p
	}
	return out, nil
}

func (m *MemoryPrices) SetPrice(_ context.Context, id int, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[id] = price
	return nil
}
