package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// PricesKey holds the shared default-price table.
const PricesKey = "default_prices"

// PriceTable is the default-price table persisted as one JSON object of
// item id to unit price. It implements catalog.PriceTable.
type PriceTable struct {
	store Store
	// mu serializes read-modify-write in SetPrice.
	mu sync.Mutex
}

// NewPriceTable returns a price table kept under PricesKey in s.
func NewPriceTable(s Store) *PriceTable {
	return &PriceTable{store: s}
}

func (p *PriceTable) Prices(ctx context.Context) (map[int]decimal.Decimal, error) {
	raw, err := p.store.Load(ctx, PricesKey)
	if errors.Is(err, ErrNotFound) {
		return map[int]decimal.Decimal{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodePrices(raw)
}

func (p *PriceTable) SetPrice(ctx context.Context, id int, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prices, err := p.Prices(ctx)
	if err != nil {
		return err
	}
	prices[id] = price
	return p.save(ctx, prices)
}

// Clear removes a promoted price so the catalog base applies again. It
// reports whether the id was present.
func (p *PriceTable) Clear(ctx context.Context, id int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prices, err := p.Prices(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := prices[id]; !ok {
		return false, nil
	}
	delete(prices, id)
	return true, p.save(ctx, prices)
}

func (p *PriceTable) save(ctx context.Context, prices map[int]decimal.Decimal) error {
	raw, err := encodePrices(prices)
	if err != nil {
		return err
	}
	return p.store.Save(ctx, PricesKey, raw)
}

// EnsurePrices writes an empty table if none exists. It reports whether it
// wrote one.
func EnsurePrices(ctx context.Context, s Store) (bool, error) {
	_, err := s.Load(ctx, PricesKey)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if err := s.Save(ctx, PricesKey, []byte("{}")); err != nil {
		return false, err
	}
	return true, nil
}

func encodePrices(prices map[int]decimal.Decimal) ([]byte, error) {
	out := make(map[string]decimal.Decimal, len(prices))
	for id, price := range prices {
		out[strconv.Itoa(id)] = price
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode default prices: %w", err)
	}
	return raw, nil
}

func decodePrices(raw []byte) (map[int]decimal.Decimal, error) {
	var in map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode default prices: %w", err)
	}
	out := make(map[int]decimal.Decimal, len(in))
	for k, price := range in {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("decode default prices: bad item id %q", k)
		}
		out[id] = price
	}
	return out, nil
}
