package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"mealplanner/nutrition"
)

// DefaultCurrency is used when a price list does not name one.
const DefaultCurrency = "INR"

// PricingProvider estimates the cost of a shopping list.
type PricingProvider interface {
	Estimate(ctx context.Context, list List) (Estimate, error)
}

// PricedItem is a shopping list item with its estimated cost.
type PricedItem struct {
	Item
	Cost float64 `json:"cost"`
}

// Estimate is the priced shopping list. Unpriced items contribute nothing to Total.
type Estimate struct {
	Currency string       `json:"currency"`
	Total    float64      `json:"estimated_total_cost"`
	Lines    []PricedItem `json:"lines"`
	Unpriced []string     `json:"unpriced,omitempty"`
}

// Price is the cost of 100 g, 100 ml or one piece of an item.
type Price struct {
	Amount float64        `json:"price"`
	Unit   nutrition.Unit `json:"unit"`
}

// PriceTable is a PricingProvider backed by a static price list.
type PriceTable struct {
	currency string
	prices   map[string]Price
}

type priceDocument struct {
	Currency string           `json:"currency"`
	Prices   map[string]Price `json:"prices"`
}

// NewPriceTable builds a table over prices. Keys are normalized like ingredient names.
func NewPriceTable(currency string, prices map[string]Price) *PriceTable {
	if currency == "" {
		currency = DefaultCurrency
	}
	p := make(map[string]Price, len(prices))
	for name, price := range prices {
		p[nutrition.Normalize(name)] = price
	}
	return &PriceTable{currency: currency, prices: p}
}

// LoadPriceTable decodes {"currency": "INR", "prices": {"rice": {"price": 12, "unit": "g"}}}.
func LoadPriceTable(data []byte) (*PriceTable, error) {
	var doc priceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode price list: %w", err)
	}
	for name, p := range doc.Prices {
		if p.Amount < 0 {
			return nil, fmt.Errorf("price list entry %q: negative price", name)
		}
		if base, _, err := nutrition.ParseUnit(string(p.Unit)); err != nil || base != p.Unit {
			return nil, fmt.Errorf("price list entry %q: unit must be g, ml or piece, got %q", name, p.Unit)
		}
	}
	return NewPriceTable(doc.Currency, doc.Prices), nil
}

func (t *PriceTable) Estimate(ctx context.Context, list List) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}

	est := Estimate{Currency: t.currency, Lines: make([]PricedItem, 0, len(list.Items))}
	for _, item := range list.Items {
		price, ok := t.prices[item.Name]
		if !ok || price.Unit != item.Unit {
			est.Unpriced = append(est.Unpriced, item.Name)
			est.Lines = append(est.Lines, PricedItem{Item: item})
			continue
		}
		cost := price.Amount * item.Quantity
		if !item.Unit.IsCount() {
			cost /= 100
		}
		est.Lines = append(est.Lines, PricedItem{Item: item, Cost: round2(cost)})
		est.Total += cost
	}
	est.Total = round2(est.Total)
	return est, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
