// Package catalogue loads the product master used to sanity-check order
// prices. Only two columns matter: the product id and its 2015 base price.
package catalogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shivamkr/orderpipe/internal/dataset"
)

const (
	productIDColumn = "product_id"
	basePriceColumn = "base_price_2015"
)

// Catalogue maps product ids to their catalogue base price.
type Catalogue struct {
	basePrices map[string]float64
}

// Load reads a catalogue file (CSV or XLSX) and indexes base prices by
// product id. Rows with a blank id or an unparseable price are skipped.
func Load(path string) (*Catalogue, error) {
	table, err := dataset.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	return FromTable(table)
}

// FromTable builds a catalogue from an already-parsed table.
func FromTable(table *dataset.Table) (*Catalogue, error) {
	idIdx, ok := table.Column(productIDColumn)
	if !ok {
		return nil, fmt.Errorf("catalogue is missing the %s column", productIDColumn)
	}
	priceIdx, ok := table.Column(basePriceColumn)
	if !ok {
		return nil, fmt.Errorf("catalogue is missing the %s column", basePriceColumn)
	}

	prices := make(map[string]float64, table.NumRows())
	for _, row := range table.Rows {
		id := strings.TrimSpace(row[idIdx])
		if id == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceIdx]), 64)
		if err != nil || price <= 0 {
			continue
		}
		prices[id] = price
	}

	return &Catalogue{basePrices: prices}, nil
}

// BasePrice returns the catalogue base price for a product id.
func (c *Catalogue) BasePrice(productID string) (float64, bool) {
	price, ok := c.basePrices[productID]
	return price, ok
}

// Len returns the number of products with a usable base price.
func (c *Catalogue) Len() int {
	return len(c.basePrices)
}
