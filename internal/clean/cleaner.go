// Package clean runs the field-level cleaning pipeline over one yearly
// order export: per-column normalizers, median fills, duplicate resolution
// and catalogue-based price correction, in that order. Later stages depend
// on already-cleaned cells, so the order is fixed.
package clean

import (
	"strconv"

	"github.com/shivamkr/orderpipe/internal/catalogue"
	"github.com/shivamkr/orderpipe/internal/clean/normalize"
	"github.com/shivamkr/orderpipe/internal/dataset"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

const (
	colOrderDate    = "order_date"
	colPrice        = "original_price_inr"
	colRating       = "customer_rating"
	colCity         = "customer_city"
	colCategory     = "category"
	colDeliveryDays = "delivery_days"
	colPayment      = "payment_method"
	colProductID    = "product_id"
)

var booleanColumns = []string{"is_prime_member", "is_prime_eligible", "is_festival_sale"}

// Stats summarizes what one cleaning run did to a dataset.
type Stats struct {
	RowsIn            int
	RowsOut           int
	DuplicatesDropped int
	PricesCorrected   int
	PricesFilled      int
	DeliveryFilled    int
}

// Cleaner applies the full cleaning pipeline. The catalogue may be nil, in
// which case price correction is skipped.
type Cleaner struct {
	cat *catalogue.Catalogue
	log *logger.Logger
}

// New creates a Cleaner.
func New(cat *catalogue.Catalogue, log *logger.Logger) *Cleaner {
	return &Cleaner{cat: cat, log: log}
}

// Clean mutates the table in place and returns run statistics.
func (c *Cleaner) Clean(table *dataset.Table) Stats {
	stats := Stats{RowsIn: table.NumRows()}

	c.normalizeDates(table)
	stats.PricesFilled = c.normalizePrices(table)
	c.normalizeRatings(table)
	c.normalizeCities(table)
	c.normalizeBooleans(table)
	c.normalizeCategories(table)
	stats.DeliveryFilled = c.normalizeDelivery(table)
	c.normalizePayments(table)

	stats.DuplicatesDropped = dropDuplicates(table)
	stats.PricesCorrected = c.correctPrices(table)

	stats.RowsOut = table.NumRows()
	return stats
}

// column looks up a column and logs a warning when the export lacks it.
// A missing column skips its stage rather than aborting the run.
func (c *Cleaner) column(table *dataset.Table, name string) (int, bool) {
	idx, ok := table.Column(name)
	if !ok {
		c.log.WithField("column", name).Warn("Column not found, skipping stage")
	}
	return idx, ok
}

func (c *Cleaner) normalizeDates(table *dataset.Table) {
	idx, ok := c.column(table, colOrderDate)
	if !ok {
		return
	}
	for _, row := range table.Rows {
		if parsed, ok := normalize.Date(row[idx]); ok {
			row[idx] = normalize.FormatDate(parsed)
		} else {
			row[idx] = ""
		}
	}
}

func (c *Cleaner) normalizePrices(table *dataset.Table) int {
	idx, ok := c.column(table, colPrice)
	if !ok {
		return 0
	}

	parsed := make([]float64, 0, table.NumRows())
	missing := make([]int, 0)
	for i, row := range table.Rows {
		if price, ok := normalize.Price(row[idx]); ok {
			row[idx] = formatFloat(price)
			parsed = append(parsed, price)
		} else {
			missing = append(missing, i)
		}
	}

	fill, ok := normalize.Median(parsed)
	if !ok && len(missing) > 0 {
		c.log.WithField("column", colPrice).Warn("No parseable values, filling missing with 0")
	}
	for _, i := range missing {
		table.Rows[i][idx] = formatFloat(fill)
	}
	return len(missing)
}

func (c *Cleaner) normalizeRatings(table *dataset.Table) {
	idx, ok := c.column(table, colRating)
	if !ok {
		return
	}
	for _, row := range table.Rows {
		if rating, ok := normalize.Rating(row[idx]); ok {
			row[idx] = formatFloat(rating)
		} else {
			row[idx] = ""
		}
	}
}

func (c *Cleaner) normalizeCities(table *dataset.Table) {
	idx, ok := c.column(table, colCity)
	if !ok {
		return
	}
	for _, row := range table.Rows {
		if city, ok := normalize.City(row[idx]); ok {
			row[idx] = city
		} else {
			row[idx] = ""
		}
	}
}

func (c *Cleaner) normalizeBooleans(table *dataset.Table) {
	for _, name := range booleanColumns {
		idx, ok := c.column(table, name)
		if !ok {
			continue
		}
		for _, row := range table.Rows {
			row[idx] = strconv.FormatBool(normalize.Boolean(row[idx]))
		}
	}
}

func (c *Cleaner) normalizeCategories(table *dataset.Table) {
	idx, ok := c.column(table, colCategory)
	if !ok {
		return
	}
	for _, row := range table.Rows {
		row[idx] = normalize.Category(row[idx])
	}
}

func (c *Cleaner) normalizeDelivery(table *dataset.Table) int {
	idx, ok := c.column(table, colDeliveryDays)
	if !ok {
		return 0
	}

	parsed := make([]float64, 0, table.NumRows())
	missing := make([]int, 0)
	for i, row := range table.Rows {
		if days, ok := normalize.DeliveryDays(row[idx]); ok {
			row[idx] = strconv.Itoa(days)
			parsed = append(parsed, float64(days))
		} else {
			missing = append(missing, i)
		}
	}

	median, ok := normalize.Median(parsed)
	if !ok && len(missing) > 0 {
		c.log.WithField("column", colDeliveryDays).Warn("No parseable values, filling missing with 0")
	}
	fill := strconv.Itoa(int(median))
	for _, i := range missing {
		table.Rows[i][idx] = fill
	}
	return len(missing)
}

func (c *Cleaner) normalizePayments(table *dataset.Table) {
	idx, ok := c.column(table, colPayment)
	if !ok {
		return
	}
	for _, row := range table.Rows {
		row[idx] = normalize.PaymentMethod(row[idx])
	}
}

// correctPrices left-joins the catalogue on product_id and fixes
// decimal-shift and gross-outlier prices. Rows without a catalogue match
// pass through unchanged.
func (c *Cleaner) correctPrices(table *dataset.Table) int {
	if c.cat == nil {
		c.log.Warn("No catalogue loaded, skipping price correction")
		return 0
	}
	priceIdx, ok := c.column(table, colPrice)
	if !ok {
		return 0
	}
	prodIdx, ok := c.column(table, colProductID)
	if !ok {
		return 0
	}

	corrected := 0
	for _, row := range table.Rows {
		sale, err := strconv.ParseFloat(row[priceIdx], 64)
		if err != nil {
			continue
		}
		base, baseOK := c.cat.BasePrice(row[prodIdx])
		fixed := CorrectPrice(sale, base, baseOK)
		if fixed != sale {
			corrected++
		}
		row[priceIdx] = formatFloat(fixed)
	}
	return corrected
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
