package clean

import (
	"strconv"
	"strings"

	"github.com/shivamkr/orderpipe/internal/dataset"
)

// identityKey is the column tuple under which two order rows count as the
// same order.
type identityKey struct {
	customerID  string
	productID   string
	orderDate   string
	finalAmount string
}

// dropDuplicates removes rows whose identity key occurs more than once and
// whose quantity is exactly 1. Duplicate rows with any other quantity are
// bulk or repeat orders and stay. Runs on cleaned cells, single pass.
func dropDuplicates(table *dataset.Table) int {
	custIdx, ok1 := table.Column("customer_id")
	prodIdx, ok2 := table.Column("product_id")
	dateIdx, ok3 := table.Column("order_date")
	amountIdx, ok4 := table.Column("final_amount_inr")
	qtyIdx, ok5 := table.Column("quantity")
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return 0
	}

	counts := make(map[identityKey]int, table.NumRows())
	for _, row := range table.Rows {
		counts[keyOf(row, custIdx, prodIdx, dateIdx, amountIdx)]++
	}

	kept := table.Rows[:0]
	dropped := 0
	for _, row := range table.Rows {
		if counts[keyOf(row, custIdx, prodIdx, dateIdx, amountIdx)] >= 2 && quantityIsOne(row[qtyIdx]) {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept
	return dropped
}

func keyOf(row []string, custIdx, prodIdx, dateIdx, amountIdx int) identityKey {
	return identityKey{
		customerID:  row[custIdx],
		productID:   row[prodIdx],
		orderDate:   row[dateIdx],
		finalAmount: row[amountIdx],
	}
}

func quantityIsOne(raw string) bool {
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}
	return qty == 1
}
