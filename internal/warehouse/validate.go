package warehouse

import (
	"context"
	"fmt"

	"github.com/shivamkr/orderpipe/pkg/database"
)

// validatedTables is the fixed order counts are reported in.
var validatedTables = []string{
	"staging_raw",
	"products",
	"customers",
	"time_dimension",
	"transactions",
}

// TableCount is a row count for one warehouse table.
type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// Validate counts every staging and star-schema table. The staging count
// must equal the transactions count after a successful build; the caller
// decides whether a mismatch is fatal.
func Validate(ctx context.Context, db *database.DB) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(validatedTables))
	for _, table := range validatedTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Count: count})
	}
	return counts, nil
}
