package warehouse

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// setupDB connects to a real warehouse. Tests in this file are skipped
// unless ORDERPIPE_TEST_DATABASE_URL points at a disposable database.
func setupDB(t *testing.T) (*database.DB, *logger.Logger) {
	t.Helper()
	url := os.Getenv("ORDERPIPE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ORDERPIPE_TEST_DATABASE_URL not set")
	}
	t.Setenv("DATABASE_URL", url)
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return db, logger.New(cfg)
}

const testMasterCSV = `transaction_id,order_date,customer_id,product_id,product_name,category,subcategory,brand,original_price_inr,discount_percent,discounted_price_inr,quantity,subtotal_inr,delivery_charges,final_amount_inr,customer_city,customer_state,customer_tier,customer_spending_tier,customer_age_group,payment_method,delivery_days,delivery_type,is_prime_member,is_festival_sale,festival_name,customer_rating,return_status,order_month,order_year,order_quarter,product_weight_kg,is_prime_eligible,product_rating
T1,2023-04-15,C1,P1,Phone,Electronics,Mobiles,Acme,14999,10,13499.1,1,13499.1,0,13499.1,Bengaluru,Karnataka,Tier1,High,25-34,UPI,3,Standard,true,false,,4.5,Delivered,4,2023,2,0.2,true,4.3
T2,2023-04-16,C2,P2,Mixer,Home And Kitchen,Appliances,Acme,2999,0,2999,2,5998,49,6047,Mumbai,Maharashtra,Tier1,Medium,35-44,Credit Card,5,Standard,false,true,Summer Sale,3,Delivered,4,2023,2,3.1,false,4
`

func TestWarehouseEndToEnd(t *testing.T) {
	db, log := setupDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "master.csv")
	require.NoError(t, os.WriteFile(path, []byte(testMasterCSV), 0o644))

	loader := NewLoader(db, log)
	rows, err := loader.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	require.NoError(t, BuildStarSchema(ctx, db, log))

	counts, err := Validate(ctx, db)
	require.NoError(t, err)
	require.Len(t, counts, 5)

	byTable := make(map[string]int64, len(counts))
	for _, c := range counts {
		byTable[c.Table] = c.Count
	}
	assert.Equal(t, int64(2), byTable["staging_raw"])
	assert.Equal(t, int64(2), byTable["transactions"])
	assert.Equal(t, int64(2), byTable["products"])
	assert.Equal(t, int64(2), byTable["customers"])
	assert.Equal(t, int64(2), byTable["time_dimension"])
}

func TestRunRepository(t *testing.T) {
	db, log := setupDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := NewRunRepository(db, log)
	require.NoError(t, repo.EnsureSchema(ctx))

	year := 2023
	run := Run{
		RunID:             uuid.New(),
		StartedAt:         time.Now().Add(-time.Minute),
		FinishedAt:        time.Now(),
		Year:              &year,
		RowsIn:            1000,
		RowsOut:           990,
		DuplicatesDropped: 10,
		PricesCorrected:   42,
		Status:            "success",
	}
	require.NoError(t, repo.Record(ctx, run))

	runs, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, runs)

	found := false
	for _, r := range runs {
		if r.RunID == run.RunID {
			found = true
			assert.Equal(t, int64(990), r.RowsOut)
			assert.Equal(t, "success", r.Status)
			require.NotNil(t, r.Year)
			assert.Equal(t, 2023, *r.Year)
		}
	}
	assert.True(t, found)
}
