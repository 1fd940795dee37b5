// Package warehouse loads the master dataset into PostgreSQL and builds
// the analytics star schema on top of the staging table.
package warehouse

import (
	"context"
	"fmt"

	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

const stagingDDL = `
DROP TABLE IF EXISTS staging_raw;

CREATE TABLE staging_raw (
    transaction_id TEXT,
    order_date DATE,

    customer_id TEXT,
    product_id TEXT,
    product_name TEXT,
    category TEXT,
    subcategory TEXT,
    brand TEXT,

    original_price_inr NUMERIC,
    discount_percent NUMERIC,
    discounted_price_inr NUMERIC,

    quantity INT,
    subtotal_inr NUMERIC,
    delivery_charges NUMERIC,
    final_amount_inr NUMERIC,

    customer_city TEXT,
    customer_state TEXT,
    customer_tier TEXT,
    customer_spending_tier TEXT,
    customer_age_group TEXT,

    payment_method TEXT,

    delivery_days INT,
    delivery_type TEXT,

    is_prime_member BOOLEAN,
    is_festival_sale BOOLEAN,
    festival_name TEXT,

    customer_rating NUMERIC,
    return_status TEXT,

    order_month INT,
    order_year INT,
    order_quarter INT,

    product_weight_kg NUMERIC,
    is_prime_eligible BOOLEAN,
    product_rating NUMERIC
);
`

const starSchemaSQL = `
SET search_path TO public;

DROP TABLE IF EXISTS transactions CASCADE;
DROP TABLE IF EXISTS products CASCADE;
DROP TABLE IF EXISTS customers CASCADE;
DROP TABLE IF EXISTS time_dimension CASCADE;

CREATE TABLE products (
    product_id TEXT PRIMARY KEY,
    product_name TEXT,
    category TEXT,
    subcategory TEXT,
    brand TEXT,
    product_weight_kg NUMERIC,
    is_prime_eligible BOOLEAN,
    product_rating NUMERIC(3,2)
);

CREATE TABLE customers (
    customer_id TEXT PRIMARY KEY,
    customer_city TEXT,
    customer_state TEXT,
    customer_tier TEXT,
    customer_spending_tier TEXT,
    customer_age_group TEXT,
    is_prime_member BOOLEAN
);

CREATE TABLE time_dimension (
    date_key DATE PRIMARY KEY,
    year INT,
    quarter INT,
    month INT,
    month_name TEXT,
    week INT,
    day INT,
    day_name TEXT,
    is_weekend BOOLEAN
);

CREATE TABLE transactions (
    transaction_id TEXT PRIMARY KEY,

    order_date DATE,
    date_key DATE REFERENCES time_dimension(date_key),

    customer_id TEXT REFERENCES customers(customer_id),
    product_id TEXT REFERENCES products(product_id),

    quantity INT,
    subtotal_inr NUMERIC,
    discount_percent NUMERIC,
    discounted_price_inr NUMERIC,
    delivery_charges NUMERIC,
    final_amount_inr NUMERIC,

    delivery_days INT,
    delivery_type TEXT,

    payment_method TEXT,
    return_status TEXT,

    is_festival_sale BOOLEAN,
    festival_name TEXT,

    customer_rating NUMERIC(3,2)
);

INSERT INTO products
SELECT DISTINCT
    product_id,
    product_name,
    category,
    subcategory,
    brand,
    product_weight_kg,
    is_prime_eligible,
    product_rating
FROM staging_raw;

INSERT INTO customers
SELECT
    customer_id,
    MAX(customer_city),
    MAX(customer_state),
    MAX(customer_tier),
    MAX(customer_spending_tier),
    MAX(customer_age_group),
    BOOL_OR(is_prime_member)
FROM staging_raw
GROUP BY customer_id;

INSERT INTO time_dimension
SELECT
    order_date,
    MAX(order_year),
    MAX(order_quarter),
    MAX(order_month),
    TO_CHAR(order_date,'Month'),
    EXTRACT(WEEK FROM order_date),
    EXTRACT(DAY FROM order_date),
    TO_CHAR(order_date,'Day'),
    CASE
        WHEN EXTRACT(DOW FROM order_date) IN (0,6)
        THEN TRUE ELSE FALSE
    END
FROM staging_raw
GROUP BY order_date;

INSERT INTO transactions
SELECT
    transaction_id,
    order_date,
    order_date,
    customer_id,
    product_id,
    quantity,
    subtotal_inr,
    discount_percent,
    discounted_price_inr,
    delivery_charges,
    final_amount_inr,
    delivery_days,
    delivery_type,
    payment_method,
    return_status,
    is_festival_sale,
    festival_name,
    customer_rating
FROM staging_raw;

CREATE INDEX idx_txn_date ON transactions(order_date);
CREATE INDEX idx_txn_customer ON transactions(customer_id);
CREATE INDEX idx_txn_product ON transactions(product_id);
CREATE INDEX idx_txn_return ON transactions(return_status);
CREATE INDEX idx_txn_amount ON transactions(final_amount_inr);

CREATE INDEX idx_products_category ON products(category);
CREATE INDEX idx_products_subcategory ON products(subcategory);

CREATE INDEX idx_customers_city ON customers(customer_city);
CREATE INDEX idx_customers_state ON customers(customer_state);
`

// CreateStaging drops and recreates the staging table.
func CreateStaging(ctx context.Context, db *database.DB) error {
	if _, err := db.Pool.Exec(ctx, stagingDDL); err != nil {
		return fmt.Errorf("create staging table: %w", err)
	}
	return nil
}

// BuildStarSchema rebuilds the dimension and fact tables from staging_raw.
// Everything runs in one transaction so a failed build leaves the previous
// schema untouched.
func BuildStarSchema(ctx context.Context, db *database.DB, log *logger.Logger) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin star schema build: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, starSchemaSQL); err != nil {
		return fmt.Errorf("build star schema: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit star schema build: %w", err)
	}

	log.Info("Star schema built")
	return nil
}
