package testkit

import (
	"context"
	"fmt"

	"shopstat/internal/errors"

	"github.com/jmoiron/sqlx"
)

// warehouseSchema creates the minimal rd_* tables the built-in catalog
// queries against. Real deployments own this schema upstream; this exists
// for local development and integration testing only.
var warehouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS rd_customers (
		customer_id BIGINT PRIMARY KEY,
		gender TEXT,
		age INT
	)`,
	`CREATE TABLE IF NOT EXISTS rd_sessions (
		session_id TEXT PRIMARY KEY,
		customer_id BIGINT REFERENCES rd_customers(customer_id),
		traffic_source TEXT,
		click_cnt INT
	)`,
	`CREATE TABLE IF NOT EXISTS rd_transactions (
		booking_id TEXT PRIMARY KEY,
		session_id TEXT REFERENCES rd_sessions(session_id),
		customer_id BIGINT REFERENCES rd_customers(customer_id),
		payment_method TEXT,
		payment_status TEXT,
		shipment_fee NUMERIC(18,2),
		total_amount NUMERIC(18,2)
	)`,
	`CREATE TABLE IF NOT EXISTS rd_transactions_prods (
		booking_id TEXT REFERENCES rd_transactions(booking_id),
		product_id BIGINT,
		quantity INT
	)`,
}

// SeedWarehouse creates the schema and loads one synthetic customer journey
// per customer: a session, a booking with products, gender and channel
// assigned from the generator's rng.
func (g *Generator) SeedWarehouse(ctx context.Context, db *sqlx.DB, customers int) error {
	for _, ddl := range warehouseSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return errors.Wrap(err, "failed to create warehouse schema")
		}
	}

	genders := []string{"M", "F"}
	channels := []string{"WEB", "MOBILE"}

	for i := 0; i < customers; i++ {
		customerID := int64(i + 1)
		gender := genders[g.rng.Intn(len(genders))]
		channel := channels[g.rng.Intn(len(channels))]
		sessionID := fmt.Sprintf("session_%06d", i+1)
		bookingID := fmt.Sprintf("booking_%06d", i+1)

		// Channel carries a mild spend effect so seeded data produces
		// non-trivial comparisons out of the box.
		amount := 140 + g.rng.NormFloat64()*45
		if channel == "MOBILE" {
			amount += g.config.GroupBShift
		}
		if amount < 5 {
			amount = 5
		}

		if _, err := db.ExecContext(ctx,
			`INSERT INTO rd_customers (customer_id, gender, age) VALUES ($1, $2, $3)
			 ON CONFLICT (customer_id) DO NOTHING`,
			customerID, gender, 18+g.rng.Intn(50)); err != nil {
			return errors.Wrap(err, "failed to seed customer")
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO rd_sessions (session_id, customer_id, traffic_source, click_cnt)
			 VALUES ($1, $2, $3, $4) ON CONFLICT (session_id) DO NOTHING`,
			sessionID, customerID, channel, 3+g.rng.Intn(25)); err != nil {
			return errors.Wrap(err, "failed to seed session")
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO rd_transactions (booking_id, session_id, customer_id, payment_method, payment_status, shipment_fee, total_amount)
			 VALUES ($1, $2, $3, $4, 'Success', $5, $6) ON CONFLICT (booking_id) DO NOTHING`,
			bookingID, sessionID, customerID,
			g.pickMethod(0), 2+g.rng.Float64()*10, amount); err != nil {
			return errors.Wrap(err, "failed to seed transaction")
		}

		for p := 0; p < 1+g.rng.Intn(4); p++ {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO rd_transactions_prods (booking_id, product_id, quantity) VALUES ($1, $2, $3)`,
				bookingID, int64(1+g.rng.Intn(500)), 1+g.rng.Intn(3)); err != nil {
				return errors.Wrap(err, "failed to seed transaction products")
			}
		}
	}
	return nil
}
