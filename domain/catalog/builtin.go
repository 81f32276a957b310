package catalog

// Grouping IDs used by the built-in catalog
const (
	GroupingGender  = "gender"
	GroupingChannel = "channel"
)

// Metric IDs used by the built-in catalog
const (
	MetricAvgOrderValue       = "avg_order_value"
	MetricItemsPerOrder       = "items_per_order"
	MetricClicksBeforeBooking = "clicks_before_booking"
	MetricDeliveryCost        = "delivery_cost"
	MetricDistinctProducts    = "distinct_products"
	MetricPaymentMethod       = "payment_method"
)

// Default returns the built-in catalog over the e-commerce warehouse.
// Each query returns one row per entity (booking, session or customer)
// shaped as (entity_id, value, group_label). The rd_* tables and the
// upstream categorization helpers are data-preparation concerns owned
// outside this module.
func Default() *Catalog {
	groupings := []Grouping{
		{
			ID:          GroupingGender,
			DisplayName: "Gender",
			GroupALabel: "M",
			GroupBLabel: "F",
		},
		{
			ID:          GroupingChannel,
			DisplayName: "Traffic source",
			GroupALabel: "WEB",
			GroupBLabel: "MOBILE",
		},
	}

	metrics := []Metric{
		{
			ID:          MetricAvgOrderValue,
			DisplayName: "Average order value",
			ValueKind:   KindNumeric,
			Queries: map[string]string{
				GroupingGender: `
					SELECT t.booking_id AS entity_id,
					       t.total_amount AS value,
					       c.gender AS group_label
					FROM rd_transactions t
					JOIN rd_customers c ON t.customer_id = c.customer_id`,
				GroupingChannel: `
					SELECT t.booking_id AS entity_id,
					       t.total_amount AS value,
					       s.traffic_source AS group_label
					FROM rd_transactions t
					JOIN rd_sessions s ON t.session_id = s.session_id`,
			},
		},
		{
			ID:          MetricItemsPerOrder,
			DisplayName: "Number of items per order",
			ValueKind:   KindNumeric,
			Queries: map[string]string{
				GroupingGender: `
					WITH prods AS (
						SELECT t.booking_id, t.customer_id,
						       SUM(tp.quantity) AS total_quantity
						FROM rd_transactions t
						JOIN rd_transactions_prods tp ON t.booking_id = tp.booking_id
						GROUP BY t.booking_id, t.customer_id
					)
					SELECT p.booking_id AS entity_id,
					       CAST(p.total_quantity AS DOUBLE PRECISION) AS value,
					       c.gender AS group_label
					FROM prods p
					JOIN rd_customers c ON p.customer_id = c.customer_id`,
				GroupingChannel: `
					WITH prods AS (
						SELECT t.booking_id, t.session_id,
						       SUM(tp.quantity) AS total_quantity
						FROM rd_transactions t
						JOIN rd_transactions_prods tp ON t.booking_id = tp.booking_id
						GROUP BY t.booking_id, t.session_id
					)
					SELECT p.booking_id AS entity_id,
					       CAST(p.total_quantity AS DOUBLE PRECISION) AS value,
					       s.traffic_source AS group_label
					FROM prods p
					JOIN rd_sessions s ON p.session_id = s.session_id`,
			},
		},
		{
			ID:          MetricClicksBeforeBooking,
			DisplayName: "Number of clicks before booking",
			ValueKind:   KindNumeric,
			Queries: map[string]string{
				GroupingGender: `
					SELECT s.session_id AS entity_id,
					       CAST(s.click_cnt AS DOUBLE PRECISION) AS value,
					       c.gender AS group_label
					FROM rd_sessions s
					JOIN rd_transactions t ON s.session_id = t.session_id
					JOIN rd_customers c ON t.customer_id = c.customer_id`,
				GroupingChannel: `
					SELECT s.session_id AS entity_id,
					       CAST(s.click_cnt AS DOUBLE PRECISION) AS value,
					       s.traffic_source AS group_label
					FROM rd_sessions s
					JOIN rd_transactions t ON s.session_id = t.session_id`,
			},
		},
		{
			ID:          MetricDeliveryCost,
			DisplayName: "Average delivery cost",
			ValueKind:   KindNumeric,
			Queries: map[string]string{
				GroupingGender: `
					SELECT t.booking_id AS entity_id,
					       t.shipment_fee AS value,
					       c.gender AS group_label
					FROM rd_transactions t
					JOIN rd_customers c ON t.customer_id = c.customer_id`,
				GroupingChannel: `
					SELECT t.booking_id AS entity_id,
					       t.shipment_fee AS value,
					       s.traffic_source AS group_label
					FROM rd_transactions t
					JOIN rd_sessions s ON t.session_id = s.session_id`,
			},
		},
		{
			ID:          MetricDistinctProducts,
			DisplayName: "Number of unique products",
			ValueKind:   KindNumeric,
			Queries: map[string]string{
				GroupingGender: `
					WITH unique_prods AS (
						SELECT t.booking_id, t.customer_id,
						       COUNT(DISTINCT tp.product_id) AS unique_prods
						FROM rd_transactions t
						JOIN rd_transactions_prods tp ON t.booking_id = tp.booking_id
						GROUP BY t.booking_id, t.customer_id
					)
					SELECT u.booking_id AS entity_id,
					       CAST(u.unique_prods AS DOUBLE PRECISION) AS value,
					       c.gender AS group_label
					FROM unique_prods u
					JOIN rd_customers c ON u.customer_id = c.customer_id`,
				GroupingChannel: `
					WITH unique_prods AS (
						SELECT t.booking_id, t.session_id,
						       COUNT(DISTINCT tp.product_id) AS unique_prods
						FROM rd_transactions t
						JOIN rd_transactions_prods tp ON t.booking_id = tp.booking_id
						GROUP BY t.booking_id, t.session_id
					)
					SELECT u.booking_id AS entity_id,
					       CAST(u.unique_prods AS DOUBLE PRECISION) AS value,
					       s.traffic_source AS group_label
					FROM unique_prods u
					JOIN rd_sessions s ON u.session_id = s.session_id`,
			},
		},
		{
			ID:          MetricPaymentMethod,
			DisplayName: "Payment method",
			ValueKind:   KindCategorical,
			Queries: map[string]string{
				GroupingGender: `
					SELECT DISTINCT CAST(c.customer_id AS TEXT) AS entity_id,
					       t.payment_method AS value,
					       c.gender AS group_label
					FROM rd_transactions t
					JOIN rd_customers c ON t.customer_id = c.customer_id`,
				GroupingChannel: `
					SELECT DISTINCT CAST(c.customer_id AS TEXT) AS entity_id,
					       t.payment_method AS value,
					       s.traffic_source AS group_label
					FROM rd_transactions t
					JOIN rd_sessions s ON t.session_id = s.session_id
					JOIN rd_customers c ON t.customer_id = c.customer_id`,
			},
		},
	}

	return New(metrics, groupings)
}
