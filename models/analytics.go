package models

import "time"

// ProductSales is the per-product aggregate derived from the order window.
type ProductSales struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// CustomerActivity classifies a customer by order recency.
type CustomerActivity string

const (
	CustomerActive   CustomerActivity = "Active"
	CustomerInactive CustomerActivity = "Inactive"
)

// CustomerStats is the per-customer aggregate keyed by phone number. It is
// derived from the order window on every read and never persisted. Name is
// the display name from the customer's most recent order, so later
// corrections win.
type CustomerStats struct {
	Name          string           `json:"name"`
	Phone         string           `json:"phone"`
	TotalOrders   int              `json:"total_orders"`
	TotalSpent    float64          `json:"total_spent"`
	LastOrderDate time.Time        `json:"last_order_date"`
	Status        CustomerActivity `json:"status"`
}

// SalesReportRow is one day of the sales report: the gateway's daily metric
// plus the derived average order value.
type SalesReportRow struct {
	Date          string  `json:"date"`
	Day           string  `json:"day"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// StatusCount is one slice of the status distribution chart.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardSummary is the headline card row of the dashboard.
type DashboardSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	TotalProducts  int     `json:"total_products"`
}
