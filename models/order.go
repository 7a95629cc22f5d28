package models

import "time"

// OrderStatus is the closed set of fulfillment states an order can be in.
// Staff may move an order from any status to any other; the console does not
// impose a transition graph.
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// IsValid reports whether s is one of the six known statuses.
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderLineItem is a single line of an order. Line items are immutable once
// the order exists; subtotal is precomputed by the gateway (price × quantity).
type OrderLineItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Order represents an order as served by the remote gateway. The order number
// is the primary key throughout the console; no surrogate id exists client-side.
// Orders are created by the external ordering channel and mutated here only
// through status transitions.
type Order struct {
	OrderNumber string          `json:"order_number"`
	UserName    string          `json:"user_name"`
	PhoneNumber string          `json:"phone_number"`
	Items       []OrderLineItem `json:"items"`
	Total       float64         `json:"total"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderListResponse is the gateway's paged order listing.
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// OrderFilter narrows an order listing. A nil Status means all statuses.
type OrderFilter struct {
	Status *OrderStatus
	Limit  int
}

// OrderStats is the gateway's aggregate status breakdown.
type OrderStats struct {
	TotalOrders int                 `json:"total_orders"`
	ByStatus    map[OrderStatus]int `json:"by_status"`
}

// DailyMetric is one day of the gateway's pre-aggregated revenue series.
type DailyMetric struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// DailyMetricsResponse wraps the daily revenue series.
type DailyMetricsResponse struct {
	Series []DailyMetric `json:"series"`
}

// BulkStatusUpdate is the payload for the gateway's bulk transition endpoint:
// one target status applied to a set of order numbers in a single request.
type BulkStatusUpdate struct {
	OrderNumbers []string     `json:"order_numbers"`
	StatusUpdate StatusUpdate `json:"status_update"`
}

// StatusUpdate carries a single target status.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// BulkUpdateResult is the gateway's whole-batch acknowledgement. The gateway
// reports one outcome for the entire batch, not per order.
type BulkUpdateResult struct {
	Message string `json:"message"`
}
