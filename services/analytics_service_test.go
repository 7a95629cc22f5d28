package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tablebird/tablebird-console/models"
)

func item(name string, price float64, quantity int) models.OrderLineItem {
	return models.OrderLineItem{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Subtotal: price * float64(quantity),
	}
}

func TestTopProductsExcludesCancelledOrders(t *testing.T) {
	analytics := &AnalyticsService{}

	orders := []models.Order{
		{
			OrderNumber: "A1",
			PhoneNumber: "555",
			Status:      models.StatusDelivered,
			Total:       20,
			Items:       []models.OrderLineItem{item("Margherita", 10, 2)},
		},
		{
			OrderNumber: "A2",
			PhoneNumber: "555",
			Status:      models.StatusCancelled,
			Total:       30,
			Items:       []models.OrderLineItem{item("Pepperoni", 15, 2)},
		},
	}

	products := analytics.TopProducts(orders)

	// Every item on the cancelled order is excluded
	assert.Len(t, products, 1)
	assert.Equal(t, "Margherita", products[0].Name)
	assert.Equal(t, 2, products[0].Sales)
	assert.Equal(t, 20.0, products[0].Revenue)
}

func TestTopProductsSalesConservation(t *testing.T) {
	// Across all products, total sales must equal the total quantity over
	// every non-cancelled line item.
	analytics := &AnalyticsService{}

	orders := []models.Order{
		{OrderNumber: "A1", Status: models.StatusConfirmed, Items: []models.OrderLineItem{item("Pizza", 10, 3), item("Cola", 2, 4)}},
		{OrderNumber: "A2", Status: models.StatusDelivered, Items: []models.OrderLineItem{item("Pizza", 10, 1), item("Fries", 4, 2)}},
		{OrderNumber: "A3", Status: models.StatusCancelled, Items: []models.OrderLineItem{item("Pizza", 10, 9)}},
	}

	products := analytics.TopProducts(orders)

	totalSales := 0
	for _, product := range products {
		totalSales += product.Sales
	}

	expected := 0
	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		for _, lineItem := range order.Items {
			expected += lineItem.Quantity
		}
	}
	assert.Equal(t, expected, totalSales)
	assert.Equal(t, 10, totalSales)
}

func TestTopProductsTakesTopFiveBySales(t *testing.T) {
	analytics := &AnalyticsService{}

	var orders []models.Order
	names := []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}
	for i, name := range names {
		orders = append(orders, models.Order{
			OrderNumber: name,
			Status:      models.StatusDelivered,
			Items:       []models.OrderLineItem{item(name, 5, i+1)},
		})
	}

	products := analytics.TopProducts(orders)

	assert.Len(t, products, 5)
	assert.Equal(t, "P7", products[0].Name)
	assert.Equal(t, 7, products[0].Sales)
	assert.Equal(t, "P3", products[4].Name)
}

func TestTopProductsTiesKeepFirstSeenOrder(t *testing.T) {
	analytics := &AnalyticsService{}

	orders := []models.Order{
		{OrderNumber: "A1", Status: models.StatusDelivered, Items: []models.OrderLineItem{item("Alpha", 5, 2), item("Beta", 5, 2)}},
	}

	products := analytics.TopProducts(orders)

	assert.Len(t, products, 2)
	assert.Equal(t, "Alpha", products[0].Name)
	assert.Equal(t, "Beta", products[1].Name)
}

func TestTopProductsDoesNotMutateInput(t *testing.T) {
	analytics := &AnalyticsService{}

	orders := []models.Order{
		{OrderNumber: "A1", Status: models.StatusDelivered, Items: []models.OrderLineItem{item("Pizza", 10, 2)}},
	}

	_ = analytics.TopProducts(orders)

	assert.Equal(t, "A1", orders[0].OrderNumber)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestCustomersAggregatesAllStatuses(t *testing.T) {
	// The scenario from the order data model: cancelled orders still count
	// toward customer totals.
	analytics := &AnalyticsService{}
	now := time.Now()

	orders := []models.Order{
		makeOrder("A1", "Jordan", "555", 20, models.StatusDelivered, now.Add(-48*time.Hour)),
		makeOrder("A2", "Jordan", "555", 30, models.StatusCancelled, now.Add(-24*time.Hour)),
	}

	customers := analytics.Customers(orders, now)

	assert.Len(t, customers, 1)
	assert.Equal(t, "555", customers[0].Phone)
	assert.Equal(t, 2, customers[0].TotalOrders)
	assert.Equal(t, 50.0, customers[0].TotalSpent)
	assert.Equal(t, models.CustomerActive, customers[0].Status)
}

func TestCustomersTotalSpentMatchesOrderTotals(t *testing.T) {
	analytics := &AnalyticsService{}
	now := time.Now()

	orders := []models.Order{
		makeOrder("A1", "Jordan", "555", 20, models.StatusDelivered, now.Add(-time.Hour)),
		makeOrder("A2", "Sam", "777", 15, models.StatusConfirmed, now.Add(-2*time.Hour)),
		makeOrder("A3", "Jordan", "555", 5, models.StatusCancelled, now.Add(-3*time.Hour)),
	}

	customers := analytics.Customers(orders, now)

	byPhone := make(map[string]models.CustomerStats)
	for _, customer := range customers {
		byPhone[customer.Phone] = customer
	}

	assert.Equal(t, 25.0, byPhone["555"].TotalSpent)
	assert.Equal(t, 15.0, byPhone["777"].TotalSpent)

	// Sorted by spend, highest first
	assert.Equal(t, "555", customers[0].Phone)
}

func TestCustomersMostRecentNameWins(t *testing.T) {
	analytics := &AnalyticsService{}
	now := time.Now()

	// The newer order carries a corrected name but appears later in the window
	orders := []models.Order{
		makeOrder("A2", "Jordan R.", "555", 30, models.StatusDelivered, now.Add(-time.Hour)),
		makeOrder("A1", "Jordn", "555", 20, models.StatusDelivered, now.Add(-72*time.Hour)),
	}

	customers := analytics.Customers(orders, now)

	assert.Len(t, customers, 1)
	assert.Equal(t, "Jordan R.", customers[0].Name)
	assert.Equal(t, orders[0].CreatedAt, customers[0].LastOrderDate)
}

func TestCustomerActivityBoundary(t *testing.T) {
	analytics := &AnalyticsService{}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastOrder time.Time
		expected  models.CustomerActivity
	}{
		{
			name:      "Order just inside 30 days is Active",
			lastOrder: now.Add(-30*24*time.Hour + time.Second),
			expected:  models.CustomerActive,
		},
		{
			name:      "Order exactly 30 days ago is Inactive",
			lastOrder: now.Add(-30 * 24 * time.Hour),
			expected:  models.CustomerInactive,
		},
		{
			name:      "Order older than 30 days is Inactive",
			lastOrder: now.Add(-31 * 24 * time.Hour),
			expected:  models.CustomerInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := []models.Order{
				makeOrder("A1", "Jordan", "555", 20, models.StatusDelivered, tt.lastOrder),
			}
			customers := analytics.Customers(orders, now)
			assert.Len(t, customers, 1)
			assert.Equal(t, tt.expected, customers[0].Status)
		})
	}
}

func TestUniqueCustomerCount(t *testing.T) {
	analytics := &AnalyticsService{}
	now := time.Now()

	orders := []models.Order{
		makeOrder("A1", "Jordan", "555", 20, models.StatusDelivered, now),
		makeOrder("A2", "Jordan", "555", 30, models.StatusConfirmed, now),
		makeOrder("A3", "Sam", "777", 10, models.StatusCancelled, now),
	}

	assert.Equal(t, 2, analytics.UniqueCustomerCount(orders))
	assert.Equal(t, 0, analytics.UniqueCustomerCount(nil))
}

func TestBuildSalesReport(t *testing.T) {
	analytics := &AnalyticsService{}

	series := []models.DailyMetric{
		{Date: "2026-08-28", Day: "Fri", Orders: 4, Revenue: 100},
		{Date: "2026-08-29", Day: "Sat", Orders: 0, Revenue: 0},
	}

	report := analytics.BuildSalesReport(series)

	assert.Len(t, report, 2)
	assert.Equal(t, 25.0, report[0].AvgOrderValue)
	// A day with no orders has no average
	assert.Equal(t, 0.0, report[1].AvgOrderValue)
}

func TestRevenueTotal(t *testing.T) {
	analytics := &AnalyticsService{}

	series := []models.DailyMetric{
		{Revenue: 100.5},
		{Revenue: 49.5},
	}

	assert.Equal(t, 150.0, analytics.RevenueTotal(series))
	assert.Equal(t, 0.0, analytics.RevenueTotal(nil))
}

func TestStatusDistributionDropsZeroCounts(t *testing.T) {
	analytics := &AnalyticsService{}

	stats := &models.OrderStats{
		TotalOrders: 7,
		ByStatus: map[models.OrderStatus]int{
			models.StatusConfirmed:      3,
			models.StatusPreparing:      0,
			models.StatusOutForDelivery: 4,
		},
	}

	distribution := analytics.StatusDistribution(stats)

	assert.Len(t, distribution, 2)
	assert.Equal(t, "confirmed", distribution[0].Name)
	assert.Equal(t, 3, distribution[0].Value)
	// Underscores become spaces for display
	assert.Equal(t, "out for delivery", distribution[1].Name)
	assert.Equal(t, 4, distribution[1].Value)
}

func TestStatusDistributionNilStats(t *testing.T) {
	analytics := &AnalyticsService{}
	assert.Nil(t, analytics.StatusDistribution(nil))
}
