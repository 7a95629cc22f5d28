package services

import (
	"sort"
	"strings"
	"time"

	"github.com/tablebird/tablebird-console/models"
)

// activityWindow is the recency cutoff for the Active/Inactive customer split.
const activityWindow = 30 * 24 * time.Hour

// topProductCount is how many products the top-products board shows.
const topProductCount = 5

// AnalyticsServiceInterface derives all console analytics from the currently
// loaded order window. Every computation is a full recompute over its input;
// nothing is maintained incrementally, and inputs are never mutated.
type AnalyticsServiceInterface interface {
	TopProducts(orders []models.Order) []models.ProductSales
	Customers(orders []models.Order, now time.Time) []models.CustomerStats
	UniqueCustomerCount(orders []models.Order) int
	BuildSalesReport(series []models.DailyMetric) []models.SalesReportRow
	RevenueTotal(series []models.DailyMetric) float64
	StatusDistribution(stats *models.OrderStats) []models.StatusCount
}

// AnalyticsService implements AnalyticsServiceInterface. It is stateless.
type AnalyticsService struct{}

var analyticsServiceInstance AnalyticsServiceInterface

// InitAnalyticsService initializes the analytics aggregator
func InitAnalyticsService() AnalyticsServiceInterface {
	analyticsServiceInstance = &AnalyticsService{}
	return analyticsServiceInstance
}

// GetAnalyticsService returns the initialized analytics aggregator instance
func GetAnalyticsService() AnalyticsServiceInterface {
	return analyticsServiceInstance
}

// SetAnalyticsService sets the analytics aggregator instance (primarily for testing)
func SetAnalyticsService(service AnalyticsServiceInterface) {
	analyticsServiceInstance = service
}

// TopProducts groups the window's line items by product name and returns the
// five best sellers by units sold. Cancelled orders are excluded entirely,
// including every line item on them. Ties keep the order in which products
// were first seen in the window, so output is deterministic for a given input.
func (a *AnalyticsService) TopProducts(orders []models.Order) []models.ProductSales {
	totals := make(map[string]*models.ProductSales)
	var firstSeen []string

	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		for _, item := range order.Items {
			entry, exists := totals[item.Name]
			if !exists {
				entry = &models.ProductSales{Name: item.Name}
				totals[item.Name] = entry
				firstSeen = append(firstSeen, item.Name)
			}
			entry.Sales += item.Quantity
			entry.Revenue += item.Subtotal
		}
	}

	products := make([]models.ProductSales, 0, len(firstSeen))
	for _, name := range firstSeen {
		products = append(products, *totals[name])
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Sales > products[j].Sales
	})

	if len(products) > topProductCount {
		products = products[:topProductCount]
	}
	return products
}

// Customers groups the whole window (cancelled orders included) by phone
// number and derives per-customer lifetime stats. The display name comes from
// the customer's most recent order so later corrections win, and a customer
// is Active only when their last order is strictly inside the 30-day window
// ending at now. Output is sorted by total spend, highest first; ties keep
// first-seen order.
func (a *AnalyticsService) Customers(orders []models.Order, now time.Time) []models.CustomerStats {
	type accumulator struct {
		stats    models.CustomerStats
		lastSeen time.Time
	}

	byPhone := make(map[string]*accumulator)
	var firstSeen []string

	for _, order := range orders {
		acc, exists := byPhone[order.PhoneNumber]
		if !exists {
			acc = &accumulator{
				stats: models.CustomerStats{
					Name:          order.UserName,
					Phone:         order.PhoneNumber,
					LastOrderDate: order.CreatedAt,
				},
				lastSeen: order.CreatedAt,
			}
			byPhone[order.PhoneNumber] = acc
			firstSeen = append(firstSeen, order.PhoneNumber)
		}

		acc.stats.TotalOrders++
		acc.stats.TotalSpent += order.Total

		// The most recent order wins both the display name and the last-order
		// date; names on newer orders reflect corrections.
		if !order.CreatedAt.Before(acc.lastSeen) {
			acc.lastSeen = order.CreatedAt
			acc.stats.LastOrderDate = order.CreatedAt
			acc.stats.Name = order.UserName
		}
	}

	cutoff := now.Add(-activityWindow)
	customers := make([]models.CustomerStats, 0, len(firstSeen))
	for _, phone := range firstSeen {
		stats := byPhone[phone].stats
		if stats.LastOrderDate.After(cutoff) {
			stats.Status = models.CustomerActive
		} else {
			stats.Status = models.CustomerInactive
		}
		customers = append(customers, stats)
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalSpent > customers[j].TotalSpent
	})
	return customers
}

// UniqueCustomerCount counts distinct phone numbers in the window.
func (a *AnalyticsService) UniqueCustomerCount(orders []models.Order) int {
	phones := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		phones[order.PhoneNumber] = struct{}{}
	}
	return len(phones)
}

// BuildSalesReport reshapes the gateway's daily series for the sales report,
// adding the derived average order value per day.
func (a *AnalyticsService) BuildSalesReport(series []models.DailyMetric) []models.SalesReportRow {
	rows := make([]models.SalesReportRow, 0, len(series))
	for _, metric := range series {
		row := models.SalesReportRow{
			Date:    metric.Date,
			Day:     metric.Day,
			Orders:  metric.Orders,
			Revenue: metric.Revenue,
		}
		if metric.Orders > 0 {
			row.AvgOrderValue = metric.Revenue / float64(metric.Orders)
		}
		rows = append(rows, row)
	}
	return rows
}

// RevenueTotal sums revenue across the daily series.
func (a *AnalyticsService) RevenueTotal(series []models.DailyMetric) float64 {
	var total float64
	for _, metric := range series {
		total += metric.Revenue
	}
	return total
}

// StatusDistribution reshapes the gateway's status counts for the
// distribution chart. Statuses with a zero count are dropped; underscores in
// status names become spaces for display. Output follows the canonical
// status order.
func (a *AnalyticsService) StatusDistribution(stats *models.OrderStats) []models.StatusCount {
	if stats == nil {
		return nil
	}

	distribution := make([]models.StatusCount, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		count := stats.ByStatus[status]
		if count == 0 {
			continue
		}
		distribution = append(distribution, models.StatusCount{
			Name:  strings.ReplaceAll(string(status), "_", " "),
			Value: count,
		})
	}
	return distribution
}
