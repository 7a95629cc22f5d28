package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/config"
	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

// dashboardWindow reads the unfiltered order window the dashboard analytics
// are computed from.
func dashboardWindow() (*models.OrderListResponse, error) {
	return fetchOrderWindow(services.GroupOrders, "all", models.OrderFilter{Limit: orderWindowLimit()})
}

// metricsSeries reads the configured daily revenue series through the cache.
func metricsSeries() (*models.DailyMetricsResponse, error) {
	days := 10
	if cfg := config.GetConfig(); cfg != nil {
		days = cfg.MetricsDays
	}
	cached, err := services.GetCacheService().Resolve(services.GroupOrderMetrics, strconv.Itoa(days), func() (interface{}, error) {
		return services.GetGatewayService().GetDailyMetrics(days)
	})
	if err != nil {
		return nil, err
	}
	return cached.(*models.DailyMetricsResponse), nil
}

// GetTopProducts handles GET /api/v1/analytics/top-products - the five best
// selling products in the order window, cancelled orders excluded
func GetTopProducts(c *gin.Context) {
	listing, err := dashboardWindow()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	products := services.GetAnalyticsService().TopProducts(listing.Orders)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetCustomers handles GET /api/v1/analytics/customers - per-customer
// lifetime stats derived from the order window
func GetCustomers(c *gin.Context) {
	listing, err := dashboardWindow()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	customers := services.GetAnalyticsService().Customers(listing.Orders, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetSalesReport handles GET /api/v1/analytics/sales-report - the daily
// series with derived average order values
func GetSalesReport(c *gin.Context) {
	metrics, err := metricsSeries()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	report := services.GetAnalyticsService().BuildSalesReport(metrics.Series)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// GetStatusDistribution handles GET /api/v1/analytics/status-distribution -
// the status breakdown shaped for charting, zero counts dropped
func GetStatusDistribution(c *gin.Context) {
	cached, err := services.GetCacheService().Resolve(services.GroupOrderStats, "", func() (interface{}, error) {
		return services.GetGatewayService().GetOrderStats()
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	distribution := services.GetAnalyticsService().StatusDistribution(cached.(*models.OrderStats))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    distribution,
	})
}

// GetDashboardSummary handles GET /api/v1/analytics/summary - the headline
// numbers for the dashboard cards
func GetDashboardSummary(c *gin.Context) {
	analytics := services.GetAnalyticsService()

	metrics, err := metricsSeries()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	statsCached, err := services.GetCacheService().Resolve(services.GroupOrderStats, "", func() (interface{}, error) {
		return services.GetGatewayService().GetOrderStats()
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	stats := statsCached.(*models.OrderStats)

	listing, err := dashboardWindow()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	menuCached, err := services.GetCacheService().Resolve(services.GroupMenu, "", func() (interface{}, error) {
		return services.GetGatewayService().ListMenuItems(menuListLimit)
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	menu := menuCached.(*models.MenuListResponse)

	summary := models.DashboardSummary{
		TotalRevenue:   analytics.RevenueTotal(metrics.Series),
		TotalOrders:    stats.TotalOrders,
		TotalCustomers: analytics.UniqueCustomerCount(listing.Orders),
		TotalProducts:  menu.Total,
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
