package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/config"
	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

// UpdateStatusRequest represents the request body for a single status change
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// orderWindowLimit returns the configured size of the loaded order window
func orderWindowLimit() int {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg.OrderWindowLimit
	}
	return 100
}

// fetchOrderWindow reads the order window for a status filter through the
// cache; stale groups are refetched from the gateway.
func fetchOrderWindow(group, subkey string, filter models.OrderFilter) (*models.OrderListResponse, error) {
	cached, err := services.GetCacheService().Resolve(group, subkey, func() (interface{}, error) {
		return services.GetGatewayService().ListOrders(filter)
	})
	if err != nil {
		return nil, err
	}
	return cached.(*models.OrderListResponse), nil
}

// ListOrders handles GET /api/v1/orders - lists the most recent order window,
// optionally filtered by status
func ListOrders(c *gin.Context) {
	filter := models.OrderFilter{Limit: orderWindowLimit()}
	subkey := "all"

	if status := c.Query("status"); status != "" && status != "all" {
		parsed := models.OrderStatus(status)
		if !parsed.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown order status filter",
				},
			})
			return
		}
		filter.Status = &parsed
		subkey = status
	}

	listing, err := fetchOrderWindow(services.GroupOrders, subkey, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listing,
	})
}

// ListActiveOrders handles GET /api/v1/orders/active - lists orders still in
// the kitchen pipeline
func ListActiveOrders(c *gin.Context) {
	cached, err := services.GetCacheService().Resolve(services.GroupActiveOrders, "", func() (interface{}, error) {
		return services.GetGatewayService().GetActiveOrders()
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cached.([]models.Order),
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:orderNumber/status - applies
// a single status transition. Pass ?view=active when issued from the active
// orders view so that listing is invalidated too.
func UpdateOrderStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	fromActiveView := c.Query("view") == "active"
	order, err := services.GetStatusService().SetStatus(orderNumber, req.Status, fromActiveView)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderStats handles GET /api/v1/orders/stats - returns the aggregate
// status breakdown
func GetOrderStats(c *gin.Context) {
	cached, err := services.GetCacheService().Resolve(services.GroupOrderStats, "", func() (interface{}, error) {
		return services.GetGatewayService().GetOrderStats()
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cached.(*models.OrderStats),
	})
}

// GetDailyMetrics handles GET /api/v1/orders/metrics/daily - returns the
// pre-aggregated daily revenue series
func GetDailyMetrics(c *gin.Context) {
	days := 0
	if cfg := config.GetConfig(); cfg != nil {
		days = cfg.MetricsDays
	}
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DAYS",
					"message": "days must be a positive integer",
				},
			})
			return
		}
		days = parsed
	}

	cached, err := services.GetCacheService().Resolve(services.GroupOrderMetrics, strconv.Itoa(days), func() (interface{}, error) {
		return services.GetGatewayService().GetDailyMetrics(days)
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cached.(*models.DailyMetricsResponse),
	})
}
