package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

// ToggleOneRequest represents the request body for selecting a single order
type ToggleOneRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Checked     *bool  `json:"checked" binding:"required"`
}

// ToggleAllRequest represents the request body for the select-all control
type ToggleAllRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

// TargetStatusRequest represents the request body for the pending bulk status
type TargetStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// fetchBulkListing reads the bulk view's order window through the cache
func fetchBulkListing() (*models.OrderListResponse, error) {
	return fetchOrderWindow(services.GroupBulkListing, "", models.OrderFilter{Limit: orderWindowLimit()})
}

// ListBulkOrders handles GET /api/v1/orders/bulk - the order window managed
// by the bulk update view
func ListBulkOrders(c *gin.Context) {
	listing, err := fetchBulkListing()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listing,
	})
}

// GetBulkSelection handles GET /api/v1/orders/bulk/selection - returns the
// current selection, pending status and select-all state
func GetBulkSelection(c *gin.Context) {
	bulk := services.GetBulkService()

	listing, err := fetchBulkListing()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"selected":        bulk.Selected(),
			"target_status":   bulk.TargetStatus(),
			"selection_state": bulk.State(len(listing.Orders)),
		},
	})
}

// ToggleBulkOrder handles POST /api/v1/orders/bulk/toggle - adds or removes
// one order from the selection
func ToggleBulkOrder(c *gin.Context) {
	var req ToggleOneRequest
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

	services.GetBulkService().ToggleOne(req.OrderNumber, *req.Checked)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"selected": services.GetBulkService().Selected(),
		},
	})
}

// ToggleAllBulkOrders handles POST /api/v1/orders/bulk/toggle-all - selects
// the full loaded window or clears the selection
func ToggleAllBulkOrders(c *gin.Context) {
	var req ToggleAllRequest
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

	var numbers []string
	if *req.Checked {
		listing, err := fetchBulkListing()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		for _, order := range listing.Orders {
			numbers = append(numbers, order.OrderNumber)
		}
	}

	services.GetBulkService().ToggleAll(numbers, *req.Checked)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"selected": services.GetBulkService().Selected(),
		},
	})
}

// SetBulkTargetStatus handles PUT /api/v1/orders/bulk/target - stores the
// pending target status for the selection
func SetBulkTargetStatus(c *gin.Context) {
	var req TargetStatusRequest
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

	if err := services.GetBulkService().SetTargetStatus(req.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"target_status": services.GetBulkService().TargetStatus(),
		},
	})
}

// ApplyBulkUpdate handles POST /api/v1/orders/bulk/apply - issues one batched
// status transition for the whole selection
func ApplyBulkUpdate(c *gin.Context) {
	result, err := services.GetBulkService().ApplyBulk()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
