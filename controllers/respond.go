package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/services"
	"github.com/tablebird/tablebird-console/utils"
)

// respondServiceError maps the service error taxonomy onto the response
// envelope. Validation problems are the caller's fault; an expired session
// means the client must return to login; everything from the gateway is a
// transient upstream failure.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    validationErr.Code,
				"message": validationErr.Message,
			},
		})
		return
	}

	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}

	var authErr *services.AuthExpiredError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH_EXPIRED",
				"message": "Session expired, please log in again",
			},
		})
		return
	}

	var gatewayErr *services.GatewayError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GATEWAY_UNAVAILABLE",
				"message": "The order service is currently unavailable",
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Unexpected error",
		},
	})
}
