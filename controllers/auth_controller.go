package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/services"
)

// LoginRequest represents the request body for staff login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - authenticates a staff member
// against the gateway and persists the session
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	response, err := services.GetAuthService().Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    response,
	})
}

// Logout handles POST /api/v1/auth/logout - drops the persisted session
func Logout(c *gin.Context) {
	if err := services.GetAuthService().Logout(); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetCurrentUser handles GET /api/v1/auth/me - returns the persisted staff profile
func GetCurrentUser(c *gin.Context) {
	user, exists := services.GetAuthService().CurrentUser()
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_SESSION",
				"message": "No active session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
