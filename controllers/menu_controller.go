package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

// menuListLimit is how many menu items the console loads at once.
const menuListLimit = 200

// MenuItemRequest represents the request body for creating or updating a menu item
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
}

// CategoryRequest represents the request body for creating or deleting a category
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryRenameRequest represents the request body for renaming a category
type CategoryRenameRequest struct {
	OldCategory string `json:"old_category"`
	NewCategory string `json:"new_category"`
}

// ListMenuItems handles GET /api/v1/menu - lists the menu through the cache
func ListMenuItems(c *gin.Context) {
	cached, err := services.GetCacheService().Resolve(services.GroupMenu, "", func() (interface{}, error) {
		return services.GetGatewayService().ListMenuItems(menuListLimit)
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cached.(*models.MenuListResponse),
	})
}

// CreateMenuItem handles POST /api/v1/menu - creates a menu item through the
// gateway and invalidates the menu group
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
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

	item, err := services.GetGatewayService().CreateMenuItem(models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenu)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/v1/menu/:id - edits a menu item
func UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Menu item id must be an integer",
			},
		})
		return
	}

	var req MenuItemRequest
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

	item, err := services.GetGatewayService().UpdateMenuItem(id, models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenu)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/v1/menu/:id - removes a menu item
func DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Menu item id must be an integer",
			},
		})
		return
	}

	if err := services.GetGatewayService().DeleteMenuItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenu)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item deleted",
	})
}

// ListCategories handles GET /api/v1/menu/categories - lists the category registry
func ListCategories(c *gin.Context) {
	cached, err := services.GetCacheService().Resolve(services.GroupMenuCategories, "", func() (interface{}, error) {
		return services.GetGatewayService().ListCategories()
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cached.([]string),
	})
}

// CreateCategory handles POST /api/v1/menu/category - adds a category.
// An empty name is rejected before any gateway call.
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CATEGORY_NAME",
				"message": "Category name is required",
			},
		})
		return
	}

	if err := services.GetGatewayService().CreateCategory(req.Name); err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenuCategories, services.GroupMenu)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category added",
	})
}

// RenameCategory handles PUT /api/v1/menu/category/rename - renames a
// category. A category's name is its key, so consistency with existing menu
// items is the gateway's concern.
func RenameCategory(c *gin.Context) {
	var req CategoryRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.OldCategory) == "" || strings.TrimSpace(req.NewCategory) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CATEGORY_NAME",
				"message": "Both old and new category names are required",
			},
		})
		return
	}

	if err := services.GetGatewayService().RenameCategory(req.OldCategory, req.NewCategory); err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenuCategories, services.GroupMenu)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category renamed",
	})
}

// DeleteCategory handles DELETE /api/v1/menu/category - removes a category
func DeleteCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CATEGORY_NAME",
				"message": "Category name is required",
			},
		})
		return
	}

	if err := services.GetGatewayService().DeleteCategory(req.Name); err != nil {
		respondServiceError(c, err)
		return
	}
	services.GetCacheService().Invalidate(services.GroupMenuCategories, services.GroupMenu)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}
