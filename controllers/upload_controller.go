package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/services"
)

// UploadImage handles POST /api/v1/upload - stores a restaurant image
// (logo or menu photo) and returns its key and URL
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required in the 'image' field",
			},
		})
		return
	}

	media := services.GetMediaService()
	key, err := media.UploadImage(fileHeader)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	url, err := media.GetImageURL(key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"image_key": key,
			"image_url": url,
		},
	})
}

// DeleteImage handles DELETE /api/v1/upload - removes a stored image by key
func DeleteImage(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_KEY",
				"message": "An image key is required",
			},
		})
		return
	}

	if err := services.GetMediaService().DeleteImage(key); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted",
	})
}
