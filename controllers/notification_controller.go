package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablebird/tablebird-console/services"
)

// GetNotifications handles GET /api/v1/notifications - the unread alert
// counter and the persisted last-seen order number
func GetNotifications(c *gin.Context) {
	watcher := services.GetWatcherService()
	marker, hasMarker := watcher.Marker()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"unread":     watcher.Unread(),
			"marker":     marker,
			"has_marker": hasMarker,
		},
	})
}

// MarkNotificationsRead handles POST /api/v1/notifications/read - clears the
// unread counter when the bell is opened
func MarkNotificationsRead(c *gin.Context) {
	services.GetWatcherService().ResetUnread()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"unread": 0,
		},
	})
}
