package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/models"
)

func ListNotifications(c *gin.Context) {
	page, limit, offset := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "20"))

	query := config.DB.Model(&models.Notification{})
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var total, unread int64
	query.Count(&total)
	config.DB.Model(&models.Notification{}).Where("read = ?", false).Count(&unread)

	var items []models.Notification
	if err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":          page,
		"limit":         limit,
		"total":         total,
		"unread":        unread,
		"notifications": items,
	})
}

func MarkNotificationRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	res := config.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	if err := config.DB.Model(&models.Notification{}).
		Where("read = ?", false).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "read"})
}

func ListActivityLog(c *gin.Context) {
	page, limit, offset := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "20"))

	var total int64
	config.DB.Model(&models.ActivityLog{}).Count(&total)

	var entries []models.ActivityLog
	if err := config.DB.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load activity log"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		item := gin.H{
			"id":         e.ID,
			"action":     e.Action,
			"detail":     e.Detail,
			"created_at": e.CreatedAt,
		}
		if e.User != nil {
			item["user"] = gin.H{"id": e.User.ID, "name": e.User.Name}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"entries": items,
	})
}
