package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
)

// GET /api/admin/responses?page=1&limit=10&start_date=2026-01-01&end_date=2026-01-31
func ListResponses(c *gin.Context) {
	page, limit, offset := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	query := config.DB.Model(&models.Submission{})

	if s := c.Query("start_date"); s != "" {
		if startDate, err := time.Parse("2006-01-02", s); err == nil {
			query = query.Where("submitted_at >= ?", startDate)
		}
	}
	if s := c.Query("end_date"); s != "" {
		if endDate, err := time.Parse("2006-01-02", s); err == nil {
			// +1 day so the end date is inclusive
			query = query.Where("submitted_at < ?", endDate.Add(24*time.Hour))
		}
	}

	var total int64
	query.Count(&total)

	var subs []models.Submission
	if err := query.
		Order("submitted_at DESC").
		Limit(limit).Offset(offset).
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load responses"})
		return
	}

	items := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		items = append(items, submissionJSON(s, false))
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"limit":     limit,
		"total":     total,
		"responses": items,
	})
}

func GetResponseDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	var s models.Submission
	if err := config.DB.Preload("User").First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read response"})
		return
	}

	out := submissionJSON(s, true)
	if s.User != nil {
		out["user"] = gin.H{"id": s.User.ID, "name": s.User.Name, "email": s.User.Email}
	}
	c.JSON(http.StatusOK, out)
}

func DeleteResponse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	res := config.DB.Delete(&models.Submission{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete response"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}

	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "response.delete", c.Param("id"))

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
