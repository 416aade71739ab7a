package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
)

// ListFAQs is public: only published entries, in display order.
func ListFAQs(c *gin.Context) {
	var faqs []models.FAQ
	if err := config.DB.Where("published = ?", true).
		Order("sort_order ASC").Find(&faqs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load FAQs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// ListAllFAQs is the admin view including unpublished entries.
func ListAllFAQs(c *gin.Context) {
	var faqs []models.FAQ
	if err := config.DB.Order("sort_order ASC").Find(&faqs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load FAQs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

type faqReq struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	SortOrder *int   `json:"sort_order"`
	Published *bool  `json:"published"`
}

func CreateFAQ(c *gin.Context) {
	var req faqReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	faq := models.FAQ{Question: req.Question, Answer: req.Answer, Published: true}
	if req.SortOrder != nil {
		faq.SortOrder = *req.SortOrder
	}
	if req.Published != nil {
		faq.Published = *req.Published
	}

	if err := config.DB.Create(&faq).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create FAQ"})
		return
	}

	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "faq.create", req.Question)

	c.JSON(http.StatusCreated, gin.H{"faq": faq})
}

func UpdateFAQ(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	var faq models.FAQ
	if err := config.DB.First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "FAQ not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read FAQ"})
		return
	}

	var req faqReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"question": req.Question,
		"answer":   req.Answer,
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}

	if err := config.DB.Model(&faq).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update FAQ"})
		return
	}

	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "faq.update", strconv.Itoa(id))

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func DeleteFAQ(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}

	res := config.DB.Delete(&models.FAQ{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete FAQ"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "FAQ not found"})
		return
	}

	u, _ := middleware.CurrentUser(c)
	logActivity(&u.ID, "faq.delete", strconv.Itoa(id))

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
