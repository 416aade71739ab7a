package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

// GetSurveySchema serves the public survey form definition, grouped into
// ordered sections.
func GetSurveySchema(c *gin.Context) {
	fields, err := SchemaCache.Fields()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load survey schema"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": survey.GroupSections(fields)})
}

type submitReq struct {
	Answers survey.AnswerMap `json:"answers" binding:"required"`
	Email   *string          `json:"email"`
}

// SubmitSurvey validates a submission against the schema and stores it
// with the derived overall score. Validation reports every offending
// field at once.
func SubmitSurvey(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload: " + err.Error()})
		return
	}

	fields, err := SchemaCache.Fields()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load survey schema"})
		return
	}

	if fieldErrs := survey.ValidateAnswers(fields, req.Answers); len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Please review the highlighted fields",
			"errors":  fieldErrs,
		})
		return
	}

	score, rated := survey.OverallScore(fields, req.Answers)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid answers"})
		return
	}

	var userID *uint
	emailPtr := req.Email
	if u, ok := middleware.CurrentUser(c); ok {
		userID = &u.ID
		if u.Email != "" {
			emailPtr = &u.Email
		}
	}

	sub := models.Submission{
		UserID:       userID,
		Email:        emailPtr,
		AnswersJSON:  string(answersJSON),
		OverallScore: score,
		RatedCount:   rated,
		ClientIP:     c.ClientIP(),
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sub).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("could not store submission")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not store submission"})
		return
	}

	notify("submission", fmt.Sprintf("New survey response #%d (score %.2f)", sub.ID, score))

	c.JSON(http.StatusCreated, gin.H{
		"id":            sub.ID,
		"overall_score": score,
		"message":       "Thank you for your feedback",
	})
}

// GetMySubmissions lists the authenticated respondent's own responses.
func GetMySubmissions(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	page, limit, offset := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	var total int64
	config.DB.Model(&models.Submission{}).Where("user_id = ?", u.ID).Count(&total)

	var subs []models.Submission
	if err := config.DB.Where("user_id = ?", u.ID).
		Order("submitted_at DESC").
		Limit(limit).Offset(offset).
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load submissions"})
		return
	}

	items := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		items = append(items, submissionJSON(s, true))
	}
	c.JSON(http.StatusOK, gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"submissions": items,
	})
}

func submissionJSON(s models.Submission, includeAnswers bool) gin.H {
	out := gin.H{
		"id":            s.ID,
		"user_id":       s.UserID,
		"email":         s.Email,
		"overall_score": s.OverallScore,
		"rated_count":   s.RatedCount,
		"submitted_at":  s.SubmittedAt,
	}
	if includeAnswers {
		var answers survey.AnswerMap
		if err := json.Unmarshal([]byte(s.AnswersJSON), &answers); err == nil {
			out["answers"] = answers
		}
	}
	return out
}
