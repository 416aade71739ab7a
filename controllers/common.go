package controllers

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/mail"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

// Mailer delivers verification codes and account notices. main swaps in
// the SendGrid backend when configured.
var Mailer mail.Service = mail.NewConsoleService()

// SchemaCache holds the survey field list for the public form endpoint.
// Every schema mutation must call SchemaCache.Invalidate().
var SchemaCache = survey.NewCache(loadSchema, 5*time.Minute)

func loadSchema() ([]survey.FieldDefinition, error) {
	var rows []models.SurveyField
	if err := config.DB.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	fields := make([]survey.FieldDefinition, 0, len(rows))
	for _, row := range rows {
		def, err := row.Definition()
		if err != nil {
			log.Error().Err(err).Str("field", row.Name).Msg("skipping undecodable field row")
			continue
		}
		fields = append(fields, def)
	}
	return fields, nil
}

func logActivity(userID *uint, action, detail string) {
	entry := models.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("action", action).Msg("could not write activity log")
	}
}

func notify(kind, message string) {
	n := models.Notification{Kind: kind, Message: message}
	if err := config.DB.Create(&n).Error; err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("could not write notification")
	}
}

func pageParams(pageStr, limitStr string) (page, limit, offset int) {
	page, limit = 1, 10
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
		limit = n
	}
	return page, limit, (page - 1) * limit
}
