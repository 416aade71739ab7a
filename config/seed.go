package config

import (
	"github.com/rs/zerolog/log"

	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

// SeedSurveyFields writes the in-code default schema into the store on
// first run. An already-populated table is left alone.
func SeedSurveyFields() {
	var count int64
	if err := DB.Model(&models.SurveyField{}).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("could not check survey_fields")
		return
	}
	if count > 0 {
		return
	}

	for i, def := range survey.DefaultFields() {
		row, err := models.NewSurveyField(def, i)
		if err != nil {
			log.Error().Err(err).Str("field", def.Name).Msg("could not encode default field")
			continue
		}
		if err := DB.Create(&row).Error; err != nil {
			log.Error().Err(err).Str("field", def.Name).Msg("could not seed field")
		}
	}
	log.Info().Int("fields", len(survey.DefaultFields())).Msg("seeded default survey schema")
}
