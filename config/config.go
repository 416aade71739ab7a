package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/models"
)

var DB *gorm.DB

// ConnectDB opens the PostgreSQL connection and migrates the tables.
func ConnectDB() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Manila",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SurveyField{},
		&models.Submission{},
		&models.FAQ{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.VerificationCode{},
		&models.ExportJob{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	DB = db
	log.Info().Msg("connected to PostgreSQL and migrated")
}
