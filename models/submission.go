package models

import "time"

// Submission is one completed survey response. Answers are kept as the
// submitted JSON object; OverallScore is the derived mean of the numeric
// matrix ratings (NA excluded), rounded to 2 decimal places.
type Submission struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Email        *string   `gorm:"size:100" json:"email,omitempty"`
	AnswersJSON  string    `gorm:"column:answers_json;type:text;not null" json:"-"`
	OverallScore float64   `gorm:"column:overall_score" json:"overall_score"`
	RatedCount   int       `gorm:"column:rated_count" json:"rated_count"`
	ClientIP     string    `gorm:"size:45" json:"-"`
	SubmittedAt  time.Time `gorm:"column:submitted_at;autoCreateTime;index" json:"submitted_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
