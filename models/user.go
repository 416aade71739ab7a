package models

import "time"

// User covers both respondents and admin accounts. A respondent has no
// role and IsAdmin false; an admin account is pending until a superadmin
// approves it (IsAdmin and EmailVerified both set).
type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash  string    `gorm:"size:255" json:"-"`
	Role          string    `gorm:"size:50;default:''" json:"role"`
	IsAdmin       bool      `gorm:"not null;default:false" json:"is_admin"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	GoogleSub     *string   `gorm:"size:255;uniqueIndex" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Submissions []Submission `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
