package models

import (
	"time"

	"gorm.io/gorm"
)

type AppRole string

const (
	RoleApplicant AppRole = "applicant"
	RoleRecruiter AppRole = "recruiter"
)

type User struct {
	ID           uint           `gorm:"primaryKey"`
	Email        string         `gorm:"uniqueIndex;not null"`
	Name         string         `gorm:"not null"`
	GoogleID     string         `gorm:"column:google_id"`
	Role         AppRole        `gorm:"type:varchar(20);not null;default:'applicant'"`
	RefreshToken string         `gorm:"type:text;column:refresh_token"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (User) TableName() string {
	return "users"
}
