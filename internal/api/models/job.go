package models

import (
	"time"

	"github.com/lib/pq"
)

type JobType string

const (
	JobTypeEngineering JobType = "engineering"
	JobTypeOther       JobType = "other"
	JobTypeInternship  JobType = "internship"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeEngineering, JobTypeOther, JobTypeInternship:
		return true
	default:
		return false
	}
}

// Job is a published opening. Jobs are never deleted; deactivation via
// IsActive is the removal path.
type Job struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"not null"`
	JobType     JobType        `gorm:"type:varchar(20);not null;default:'engineering'"`
	Description string         `gorm:"type:text;not null"`
	Details     *string        `gorm:"type:text"`
	Skills      pq.StringArray `gorm:"type:text[]"`
	Salary      *string
	IsActive    bool      `gorm:"default:true;column:is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
