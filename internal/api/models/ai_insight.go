package models

import (
	"time"

	"github.com/lib/pq"
)

// AIInsight is an immutable fit evaluation of a candidate against the job
// description as it stood at generation time. Reads take the latest row per
// candidate.
type AIInsight struct {
	ID          uint           `gorm:"primaryKey"`
	CandidateID uint           `gorm:"not null;index;column:candidate_id"`
	JobJD       string         `gorm:"type:text;not null;column:job_jd"`
	ResumeText  string         `gorm:"type:text;not null;column:resume_text"`
	Score       int            `gorm:"not null"`
	Insights    pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;column:created_at"`
}

func (AIInsight) TableName() string {
	return "ai_insights"
}
