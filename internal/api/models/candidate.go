package models

import "time"

// Candidate is one application of a user to a job. The (user, job) pair is
// unique; a duplicate application attempt fails at creation.
type Candidate struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"not null;uniqueIndex:idx_candidate_user_job;column:user_id"`
	JobID          uint            `gorm:"not null;uniqueIndex:idx_candidate_user_job;column:job_id"`
	Job            Job             `gorm:"foreignKey:JobID"`
	Name           string          `gorm:"not null"`
	Email          string          `gorm:"not null"`
	Contact        string          `gorm:"not null"`
	WhyFit         string          `gorm:"type:text;not null;column:why_fit"`
	Portfolio      *string
	Linkedin       *string
	Github         *string
	ResumeURL      string           `gorm:"not null;column:resume_url"`
	ResumeText     *string          `gorm:"type:text;column:resume_text"`
	Status         CandidateStatus  `gorm:"type:varchar(20);not null;default:'applied'"`
	FinalEmailSent bool             `gorm:"default:false;column:final_email_sent"`
	Rounds         []CandidateRound `gorm:"foreignKey:CandidateID"`
	Insights       []AIInsight      `gorm:"foreignKey:CandidateID"`
	CreatedAt      time.Time        `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime;column:updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
