package models

import (
	"fmt"
	"time"
)

// RoundLabel identifies one interview stage.
type RoundLabel string

const (
	Round1 RoundLabel = "round_1"
	Round2 RoundLabel = "round_2"
	Round3 RoundLabel = "round_3"
)

func (r RoundLabel) IsValid() bool {
	switch r {
	case Round1, Round2, Round3:
		return true
	default:
		return false
	}
}

func (r RoundLabel) String() string {
	return string(r)
}

func ParseRound(raw string) (RoundLabel, error) {
	r := RoundLabel(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown interview round %q", raw)
	}
	return r, nil
}

// CandidateRound holds per-round interview metadata. One row per
// (candidate, round), created lazily on first write and never deleted.
type CandidateRound struct {
	ID                 uint       `gorm:"primaryKey"`
	CandidateID        uint       `gorm:"not null;uniqueIndex:idx_candidate_round;column:candidate_id"`
	Round              RoundLabel `gorm:"type:varchar(20);not null;uniqueIndex:idx_candidate_round"`
	Notes              *string    `gorm:"type:text"`
	Rating             *int
	Interviewer        *string
	InterviewDate      *time.Time `gorm:"column:interview_date"`
	InterviewEmailSent bool       `gorm:"default:false;column:interview_email_sent"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime;column:updated_at"`
}

func (CandidateRound) TableName() string {
	return "candidate_rounds"
}
