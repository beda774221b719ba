package repo

import (
	"careers"
	"careers/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoundRepository struct {
	Db *gorm.DB
}

func NewRoundRepository() *RoundRepository {
	return &RoundRepository{Db: careers.DB}
}

func (slf *RoundRepository) FindByCandidate(candidateID uint) ([]models.CandidateRound, error) {
	var rounds []models.CandidateRound
	err := slf.Db.Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&rounds).Error
	return rounds, err
}

func (slf *RoundRepository) FindByCandidateAndRound(candidateID uint, round models.RoundLabel) (models.CandidateRound, error) {
	var r models.CandidateRound
	err := slf.Db.Where("candidate_id = ? AND round = ?", candidateID, round).First(&r).Error
	return r, err
}

// Upsert writes the round row keyed on (candidate_id, round): created on
// first touch, fully overwritten afterwards. At most one row per key.
func (slf *RoundRepository) Upsert(round *models.CandidateRound) error {
	if err := slf.Db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "candidate_id"}, {Name: "round"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"notes", "rating", "interviewer", "interview_date", "updated_at",
		}),
	}).Create(round).Error; err != nil {
		return err
	}
	// Re-read so the caller sees the stored row, including the original ID
	// when the conflict path was taken.
	stored, err := slf.FindByCandidateAndRound(round.CandidateID, round.Round)
	if err != nil {
		return err
	}
	*round = stored
	return nil
}

// MarkInterviewEmailSent flips the flag, lazily creating the round row if
// the recruiter schedules before any notes exist.
func (slf *RoundRepository) MarkInterviewEmailSent(candidateID uint, round models.RoundLabel) error {
	return slf.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "round"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"interview_email_sent": true}),
	}).Create(&models.CandidateRound{
		CandidateID:        candidateID,
		Round:              round,
		InterviewEmailSent: true,
	}).Error
}
