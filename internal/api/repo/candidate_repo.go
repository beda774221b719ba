package repo

import (
	"careers"
	"careers/internal/api/models"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	Db *gorm.DB
}

func NewCandidateRepository() *CandidateRepository {
	return &CandidateRepository{Db: careers.DB}
}

func (slf *CandidateRepository) FindByID(id uint) (models.Candidate, error) {
	var candidate models.Candidate
	err := slf.Db.First(&candidate, id).Error
	return candidate, err
}

// FindByIDFull loads a candidate with its job, rounds and insight history,
// insights newest first so the head is the latest.
func (slf *CandidateRepository) FindByIDFull(id uint) (models.Candidate, error) {
	var candidate models.Candidate
	err := slf.Db.
		Preload("Job").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("candidate_rounds.created_at ASC")
		}).
		Preload("Insights", func(db *gorm.DB) *gorm.DB {
			return db.Order("ai_insights.created_at DESC")
		}).
		First(&candidate, id).Error
	return candidate, err
}

// FindForBoard returns all non-withdrawn candidates with rounds and job
// preloaded, optionally narrowed to one job. Withdrawn rows stay in the
// table but never reach recruiter views.
func (slf *CandidateRepository) FindForBoard(jobID *uint) ([]models.Candidate, error) {
	var candidates []models.Candidate
	query := slf.Db.
		Preload("Job").
		Preload("Rounds").
		Where("status <> ?", models.StatusWithdrawn)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}
	err := query.Order("created_at ASC").Find(&candidates).Error
	return candidates, err
}

// SearchForBoard is the free-text variant of the board listing, matching
// name or email, composed with the same optional job filter.
func (slf *CandidateRepository) SearchForBoard(jobID *uint, text string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	pattern := "%" + text + "%"
	query := slf.Db.
		Preload("Job").
		Preload("Rounds").
		Where("status <> ?", models.StatusWithdrawn).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}
	err := query.Order("created_at ASC").Find(&candidates).Error
	return candidates, err
}

func (slf *CandidateRepository) FindByUser(userID uint) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := slf.Db.
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (slf *CandidateRepository) ExistsByUserAndJob(userID uint, jobID uint) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.Candidate{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (slf *CandidateRepository) Create(candidate *models.Candidate) error {
	return slf.Db.Create(candidate).Error
}

// UpdateStatus persists the new pipeline position. Transition legality is
// the pipeline service's concern, not this layer's.
func (slf *CandidateRepository) UpdateStatus(id uint, status models.CandidateStatus) (models.Candidate, error) {
	var candidate models.Candidate
	if err := slf.Db.First(&candidate, id).Error; err != nil {
		return candidate, err
	}
	if err := slf.Db.Model(&candidate).Update("status", status).Error; err != nil {
		return candidate, err
	}
	// Re-read with job and rounds so callers can hand the row straight to
	// the board card mappers.
	var updated models.Candidate
	err := slf.Db.Preload("Job").Preload("Rounds").First(&updated, id).Error
	return updated, err
}

func (slf *CandidateRepository) MarkFinalEmailSent(id uint) error {
	result := slf.Db.Model(&models.Candidate{}).Where("id = ?", id).
		Update("final_email_sent", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
