package repo

import (
	"careers"
	"careers/internal/api/models"

	"gorm.io/gorm"
)

type InsightRepository struct {
	Db *gorm.DB
}

func NewInsightRepository() *InsightRepository {
	return &InsightRepository{Db: careers.DB}
}

func (slf *InsightRepository) Create(insight *models.AIInsight) error {
	return slf.Db.Create(insight).Error
}

// FindLatestByCandidate returns the newest insight for a candidate, or
// gorm.ErrRecordNotFound when none was generated yet.
func (slf *InsightRepository) FindLatestByCandidate(candidateID uint) (models.AIInsight, error) {
	var insight models.AIInsight
	err := slf.Db.Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		First(&insight).Error
	return insight, err
}

func (slf *InsightRepository) ExistsForCandidate(candidateID uint) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.AIInsight{}).
		Where("candidate_id = ?", candidateID).
		Count(&count).Error
	return count > 0, err
}
