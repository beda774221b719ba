package repo

import (
	"careers"
	"careers/internal/api/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: careers.DB}
}

func (slf *JobRepository) FindByID(id uint) (models.Job, error) {
	var job models.Job
	err := slf.Db.First(&job, id).Error
	return job, err
}

// FindActive returns the public listing: active jobs ordered by title.
func (slf *JobRepository) FindActive() ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Where("is_active = ?", true).Order("title ASC").Find(&jobs).Error
	return jobs, err
}

// FindAll returns every job, active or not, for the recruiter dashboard.
func (slf *JobRepository) FindAll() ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Order("title ASC").Find(&jobs).Error
	return jobs, err
}

func (slf *JobRepository) Create(job *models.Job) error {
	return slf.Db.Create(job).Error
}

func (slf *JobRepository) Update(job *models.Job) error {
	return slf.Db.Save(job).Error
}
