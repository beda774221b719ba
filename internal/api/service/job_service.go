package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type JobService struct {
	jobRepo   *repo.JobRepository
	logger    zerolog.Logger
	jobMapper mapper.JobMapper
}

func NewJobService() *JobService {
	return &JobService{
		jobRepo: repo.NewJobRepository(),
		logger:  careers.Logger,
	}
}

// ListActive is the public careers-page listing, ordered by title.
func (slf *JobService) ListActive() ([]response.JobResponseDTO, error) {
	jobs, err := slf.jobRepo.FindActive()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing active jobs")
		return nil, err
	}
	return slf.jobMapper.EntitiesToJobResponses(jobs), nil
}

// ListAll is the recruiter dashboard listing, inactive jobs included.
func (slf *JobService) ListAll() ([]response.JobResponseDTO, error) {
	jobs, err := slf.jobRepo.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing jobs")
		return nil, err
	}
	return slf.jobMapper.EntitiesToJobResponses(jobs), nil
}

func (slf *JobService) GetByID(id uint) (response.JobResponseDTO, error) {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.JobResponseDTO{}, errors.New("job not found")
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting job")
		return response.JobResponseDTO{}, err
	}
	return slf.jobMapper.EntityToJobResponse(job), nil
}

func (slf *JobService) Create(dto request.CreateJobDTO) (response.JobResponseDTO, error) {
	jobType := models.JobType(dto.JobType)
	if dto.JobType == "" {
		jobType = models.JobTypeEngineering
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	job := models.Job{
		Title:       dto.Title,
		JobType:     jobType,
		Description: dto.Description,
		Details:     dto.Details,
		Skills:      dto.Skills,
		Salary:      dto.Salary,
		IsActive:    isActive,
	}
	if err := slf.jobRepo.Create(&job); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return response.JobResponseDTO{}, err
	}

	slf.logger.Info().Uint("jobId", job.ID).Str("title", job.Title).Msg("Job created")
	return slf.jobMapper.EntityToJobResponse(job), nil
}

func (slf *JobService) Update(id uint, dto request.UpdateJobDTO) (response.JobResponseDTO, error) {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.JobResponseDTO{}, errors.New("job not found")
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting job")
		return response.JobResponseDTO{}, err
	}

	job.Title = dto.Title
	if dto.JobType != "" {
		job.JobType = models.JobType(dto.JobType)
	}
	job.Description = dto.Description
	job.Details = dto.Details
	job.Skills = dto.Skills
	job.Salary = dto.Salary
	job.IsActive = dto.IsActive

	if err := slf.jobRepo.Update(&job); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error updating job")
		return response.JobResponseDTO{}, err
	}
	return slf.jobMapper.EntityToJobResponse(job), nil
}

// Deactivate hides a job from the public listing. There is no delete path.
func (slf *JobService) Deactivate(id uint) error {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("job not found")
		}
		return err
	}
	job.IsActive = false
	if err := slf.jobRepo.Update(&job); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error deactivating job")
		return err
	}
	slf.logger.Info().Uint("jobId", id).Msg("Job deactivated")
	return nil
}
