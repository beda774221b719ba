package mapper

import (
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
)

type JobMapper struct{}

func (JobMapper) EntityToJobResponse(job models.Job) response.JobResponseDTO {
	return response.JobResponseDTO{
		ID:          job.ID,
		Title:       job.Title,
		JobType:     string(job.JobType),
		Description: job.Description,
		Details:     job.Details,
		Skills:      job.Skills,
		Salary:      job.Salary,
		IsActive:    job.IsActive,
	}
}

func (m JobMapper) EntitiesToJobResponses(jobs []models.Job) []response.JobResponseDTO {
	out := make([]response.JobResponseDTO, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, m.EntityToJobResponse(job))
	}
	return out
}

func (JobMapper) EntityToJobRef(job models.Job) response.JobRefDTO {
	return response.JobRefDTO{
		ID:    job.ID,
		Title: job.Title,
	}
}
