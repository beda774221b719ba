package endpoints

import (
	"careers"
	"careers/internal/api/handler/middleware"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/service"
	"careers/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type jobHandler struct {
	jobService *service.JobService
	validator  *validator.Validate
	logger     zerolog.Logger
	config     careers.AppConfig
}

func newJobHandler() *jobHandler {
	return &jobHandler{
		jobService: service.NewJobService(),
		validator:  validator.New(),
		logger:     careers.Logger,
		config:     careers.GetConfig(),
	}
}

func JobHandler(router *graceful.Graceful) {
	h := newJobHandler()

	// Public listing for the careers page
	jobs := router.Group("/api/v1/jobs")
	{
		jobs.GET("", h.listActive)
		jobs.GET("/:id", h.getJob)
	}

	// Recruiter management routes
	recruiter := router.Group("/api/v1/recruiter/jobs")
	recruiter.Use(middleware.AuthMiddleware(h.config))
	recruiter.Use(middleware.RequireRole(models.RoleRecruiter))
	{
		recruiter.GET("", h.listAll)
		recruiter.POST("", h.createJob)
		recruiter.PUT("/:id", h.updateJob)
		recruiter.POST("/:id/deactivate", h.deactivateJob)
	}
}

func (slf *jobHandler) listActive(c *gin.Context) {
	jobs, err := slf.jobService.ListActive()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing active jobs")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (slf *jobHandler) getJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
		return
	}

	job, err := slf.jobService.GetByID(uint(jobID))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (slf *jobHandler) listAll(c *gin.Context) {
	jobs, err := slf.jobService.ListAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing jobs")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (slf *jobHandler) createJob(c *gin.Context) {
	var createDTO request.CreateJobDTO
	err := pkg.ParseAndValidate(c, &createDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Create(createDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (slf *jobHandler) updateJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
		return
	}

	var updateDTO request.UpdateJobDTO
	err = pkg.ParseAndValidate(c, &updateDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating update job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Update(uint(jobID), updateDTO)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (slf *jobHandler) deactivateJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
		return
	}

	if err := slf.jobService.Deactivate(uint(jobID)); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Success{Success: true})
}
