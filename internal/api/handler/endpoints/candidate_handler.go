package endpoints

import (
	"careers"
	"careers/internal/api/handler/middleware"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/service"
	"careers/pkg"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type candidateHandler struct {
	pipelineService *service.PipelineService
	roundService    *service.RoundService
	insightService  *service.InsightService
	validator       *validator.Validate
	logger          zerolog.Logger
	config          careers.AppConfig
}

func newCandidateHandler() *candidateHandler {
	return &candidateHandler{
		pipelineService: service.NewPipelineService(),
		roundService:    service.NewRoundService(),
		insightService:  service.NewInsightService(pkg.NewOpenAIGenerator()),
		validator:       validator.New(),
		logger:          careers.Logger,
		config:          careers.GetConfig(),
	}
}

// CandidateHandler mounts the recruiter pipeline routes. Everything here is
// recruiter-only.
func CandidateHandler(router *graceful.Graceful) {
	h := newCandidateHandler()

	candidates := router.Group("/api/v1/recruiter/candidates")
	candidates.Use(middleware.AuthMiddleware(h.config))
	candidates.Use(middleware.RequireRole(models.RoleRecruiter))
	{
		candidates.GET("", h.listBoard)
		candidates.GET("/:id", h.getCandidate)
		candidates.PATCH("/:id/status", h.updateStatus)
		candidates.GET("/:id/rounds", h.listRounds)
		candidates.PUT("/:id/rounds", h.saveRound)
		candidates.POST("/:id/email-sent", h.markEmailSent)
		candidates.POST("/:id/insights", h.generateInsight)
	}
}

func (slf *candidateHandler) listBoard(c *gin.Context) {
	var jobID *uint
	if raw := c.Query("jobId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
			return
		}
		id := uint(parsed)
		jobID = &id
	}

	candidates, err := slf.pipelineService.ListForBoard(jobID, c.Query("search"))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing candidates")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list candidates"})
		return
	}

	c.JSON(http.StatusOK, candidates)
}

func (slf *candidateHandler) getCandidate(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	candidate, err := slf.pipelineService.GetCandidate(candidateID)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error loading candidate")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to load candidate"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (slf *candidateHandler) updateStatus(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	var statusDTO request.UpdateStatusDTO
	if err := pkg.ParseAndValidate(c, &statusDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating status DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	candidate, err := slf.pipelineService.UpdateStatus(candidateID, statusDTO)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		case errors.Is(err, service.ErrConfirmationRequired):
			c.JSON(http.StatusConflict, response.APIError{Message: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (slf *candidateHandler) listRounds(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	rounds, err := slf.roundService.ListForCandidate(candidateID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error listing rounds")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list rounds"})
		return
	}

	c.JSON(http.StatusOK, rounds)
}

func (slf *candidateHandler) saveRound(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	var roundDTO request.SaveRoundDTO
	if err := pkg.ParseAndValidate(c, &roundDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating round DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	round, err := slf.roundService.Save(candidateID, roundDTO)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, round)
}

func (slf *candidateHandler) markEmailSent(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	var emailDTO request.MarkEmailSentDTO
	if err := pkg.ParseAndValidate(c, &emailDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating email-sent DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.pipelineService.MarkEmailSent(candidateID, emailDTO); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.Success{Success: true})
}

func (slf *candidateHandler) generateInsight(c *gin.Context) {
	candidateID, ok := slf.candidateID(c)
	if !ok {
		return
	}

	var insightDTO request.GenerateInsightDTO
	if err := c.ShouldBindJSON(&insightDTO); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	insight, err := slf.insightService.Generate(candidateID, insightDTO.Force)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("candidateId", candidateID).Msg("Error generating insight")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to generate insight"})
		return
	}

	c.JSON(http.StatusOK, insight)
}

func (slf *candidateHandler) candidateID(c *gin.Context) (uint, bool) {
	candidateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid candidate ID"})
		return 0, false
	}
	return uint(candidateID), true
}
