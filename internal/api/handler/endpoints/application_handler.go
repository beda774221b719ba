package endpoints

import (
	"careers"
	"careers/internal/api/handler/middleware"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
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

// Resume uploads are capped at 5MB.
const maxResumeSize = 5 << 20

type applicationHandler struct {
	applicationService *service.ApplicationService
	validator          *validator.Validate
	logger             zerolog.Logger
	config             careers.AppConfig
}

func newApplicationHandler() *applicationHandler {
	return &applicationHandler{
		applicationService: service.NewApplicationService(),
		validator:          validator.New(),
		logger:             careers.Logger,
		config:             careers.GetConfig(),
	}
}

func ApplicationHandler(router *graceful.Graceful) {
	h := newApplicationHandler()

	applications := router.Group("/api/v1/applications")
	applications.Use(middleware.AuthMiddleware(h.config))
	{
		applications.POST("", h.submit)
		applications.GET("", h.listMine)
		applications.POST("/:id/withdraw", h.withdraw)
	}
}

// submit handles the multipart application form. The resume file is
// mandatory; a failed upload aborts the whole submission.
func (slf *applicationHandler) submit(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	var submitDTO request.SubmitApplicationDTO
	if err := c.ShouldBind(&submitDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing application form")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	if err := pkg.ValidateStruct(&submitDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error validating application form")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Resume file is required"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Resume must be 5MB or smaller"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error opening uploaded resume")
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Could not read resume file"})
		return
	}
	defer file.Close()

	candidate, err := slf.applicationService.Submit(
		userID.(uint),
		submitDTO,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateApplication) {
			c.JSON(http.StatusConflict, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Msg("Error submitting application")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (slf *applicationHandler) listMine(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	applications, err := slf.applicationService.ListForUser(userID.(uint))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing applications")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (slf *applicationHandler) withdraw(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	candidateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid application ID"})
		return
	}

	if err := slf.applicationService.Withdraw(userID.(uint), uint(candidateID)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotApplicationOwner):
			c.JSON(http.StatusForbidden, response.APIError{Message: err.Error()})
		case errors.Is(err, service.ErrWithdrawNotAllowed):
			c.JSON(http.StatusConflict, response.APIError{Message: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response.Success{Success: true})
}
