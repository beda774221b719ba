package endpoints

import (
	"careers"
	"careers/internal/api/handler/middleware"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/service"
	"careers/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type authHandler struct {
	userService *service.UserService
	validator   *validator.Validate
	logger      zerolog.Logger
	config      careers.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		userService: service.NewUserService(),
		validator:   validator.New(),
		logger:      careers.Logger,
		config:      careers.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/google", h.googleSignIn)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
		protected.POST("/signout", h.signOut)
	}
}

// googleSignIn takes the verified Google profile and upserts the user. The
// recruiter role is granted only from the allowlist, and only at first
// sign-in.
func (slf *authHandler) googleSignIn(c *gin.Context) {
	var signInDTO request.GoogleSignInDTO

	err := pkg.ParseAndValidate(c, &signInDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating sign-in DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	// Call service
	authResponse, err := slf.userService.GoogleSignIn(signInDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error signing in user")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) getMe(c *gin.Context) {
	// Get user ID from context (set by auth middleware)
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	// Call service
	user, err := slf.userService.CurrentSession(userID.(uint))
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID.(uint)).Msg("Error getting session")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (slf *authHandler) signOut(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	if err := slf.userService.SignOut(userID.(uint)); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID.(uint)).Msg("Error signing out user")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, response.Success{Success: true})
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshTokenDTO
	err := pkg.ParseAndValidate(c, &refreshDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating refresh token DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	// Call service
	authResponse, err := slf.userService.RefreshToken(refreshDTO.RefreshToken)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error refreshing token")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}
