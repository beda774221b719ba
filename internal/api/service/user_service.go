package service

import (
	"careers"
	"careers/internal/api/handler/mapper"
	"careers/internal/api/handler/request"
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
	"careers/internal/api/repo"
	"careers/pkg"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo   *repo.UserRepository
	config     careers.AppConfig
	logger     zerolog.Logger
	userMapper mapper.UserMapper
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repo.NewUserRepository(),
		config:   careers.GetConfig(),
		logger:   careers.Logger,
	}
}

func sessionCacheKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

// GoogleSignIn upserts the user from a verified Google profile and issues
// tokens. The role is decided once, at first sign-in, by checking the email
// against the admin allow-list; it is never changed afterwards.
func (slf *UserService) GoogleSignIn(dto request.GoogleSignInDTO) (*response.AuthResponseDTO, error) {
	user, err := slf.userRepo.FindByEmail(dto.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Error().Err(err).Msg("Error finding user by email")
			return nil, err
		}
		role := models.RoleApplicant
		if slices.Contains(slf.config.AdminEmails, dto.Email) {
			role = models.RoleRecruiter
		}
		user = models.User{
			Email:    dto.Email,
			Name:     dto.Name,
			GoogleID: dto.GoogleID,
			Role:     role,
		}
		if err = slf.userRepo.Create(&user); err != nil {
			slf.logger.Error().Err(err).Msg("Error creating user")
			return nil, err
		}
		slf.logger.Info().Uint("userId", user.ID).Str("role", string(user.Role)).Msg("User created on first sign-in")
	} else {
		// Known user: refresh profile fields, never the role.
		user.Name = dto.Name
		user.GoogleID = dto.GoogleID
	}

	return slf.issueTokens(user)
}

func (slf *UserService) issueTokens(user models.User) (*response.AuthResponseDTO, error) {
	token, err := pkg.GenerateToken(user.ID, user.Email, string(user.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return nil, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return nil, err
	}

	user.RefreshToken = refreshToken
	if err = slf.userRepo.Update(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error updating user with refresh token")
		return nil, err
	}

	profile := slf.userMapper.EntityToUserResponse(user)
	slf.cacheSession(profile)

	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		User:         profile,
	}, nil
}

// cacheSession keeps the session profile in Redis for the token's validity
// window, so repeated session lookups skip the database. Best effort only.
func (slf *UserService) cacheSession(profile response.UserResponseDTO) {
	ttl := time.Duration(slf.config.JWTConfig.Expiration) * time.Minute
	if err := pkg.RedisSet(sessionCacheKey(profile.ID), profile, ttl); err != nil {
		slf.logger.Warn().Err(err).Uint("userId", profile.ID).Msg("Failed to cache session")
	}
}

// CurrentSession returns the signed-in user's profile, served from the
// session cache when warm.
func (slf *UserService) CurrentSession(userID uint) (response.UserResponseDTO, error) {
	var cached response.UserResponseDTO
	if err := pkg.RedisGet(sessionCacheKey(userID), &cached); err == nil {
		return cached, nil
	} else if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Uint("userId", userID).Msg("Session cache read failed")
	}

	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.UserResponseDTO{}, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error finding user by ID")
		return response.UserResponseDTO{}, err
	}

	profile := slf.userMapper.EntityToUserResponse(user)
	slf.cacheSession(profile)
	return profile, nil
}

// SignOut invalidates the cached session and the stored refresh token.
func (slf *UserService) SignOut(userID uint) error {
	if err := pkg.RedisDelete(sessionCacheKey(userID)); err != nil {
		slf.logger.Warn().Err(err).Uint("userId", userID).Msg("Failed to drop session cache")
	}

	user, err := slf.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	user.RefreshToken = ""
	return slf.userRepo.Update(&user)
}

func (slf *UserService) RefreshToken(refreshToken string) (*response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return nil, errors.New("invalid or expired refresh token")
	}

	user, err := slf.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		slf.logger.Error().Err(err).Uint("userId", claims.UserID).Msg("Error finding user by ID")
		return nil, err
	}

	if user.RefreshToken != refreshToken {
		slf.logger.Warn().Uint("userId", user.ID).Msg("Refresh token mismatch")
		return nil, errors.New("invalid refresh token")
	}

	return slf.issueTokens(user)
}
