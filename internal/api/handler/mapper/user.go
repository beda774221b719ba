package mapper

import (
	"careers/internal/api/handler/response"
	"careers/internal/api/models"
)

type UserMapper struct{}

func (UserMapper) EntityToUserResponse(user models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
}
