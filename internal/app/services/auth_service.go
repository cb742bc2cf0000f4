package services

import (
	"context"
	"errors"

	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/repositories"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/auth"
	"github.com/educompact/school-records/internal/pkg/logger"
)

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{userRepo: userRepo, jwtService: jwtService}
}

// Login checks the credentials and returns a signed token. Unknown emails and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to sign token")
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	}, nil
}
