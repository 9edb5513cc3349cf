package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// UserService handles admin-side account management
type UserService struct {
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	logger    zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository, tokenRepo repositories.ITokenRepository, logger zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo, logger: logger}
}

// List pages user accounts, optionally filtered by role
func (s *UserService) List(ctx context.Context, role models.Role, skip, limit int64) ([]dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.FromUser(&users[i]))
	}
	return out, total, nil
}

// Get fetches one account
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// SetStatus enables or disables an account. Disabling revokes every
// refresh token so open sessions end at the next access token expiry.
func (s *UserService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) (*dto.UserResponse, error) {
	if status != models.UserStatusActive && status != models.UserStatusDisabled {
		return nil, apperrors.NewBadRequestError("status must be ACTIVE or DISABLED")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if status == models.UserStatusDisabled {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("userId", id.Hex()).Msg("Failed to revoke tokens on disable")
		}
	}
	s.logger.Info().Str("userId", id.Hex()).Str("status", string(status)).Msg("User status changed")
	resp := dto.FromUser(user)
	return &resp, nil
}
