package service

import (
	"context"

	"blogcms/internal/models"
	"blogcms/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser returns the account behind a session. A session whose user has since
// disappeared yields NotFound.
func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
