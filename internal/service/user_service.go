package service

import (
	"context"

	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
)

// UserService handles account listing and creation.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns users, optionally restricted to one role.
func (s *UserService) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	return s.repo.List(ctx, role)
}

// Get returns one user by ID.
func (s *UserService) Get(ctx context.Context, id int) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}
