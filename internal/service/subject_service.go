package service

import (
	"context"

	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
)

// SubjectService handles subject listings scoped to the caller's role:
// admins see everything, faculty their own subjects, students their
// enrollments.
type SubjectService struct {
	repo *repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(repo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{repo: repo}
}

// ListForViewer returns the subjects visible to one user.
func (s *SubjectService) ListForViewer(ctx context.Context, userID int, role model.Role) ([]model.SubjectView, error) {
	switch role {
	case model.RoleFaculty:
		return s.repo.ListByFaculty(ctx, userID)
	case model.RoleStudent:
		return s.repo.ListByStudent(ctx, userID)
	default:
		return s.repo.ListAll(ctx)
	}
}
