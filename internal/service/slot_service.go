package service

import (
	"context"

	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
)

// SlotService handles class slot listings.
type SlotService struct {
	repo *repository.SlotRepository
}

// NewSlotService creates a new SlotService.
func NewSlotService(repo *repository.SlotRepository) *SlotService {
	return &SlotService{repo: repo}
}

// ListForViewer returns slots scoped to the caller's role, ordered by
// canonical day of week and then start time. An explicit day filter
// narrows any role's view.
func (s *SlotService) ListForViewer(ctx context.Context, userID int, role model.Role, day *string) ([]model.SlotView, error) {
	filter := repository.SlotFilter{Day: day}
	switch role {
	case model.RoleFaculty:
		filter.FacultyID = &userID
	case model.RoleStudent:
		filter.StudentID = &userID
	}

	slots, err := s.repo.ListViews(ctx, filter)
	if err != nil {
		return nil, err
	}
	model.SortSlotViews(slots)
	return slots, nil
}
