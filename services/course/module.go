package courseService

import (
	"context"
	courseModels "coursebuilder/models/course"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ModuleInput is one validated module
type ModuleInput struct {
	ModuleName  string
	Description string
	Order       int
}

// CreateModules inserts every module under an owned course, or none.
// Order values are stored as given.
func (s *Service) CreateModules(ctx context.Context, userID string, courseID uuid.UUID, in []ModuleInput) ([]courseModels.Module, error) {
	if _, err := s.store.FindOwnedCourse(ctx, courseID, userID); err != nil {
		return nil, mapErr(err)
	}

	times := s.insertionTimes(len(in))
	modules := lo.Map(in, func(m ModuleInput, i int) courseModels.Module {
		return courseModels.Module{
			ID:          uuid.New(),
			ModuleName:  m.ModuleName,
			Description: m.Description,
			Order:       m.Order,
			CourseID:    courseID,
			CreatedAt:   times[i],
			UpdatedAt:   times[i],
		}
	})

	if err := s.store.CreateModules(ctx, modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *Service) ListModules(ctx context.Context, userID string) ([]courseModels.Module, error) {
	return s.store.ListModules(ctx, userID)
}

func (s *Service) GetModule(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Module, error) {
	module, err := s.store.FindOwnedModule(ctx, id, userID)
	return module, mapErr(err)
}

func (s *Service) UpdateModule(ctx context.Context, id uuid.UUID, userID string, in ModuleInput) (*courseModels.Module, error) {
	module, err := s.store.UpdateModule(ctx, id, userID, in.ModuleName, in.Description, in.Order, s.now())
	return module, mapErr(err)
}

// DeleteModule removes the module and its lessons. Unknown or unowned ids
// are a silent no-op.
func (s *Service) DeleteModule(ctx context.Context, id uuid.UUID, userID string) error {
	return s.store.DeleteModule(ctx, id, userID)
}
