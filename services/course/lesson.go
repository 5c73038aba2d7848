package courseService

import (
	"context"
	courseModels "coursebuilder/models/course"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// LessonInput is one validated lesson
type LessonInput struct {
	LessonName string
	Order      int
}

// CreateLessons inserts every lesson under an owned module, or none
func (s *Service) CreateLessons(ctx context.Context, userID string, moduleID uuid.UUID, in []LessonInput) ([]courseModels.Lesson, error) {
	if _, err := s.store.FindOwnedModule(ctx, moduleID, userID); err != nil {
		return nil, mapErr(err)
	}

	times := s.insertionTimes(len(in))
	lessons := lo.Map(in, func(l LessonInput, i int) courseModels.Lesson {
		return courseModels.Lesson{
			ID:         uuid.New(),
			LessonName: l.LessonName,
			Order:      l.Order,
			ModuleID:   moduleID,
			CreatedAt:  times[i],
			UpdatedAt:  times[i],
		}
	})

	if err := s.store.CreateLessons(ctx, lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (s *Service) ListLessons(ctx context.Context, userID string) ([]courseModels.Lesson, error) {
	return s.store.ListLessons(ctx, userID)
}

func (s *Service) GetLesson(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Lesson, error) {
	lesson, err := s.store.FindOwnedLesson(ctx, id, userID)
	return lesson, mapErr(err)
}

func (s *Service) UpdateLesson(ctx context.Context, id uuid.UUID, userID string, in LessonInput) (*courseModels.Lesson, error) {
	lesson, err := s.store.UpdateLesson(ctx, id, userID, in.LessonName, in.Order, s.now())
	return lesson, mapErr(err)
}

func (s *Service) DeleteLesson(ctx context.Context, id uuid.UUID, userID string) error {
	return s.store.DeleteLesson(ctx, id, userID)
}
