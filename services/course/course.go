package courseService

import (
	"context"
	courseModels "coursebuilder/models/course"

	"github.com/google/uuid"
)

// CourseInput is a validated course body
type CourseInput struct {
	CourseName  string
	Description string
}

func (s *Service) CreateCourse(ctx context.Context, userID string, in CourseInput) (*courseModels.Course, error) {
	now := s.now()
	course := &courseModels.Course{
		ID:          uuid.New(),
		CourseName:  in.CourseName,
		Description: in.Description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses returns the caller's courses with modules and lessons in order.
// An empty slice is a valid result.
func (s *Service) ListCourses(ctx context.Context, userID string) ([]courseModels.Course, error) {
	return s.store.ListCourses(ctx, userID)
}

func (s *Service) GetCourse(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Course, error) {
	course, err := s.store.FindOwnedCourse(ctx, id, userID)
	return course, mapErr(err)
}

func (s *Service) UpdateCourse(ctx context.Context, id uuid.UUID, userID string, in CourseInput) (*courseModels.Course, error) {
	course, err := s.store.UpdateCourse(ctx, id, userID, in.CourseName, in.Description, s.now())
	return course, mapErr(err)
}

// DeleteCourse removes the course and everything under it. Unknown or
// unowned ids are a silent no-op.
func (s *Service) DeleteCourse(ctx context.Context, id uuid.UUID, userID string) error {
	return s.store.DeleteCourse(ctx, id, userID)
}
