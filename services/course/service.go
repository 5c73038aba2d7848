package courseService

import (
	"context"
	courseModels "coursebuilder/models/course"
	"coursebuilder/store"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNotFound means the entity is absent or owned by someone else
var ErrNotFound = errors.New("not found")

// Store is the persistence the service needs. Every method taking a userID
// filters on the ownership chain.
type Store interface {
	FindOwnedCourse(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Course, error)
	ListCourses(ctx context.Context, userID string) ([]courseModels.Course, error)
	CreateCourse(ctx context.Context, course *courseModels.Course) error
	UpdateCourse(ctx context.Context, id uuid.UUID, userID, courseName, description string, now time.Time) (*courseModels.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID, userID string) error

	FindOwnedModule(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Module, error)
	ListModules(ctx context.Context, userID string) ([]courseModels.Module, error)
	CreateModules(ctx context.Context, modules []courseModels.Module) error
	UpdateModule(ctx context.Context, id uuid.UUID, userID, moduleName, description string, order int, now time.Time) (*courseModels.Module, error)
	DeleteModule(ctx context.Context, id uuid.UUID, userID string) error

	FindOwnedLesson(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Lesson, error)
	ListLessons(ctx context.Context, userID string) ([]courseModels.Lesson, error)
	CreateLessons(ctx context.Context, lessons []courseModels.Lesson) error
	UpdateLesson(ctx context.Context, id uuid.UUID, userID, lessonName string, order int, now time.Time) (*courseModels.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID, userID string) error

	Stats(ctx context.Context, userID string) (store.Stats, error)
	Ping(ctx context.Context) error
}

var _ Store = (*store.Store)(nil)

// Service runs the course, module and lesson operations for an
// authenticated caller
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Stats counts the caller's courses, modules and lessons
func (s *Service) Stats(ctx context.Context, userID string) (store.Stats, error) {
	return s.store.Stats(ctx, userID)
}

// Ping checks the store
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// insertionTimes returns n distinct, increasing timestamps so rows created
// in one batch keep their submitted order when order values tie
func (s *Service) insertionTimes(n int) []time.Time {
	base := s.now()
	times := make([]time.Time, n)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * time.Microsecond)
	}
	return times
}

func mapErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
