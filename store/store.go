package store

import (
	"context"
	courseModels "coursebuilder/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row is absent or not owned by the caller
var ErrNotFound = errors.New("record not found")

// Store persists courses, modules and lessons. Every lookup that takes a
// userID filters on the ownership chain, so rows owned by someone else are
// indistinguishable from rows that do not exist.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Stats holds per-user entity counts for the dashboard
type Stats struct {
	Courses int64 `json:"courses"`
	Modules int64 `json:"modules"`
	Lessons int64 `json:"lessons"`
}

// Ping checks that the database answers
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get database instance")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping database")
}

// Stats counts the caller's courses, modules and lessons
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var stats Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&courseModels.Course{}).Where("user_id = ?", userID).Count(&stats.Courses).Error; err != nil {
		return stats, errors.Wrap(err, "count courses")
	}
	if err := db.Model(&courseModels.Module{}).Where("course_id IN (?)", s.ownedCourseIDs(ctx, userID)).Count(&stats.Modules).Error; err != nil {
		return stats, errors.Wrap(err, "count modules")
	}
	if err := db.Model(&courseModels.Lesson{}).Where("module_id IN (?)", s.ownedModuleIDs(ctx, userID)).Count(&stats.Lessons).Error; err != nil {
		return stats, errors.Wrap(err, "count lessons")
	}
	return stats, nil
}

// ownedCourseIDs is a subquery selecting the ids of the caller's courses
func (s *Store) ownedCourseIDs(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&courseModels.Course{}).Select("id").Where("user_id = ?", userID)
}

// ownedModuleIDs is a subquery selecting the ids of modules under the caller's courses
func (s *Store) ownedModuleIDs(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&courseModels.Module{}).Select("id").Where("course_id IN (?)", s.ownedCourseIDs(ctx, userID))
}

// inOrder sorts children by their order column, then by insertion
func inOrder(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".order_index ASC").Order(table + ".created_at ASC").Order(table + ".id ASC")
	}
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}
