package store

import (
	"context"
	courseModels "coursebuilder/models/course"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// withOutline preloads modules and their lessons, each level in order
func withOutline(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", inOrder("modules")).
		Preload("Modules.Lessons", inOrder("lessons"))
}

// FindOwnedCourse fetches a course only if userID owns it
func (s *Store) FindOwnedCourse(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Course, error) {
	var course courseModels.Course
	err := s.db.WithContext(ctx).
		Scopes(withOutline).
		Where("id = ? AND user_id = ?", id, userID).
		First(&course).Error
	if err != nil {
		return nil, notFound(err, "find course")
	}
	return &course, nil
}

// ListCourses returns the caller's courses with their outline, oldest first
func (s *Store) ListCourses(ctx context.Context, userID string) ([]courseModels.Course, error) {
	courses := []courseModels.Course{}
	err := s.db.WithContext(ctx).
		Scopes(withOutline).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	return courses, nil
}

func (s *Store) CreateCourse(ctx context.Context, course *courseModels.Course) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(course).Error, "create course")
}

// UpdateCourse replaces the editable fields of an owned course
func (s *Store) UpdateCourse(ctx context.Context, id uuid.UUID, userID, courseName, description string, now time.Time) (*courseModels.Course, error) {
	if _, err := s.FindOwnedCourse(ctx, id, userID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&courseModels.Course{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"course_name": courseName,
			"description": description,
			"updated_at":  now,
		}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update course")
	}
	return s.FindOwnedCourse(ctx, id, userID)
}

// DeleteCourse removes an owned course with its modules and lessons.
// Deleting nothing is not an error.
func (s *Store) DeleteCourse(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&courseModels.Course{}).Select("id").Where("id = ? AND user_id = ?", id, userID)
		modules := tx.Model(&courseModels.Module{}).Select("id").Where("course_id IN (?)", owned)

		if err := tx.Where("module_id IN (?)", modules).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id IN (?)", owned).Delete(&courseModels.Module{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&courseModels.Course{}).Error
	})
	return errors.Wrap(err, "delete course")
}
