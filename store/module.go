package store

import (
	"context"
	courseModels "coursebuilder/models/course"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// FindOwnedModule fetches a module only if its course belongs to userID
func (s *Store) FindOwnedModule(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Module, error) {
	var module courseModels.Module
	err := s.db.WithContext(ctx).
		Preload("Lessons", inOrder("lessons")).
		Where("id = ? AND course_id IN (?)", id, s.ownedCourseIDs(ctx, userID)).
		First(&module).Error
	if err != nil {
		return nil, notFound(err, "find module")
	}

	modules := []courseModels.Module{module}
	if err := s.attachCourses(ctx, modules); err != nil {
		return nil, err
	}
	return &modules[0], nil
}

// ListModules returns every module under the caller's courses, grouped by
// course and ordered within each course
func (s *Store) ListModules(ctx context.Context, userID string) ([]courseModels.Module, error) {
	modules := []courseModels.Module{}
	err := s.db.WithContext(ctx).
		Select("modules.*").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID).
		Order("courses.created_at ASC").Order("courses.id ASC").
		Scopes(inOrder("modules")).
		Preload("Lessons", inOrder("lessons")).
		Find(&modules).Error
	if err != nil {
		return nil, errors.Wrap(err, "list modules")
	}

	if err := s.attachCourses(ctx, modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// CreateModules inserts all modules in one transaction
func (s *Store) CreateModules(ctx context.Context, modules []courseModels.Module) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&modules).Error
	})
	return errors.Wrap(err, "create modules")
}

// UpdateModule replaces the editable fields of an owned module
func (s *Store) UpdateModule(ctx context.Context, id uuid.UUID, userID, moduleName, description string, order int, now time.Time) (*courseModels.Module, error) {
	if _, err := s.FindOwnedModule(ctx, id, userID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&courseModels.Module{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"module_name": moduleName,
			"description": description,
			"order_index": order,
			"updated_at":  now,
		}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update module")
	}
	return s.FindOwnedModule(ctx, id, userID)
}

// DeleteModule removes an owned module and its lessons.
// Deleting nothing is not an error.
func (s *Store) DeleteModule(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courses := tx.Model(&courseModels.Course{}).Select("id").Where("user_id = ?", userID)
		owned := tx.Model(&courseModels.Module{}).Select("id").Where("id = ? AND course_id IN (?)", id, courses)

		if err := tx.Where("module_id IN (?)", owned).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND course_id IN (?)", id, courses).Delete(&courseModels.Module{}).Error
	})
	return errors.Wrap(err, "delete module")
}

// attachCourses fills Module.Course with the parent's id and name
func (s *Store) attachCourses(ctx context.Context, modules []courseModels.Module) error {
	if len(modules) == 0 {
		return nil
	}

	ids := lo.Uniq(lo.Map(modules, func(m courseModels.Module, _ int) uuid.UUID { return m.CourseID }))
	var summaries []courseModels.CourseSummary
	err := s.db.WithContext(ctx).
		Model(&courseModels.Course{}).
		Select("id", "course_name").
		Where("id IN ?", ids).
		Find(&summaries).Error
	if err != nil {
		return errors.Wrap(err, "load module courses")
	}

	byID := lo.KeyBy(summaries, func(c courseModels.CourseSummary) uuid.UUID { return c.ID })
	for i := range modules {
		if summary, ok := byID[modules[i].CourseID]; ok {
			modules[i].Course = &summary
		}
	}
	return nil
}
