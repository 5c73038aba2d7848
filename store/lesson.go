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

// FindOwnedLesson fetches a lesson only if its module's course belongs to userID
func (s *Store) FindOwnedLesson(ctx context.Context, id uuid.UUID, userID string) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	err := s.db.WithContext(ctx).
		Where("id = ? AND module_id IN (?)", id, s.ownedModuleIDs(ctx, userID)).
		First(&lesson).Error
	if err != nil {
		return nil, notFound(err, "find lesson")
	}

	lessons := []courseModels.Lesson{lesson}
	if err := s.attachModules(ctx, lessons); err != nil {
		return nil, err
	}
	return &lessons[0], nil
}

// ListLessons returns every lesson under the caller's modules, following the
// course and module ordering
func (s *Store) ListLessons(ctx context.Context, userID string) ([]courseModels.Lesson, error) {
	lessons := []courseModels.Lesson{}
	err := s.db.WithContext(ctx).
		Select("lessons.*").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("courses.user_id = ?", userID).
		Order("courses.created_at ASC").Order("courses.id ASC").
		Scopes(inOrder("modules"), inOrder("lessons")).
		Find(&lessons).Error
	if err != nil {
		return nil, errors.Wrap(err, "list lessons")
	}

	if err := s.attachModules(ctx, lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateLessons inserts all lessons in one transaction
func (s *Store) CreateLessons(ctx context.Context, lessons []courseModels.Lesson) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&lessons).Error
	})
	return errors.Wrap(err, "create lessons")
}

// UpdateLesson replaces the editable fields of an owned lesson
func (s *Store) UpdateLesson(ctx context.Context, id uuid.UUID, userID, lessonName string, order int, now time.Time) (*courseModels.Lesson, error) {
	if _, err := s.FindOwnedLesson(ctx, id, userID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&courseModels.Lesson{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"lesson_name": lessonName,
			"order_index": order,
			"updated_at":  now,
		}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update lesson")
	}
	return s.FindOwnedLesson(ctx, id, userID)
}

// DeleteLesson removes an owned lesson. Deleting nothing is not an error.
func (s *Store) DeleteLesson(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND module_id IN (?)", id, s.ownedModuleIDs(ctx, userID)).
		Delete(&courseModels.Lesson{}).Error
	return errors.Wrap(err, "delete lesson")
}

// attachModules fills Lesson.Module with the parent's id, name and course
func (s *Store) attachModules(ctx context.Context, lessons []courseModels.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	ids := lo.Uniq(lo.Map(lessons, func(l courseModels.Lesson, _ int) uuid.UUID { return l.ModuleID }))
	var summaries []courseModels.ModuleSummary
	err := s.db.WithContext(ctx).
		Model(&courseModels.Module{}).
		Select("id", "module_name", "course_id").
		Where("id IN ?", ids).
		Find(&summaries).Error
	if err != nil {
		return errors.Wrap(err, "load lesson modules")
	}

	byID := lo.KeyBy(summaries, func(m courseModels.ModuleSummary) uuid.UUID { return m.ID })
	for i := range lessons {
		if summary, ok := byID[lessons[i].ModuleID]; ok {
			lessons[i].Module = &summary
		}
	}
	return nil
}
