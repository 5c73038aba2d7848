package controllers

import (
	"coursebuilder/middleware"
	courseService "coursebuilder/services/course"
	validators "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ListLessons returns every lesson under the caller's modules
func (ctl *Controller) ListLessons(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	lessons, err := ctl.svc.ListLessons(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err, "Lesson not found", "Failed to fetch lessons")
	}
	if len(lessons) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No lessons found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, lessons)
}

// CreateLessons creates one lesson, or a whole list in one go
func (ctl *Controller) CreateLessons(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	if single, ok := c.Locals("validatedLesson").(*validators.LessonRequest); ok {
		lessons, err := ctl.svc.CreateLessons(c.UserContext(), userID, uuid.MustParse(single.ModuleID), []courseService.LessonInput{{
			LessonName: single.LessonName,
			Order:      *single.Order,
		}})
		if err != nil {
			return ctl.fail(c, err, "Module not found", "Failed to create lesson")
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, lessons[0])
	}

	reqData := c.Locals("validatedLessons").(*validators.LessonsRequest)
	in := lo.Map(reqData.Lessons, func(l validators.LessonItem, _ int) courseService.LessonInput {
		return courseService.LessonInput{LessonName: l.LessonName, Order: *l.Order}
	})

	lessons, err := ctl.svc.CreateLessons(c.UserContext(), userID, uuid.MustParse(reqData.ModuleID), in)
	if err != nil {
		return ctl.fail(c, err, "Module not found", "Failed to create lessons")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, lessons)
}

// GetLesson returns one owned lesson
func (ctl *Controller) GetLesson(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	lesson, err := ctl.svc.GetLesson(c.UserContext(), pathID(c, "lessonId"), userID)
	if err != nil {
		return ctl.fail(c, err, "Lesson not found", "Failed to fetch lesson")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, lesson)
}

// UpdateLesson replaces the name and order of an owned lesson
func (ctl *Controller) UpdateLesson(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	reqData := c.Locals("validatedLessonUpdate").(*validators.LessonUpdateRequest)

	lesson, err := ctl.svc.UpdateLesson(c.UserContext(), pathID(c, "lessonId"), userID, courseService.LessonInput{
		LessonName: reqData.LessonName,
		Order:      *reqData.Order,
	})
	if err != nil {
		return ctl.fail(c, err, "Lesson not found", "Failed to update lesson")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, lesson)
}

// DeleteLesson deletes an owned lesson
func (ctl *Controller) DeleteLesson(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	if err := ctl.svc.DeleteLesson(c.UserContext(), pathID(c, "lessonId"), userID); err != nil {
		return ctl.fail(c, err, "Lesson not found", "Failed to delete lesson")
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "Lesson deleted successfully")
}
