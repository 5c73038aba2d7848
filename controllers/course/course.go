package controllers

import (
	"coursebuilder/middleware"
	courseService "coursebuilder/services/course"
	validators "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ListCourses returns the caller's courses with their outline
func (ctl *Controller) ListCourses(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	courses, err := ctl.svc.ListCourses(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to fetch courses")
	}
	if len(courses) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No courses found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, courses)
}

// CreateCourse creates a course owned by the caller
func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	reqData := c.Locals("validatedCourse").(*validators.CourseRequest)

	course, err := ctl.svc.CreateCourse(c.UserContext(), userID, courseService.CourseInput{
		CourseName:  reqData.CourseName,
		Description: reqData.Description,
	})
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to create course")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, course)
}

// GetCourse returns one owned course with its modules
func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	course, err := ctl.svc.GetCourse(c.UserContext(), pathID(c, "courseId"), userID)
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to fetch course")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

// UpdateCourse replaces the name and description of an owned course
func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	reqData := c.Locals("validatedCourse").(*validators.CourseRequest)

	course, err := ctl.svc.UpdateCourse(c.UserContext(), pathID(c, "courseId"), userID, courseService.CourseInput{
		CourseName:  reqData.CourseName,
		Description: reqData.Description,
	})
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to update course")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, course)
}

// DeleteCourse deletes an owned course; the response is the same whether or
// not anything was deleted
func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	if err := ctl.svc.DeleteCourse(c.UserContext(), pathID(c, "courseId"), userID); err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to delete course")
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "Course deleted successfully")
}
