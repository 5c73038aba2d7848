package controllers

import (
	"coursebuilder/middleware"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the caller's full outline, empty or not
func (ctl *Controller) Dashboard(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	courses, err := ctl.svc.ListCourses(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to fetch courses")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, courses)
}

// DashboardStats returns course, module and lesson counts for the caller
func (ctl *Controller) DashboardStats(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	stats, err := ctl.svc.Stats(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to fetch dashboard stats")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, stats)
}

// Health pings the database
func (ctl *Controller) Health(c *fiber.Ctx) error {
	if err := ctl.svc.Ping(c.UserContext()); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database unavailable", err.Error())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
