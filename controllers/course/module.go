package controllers

import (
	"coursebuilder/middleware"
	courseService "coursebuilder/services/course"
	validators "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ListModules returns every module under the caller's courses
func (ctl *Controller) ListModules(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	modules, err := ctl.svc.ListModules(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err, "Module not found", "Failed to fetch modules")
	}
	if len(modules) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No modules found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, modules)
}

// CreateModules creates one module, or a whole list in one go
func (ctl *Controller) CreateModules(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	if single, ok := c.Locals("validatedModule").(*validators.ModuleRequest); ok {
		modules, err := ctl.svc.CreateModules(c.UserContext(), userID, uuid.MustParse(single.CourseID), []courseService.ModuleInput{{
			ModuleName:  single.ModuleName,
			Description: single.Description,
			Order:       *single.Order,
		}})
		if err != nil {
			return ctl.fail(c, err, "Course not found", "Failed to create module")
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, modules[0])
	}

	reqData := c.Locals("validatedModules").(*validators.ModulesRequest)
	in := lo.Map(reqData.Modules, func(m validators.ModuleItem, _ int) courseService.ModuleInput {
		return courseService.ModuleInput{ModuleName: m.ModuleName, Description: m.Description, Order: *m.Order}
	})

	modules, err := ctl.svc.CreateModules(c.UserContext(), userID, uuid.MustParse(reqData.CourseID), in)
	if err != nil {
		return ctl.fail(c, err, "Course not found", "Failed to create modules")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, modules)
}

// GetModule returns one owned module with its lessons
func (ctl *Controller) GetModule(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	module, err := ctl.svc.GetModule(c.UserContext(), pathID(c, "moduleId"), userID)
	if err != nil {
		return ctl.fail(c, err, "Module not found", "Failed to fetch module")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, module)
}

// UpdateModule replaces the name, description and order of an owned module
func (ctl *Controller) UpdateModule(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	reqData := c.Locals("validatedModuleUpdate").(*validators.ModuleUpdateRequest)

	module, err := ctl.svc.UpdateModule(c.UserContext(), pathID(c, "moduleId"), userID, courseService.ModuleInput{
		ModuleName:  reqData.ModuleName,
		Description: reqData.Description,
		Order:       *reqData.Order,
	})
	if err != nil {
		return ctl.fail(c, err, "Module not found", "Failed to update module")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, module)
}

// DeleteModule deletes an owned module and its lessons
func (ctl *Controller) DeleteModule(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
	}

	if err := ctl.svc.DeleteModule(c.UserContext(), pathID(c, "moduleId"), userID); err != nil {
		return ctl.fail(c, err, "Module not found", "Failed to delete module")
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "Module deleted successfully")
}
