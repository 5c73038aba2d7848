package controllers

import (
	"coursebuilder/logger"
	"coursebuilder/middleware"
	courseService "coursebuilder/services/course"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const unauthorizedMessage = "Unauthorized! Please login to continue"

// Controller serves the course, module, lesson and dashboard endpoints
type Controller struct {
	svc *courseService.Service
	log logger.Logger
}

func New(svc *courseService.Service, log logger.Logger) *Controller {
	return &Controller{svc: svc, log: log}
}

// pathID returns the id parsed by the EntityID validator
func pathID(c *fiber.Ctx, param string) uuid.UUID {
	id, _ := c.Locals(param).(uuid.UUID)
	return id
}

// fail maps a service error to a 404 or a logged 500
func (ctl *Controller) fail(c *fiber.Ctx, err error, notFoundMessage, internalMessage string) error {
	if errors.Is(err, courseService.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, notFoundMessage, nil)
	}

	ctl.log.Error(internalMessage, err, map[string]interface{}{
		"method": utils.CopyString(c.Method()),
		"path":   utils.CopyString(c.Path()),
	})
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, internalMessage, err.Error())
}
