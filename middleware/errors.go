package middleware

import (
	"coursebuilder/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pkg/errors"
)

// ErrorHandler renders errors that escape a handler as {error} JSON
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ErrorResponse(c, fe.Code, fe.Message, nil)
		}

		log.Error("Unhandled error", err, map[string]interface{}{
			"method": utils.CopyString(c.Method()),
			"path":   utils.CopyString(c.Path()),
		})
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", err.Error())
	}
}
