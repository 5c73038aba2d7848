package middleware

import (
	"coursebuilder/logger"
	"coursebuilder/session"

	"github.com/gofiber/fiber/v2"
)

const unauthorizedMessage = "Unauthorized! Please login to continue"

// RequireSession resolves the caller through the session provider and stores
// the user id in c.Locals("userId")
func RequireSession(provider session.Provider, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		creds := session.Credentials{
			Authorization: c.Get(fiber.HeaderAuthorization),
			Cookie:        c.Get(fiber.HeaderCookie),
		}

		identity, err := provider.ResolveSession(c.UserContext(), creds)
		if err != nil {
			log.Error("Failed to resolve session", err)
			return ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve session", err.Error())
		}
		if identity == nil || identity.UserID == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, unauthorizedMessage, nil)
		}

		c.Locals("userId", identity.UserID)
		c.Locals("identity", identity)
		return c.Next()
	}
}

// UserID returns the caller set by RequireSession
func UserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("userId").(string)
	return userID, ok && userID != ""
}
