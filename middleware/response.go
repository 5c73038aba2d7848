package middleware

import "github.com/gofiber/fiber/v2"

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageBody is returned by deletes
type MessageBody struct {
	Message string `json:"message"`
}

// JsonResponse writes data as the raw response body
func JsonResponse(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, details interface{}) error {
	return JsonResponse(c, statusCode, ErrorBody{Error: message, Details: details})
}

func MessageResponse(c *fiber.Ctx, statusCode int, message string) error {
	return JsonResponse(c, statusCode, MessageBody{Message: message})
}

func ValidationErrorResponse(c *fiber.Ctx, errors []FieldError) error {
	return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", errors)
}
