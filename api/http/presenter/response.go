package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ServerErrorResponse carries the original error text alongside the
// message, mirroring the 500 payload shape clients already parse.
type ServerErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func ServerError(c *fiber.Ctx, err error) error {
	return JSON(c, http.StatusInternalServerError, ServerErrorResponse{
		Message: "Server error",
		Error:   err.Error(),
	})
}
