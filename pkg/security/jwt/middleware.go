package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware on successful verification.
const (
	LocalsUserID = "userId"
	LocalsEmail  = "email"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256) using the given generator. On success it sets the account id and
// email into the request locals.
func NewAuthMiddleware(gen *Generator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Empty token"})
		}
		claims, err := gen.Verify(c.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Token expired"})
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}
		c.Locals(LocalsUserID, claims.Subject)
		c.Locals(LocalsEmail, claims.Email)
		return c.Next()
	}
}
