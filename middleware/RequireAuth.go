package middleware

import (
	"errors"
	"strings"

	"logistics-accounts/service"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the fiber locals key under which RequireAuth stores the
// validated service.Principal.
const PrincipalKey = "principal"

// RequireAuth guards a route group with bearer-token validation. Expired,
// malformed and revoked tokens are all rejected with 401; the body says which.
func RequireAuth(tokens *service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is missing or invalid"})
		}

		principal, err := tokens.ValidateAndGetPrincipal(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrExpiredToken):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token has expired"})
			case errors.Is(err, service.ErrRevokedToken):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token has been revoked"})
			default:
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "malformed token"})
			}
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx pulls the principal stored by RequireAuth. ok is false on
// routes that skipped the middleware.
func PrincipalFromCtx(c *fiber.Ctx) (service.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(service.Principal)
	return p, ok
}
