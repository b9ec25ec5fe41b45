package middleware

import (
	"strings"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/utils"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the c.Locals key holding the models.Principal.
const PrincipalKey = "principal"

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// AuthJWT rejects requests without a valid Bearer token.
func AuthJWT(c *fiber.Ctx) error {
	tokenStr, ok := bearerToken(c)
	if !ok {
		// EventSource can't set headers; the SSE stream passes the token as a query param
		tokenStr = c.Query("access_token")
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	c.Locals(PrincipalKey, models.Principal{UserID: claims.UserID, Email: claims.Email})
	return c.Next()
}

// OptionalAuth sets the principal when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(c *fiber.Ctx) error {
	if tokenStr, ok := bearerToken(c); ok {
		if claims, err := utils.ParseJWT(tokenStr); err == nil {
			c.Locals(PrincipalKey, models.Principal{UserID: claims.UserID, Email: claims.Email})
		}
	}
	return c.Next()
}

// GetPrincipal returns the caller set by AuthJWT / OptionalAuth; anonymous
// callers get the zero Principal.
func GetPrincipal(c *fiber.Ctx) models.Principal {
	p, _ := c.Locals(PrincipalKey).(models.Principal)
	return p
}
