package identity

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localsKey = "email"

var ErrNoIdentity = errors.New("no user identity on request")

// Normalize trims and lower-cases an email so lookups agree on one key.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetEmail stores the caller's email in Fiber context locals.
func SetEmail(c *fiber.Ctx, email string) {
	c.Locals(localsKey, Normalize(email))
}

// GetEmail extracts the caller's email from Fiber context locals.
func GetEmail(c *fiber.Ctx) (string, error) {
	if email, ok := c.Locals(localsKey).(string); ok && email != "" {
		return email, nil
	}
	return "", ErrNoIdentity
}

// EmailFromToken reads the email claim from a validated JWT in context.
func EmailFromToken(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	email, ok := claims["email"].(string)
	return email, ok && email != ""
}
