package middleware

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// Identified resolves the caller's email and stores it in locals. With JWT
// auth enabled it runs the JWT check and reads the email claim; otherwise it
// trusts the X-User-Email header or the user_id query param.
func Identified(cfg *config.Config) []fiber.Handler {
	if cfg.AuthEnabled() {
		return []fiber.Handler{JWTProtected(cfg), fromToken}
	}
	return []fiber.Handler{fromHeader}
}

func fromToken(c *fiber.Ctx) error {
	email, ok := identity.EmailFromToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: token has no email claim",
		})
	}
	identity.SetEmail(c, email)
	return c.Next()
}

func fromHeader(c *fiber.Ctx) error {
	// 1. Try X-User-Email header
	email := c.Get("X-User-Email")

	// 2. Try query param
	if email == "" {
		email = c.Query("user_id")
	}

	if identity.Normalize(email) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-User-Email header is required",
		})
	}
	identity.SetEmail(c, email)
	return c.Next()
}
