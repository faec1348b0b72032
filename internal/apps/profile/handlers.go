package profile

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	service *ProfileService
}

func NewProfileHandler(service *ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	snap, err := h.service.Snapshot(c.UserContext(), email)
	if errors.Is(err, ErrNotSet) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}
	if err != nil {
		slog.Error("profile read failed", "user_id", email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load profile",
		})
	}
	return c.JSON(snap)
}

func (h *ProfileHandler) SetAddress(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		return badRequest(c, "Address is required")
	}
	if err := h.service.SetAddress(c.UserContext(), email, req.Address); err != nil {
		slog.Error("address update failed", "user_id", email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update address",
		})
	}
	return c.JSON(fiber.Map{"error": false, "address": req.Address})
}

func (h *ProfileHandler) SetPayment(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	var req struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Method) == "" {
		return badRequest(c, "Payment method is required")
	}
	if err := h.service.SetPayment(c.UserContext(), email, req.Method); err != nil {
		slog.Error("payment update failed", "user_id", email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update payment method",
		})
	}
	return c.JSON(fiber.Map{"error": false, "payment_method": req.Method})
}

func (h *ProfileHandler) SetPreference(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return unauthorized(c)
	}
	key := c.Params("key")
	var req struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.service.SetPreference(c.UserContext(), email, key, req.Value); err != nil {
		if errors.Is(err, ErrEmptyValue) {
			return badRequest(c, "Preference key is required")
		}
		slog.Error("preference update failed", "user_id", email, "key", key, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update preference",
		})
	}
	return c.JSON(fiber.Map{"error": false, "key": key, "value": req.Value})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}
