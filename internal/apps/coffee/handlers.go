package coffee

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type CoffeeHandler struct {
	service *CoffeeService
}

func NewCoffeeHandler(service *CoffeeService) *CoffeeHandler {
	return &CoffeeHandler{service: service}
}

func (h *CoffeeHandler) GetMenu(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"error": false, "menu": h.service.Menu()})
}

func (h *CoffeeHandler) PlaceOrder(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	var req struct {
		CoffeeID string `json:"coffee_id"`
		Size     string `json:"size"`
	}
	if err := c.BodyParser(&req); err != nil || req.CoffeeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "coffee_id is required",
		})
	}

	receipt, err := h.service.Order(c.UserContext(), email, req.CoffeeID, req.Size)
	msg, msgErr := Message(receipt, err)
	switch {
	case errors.Is(err, ErrUnknownCoffee):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: msg})
	case errors.Is(err, ErrSizeOffered):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
	case msgErr != nil:
		slog.Error("coffee order failed", "user_id", email, "coffee_id", req.CoffeeID, "error", msgErr)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to place coffee order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "message": msg, "order": receipt})
}
