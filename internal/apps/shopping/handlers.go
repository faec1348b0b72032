package shopping

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ShoppingHandler struct {
	carts  *CartService
	orders *OrderService
}

func NewShoppingHandler(carts *CartService, orders *OrderService) *ShoppingHandler {
	return &ShoppingHandler{carts: carts, orders: orders}
}

func (h *ShoppingHandler) GetCart(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	lines, err := h.carts.View(c.UserContext(), email)
	if err != nil {
		slog.Error("cart read failed", "user_id", email, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load cart")
	}
	return c.JSON(fiber.Map{"error": false, "items": lines})
}

func (h *ShoppingHandler) AddToCart(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  *int   `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "product_id is required")
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := h.carts.Add(c.UserContext(), email, req.ProductID, qty); err != nil {
		if errors.Is(err, ErrInvalidQuantity) {
			return errorJSON(c, fiber.StatusBadRequest, msgBadQuantity)
		}
		if errors.Is(err, ErrQuantityTooLarge) {
			return errorJSON(c, fiber.StatusBadRequest, msgTooMany)
		}
		slog.Error("add to cart failed", "user_id", email, "product_id", req.ProductID, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to add to cart")
	}
	lines, err := h.carts.View(c.UserContext(), email)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load cart")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "items": lines})
}

func (h *ShoppingHandler) Checkout(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	order, err := h.orders.Checkout(c.UserContext(), email)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, msgUserNotFound)
	case errors.Is(err, ErrNoAddress):
		return errorJSON(c, fiber.StatusUnprocessableEntity, msgNoAddress)
	case errors.Is(err, ErrEmptyCart):
		return errorJSON(c, fiber.StatusUnprocessableEntity, msgEmptyCart)
	case err != nil:
		slog.Error("checkout failed", "user_id", email, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to place order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "order": order})
}

func (h *ShoppingHandler) GetOrders(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	orders, err := h.orders.History(c.UserContext(), email)
	if err != nil {
		slog.Error("order history failed", "user_id", email, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load orders")
	}
	return c.JSON(fiber.Map{"error": false, "orders": orders})
}

func (h *ShoppingHandler) GetOrder(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	order, err := h.orders.FindForUser(c.UserContext(), email, c.Params("id"))
	if errors.Is(err, ErrOrderNotFound) {
		return errorJSON(c, fiber.StatusNotFound, msgOrderNotFound)
	}
	if err != nil {
		slog.Error("order read failed", "user_id", email, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load order")
	}
	return c.JSON(fiber.Map{"error": false, "order": order})
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
