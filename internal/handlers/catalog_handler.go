package handlers

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"error": false, "products": h.catalog.List()})
}

func (h *CatalogHandler) CheckStock(c *fiber.Ctx) error {
	return c.JSON(h.catalog.CheckStock(c.Params("id")))
}

func (h *CatalogHandler) Recommend(c *fiber.Ctx) error {
	var profile catalog.Profile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	return c.JSON(fiber.Map{"error": false, "products": h.catalog.Recommend(profile)})
}
