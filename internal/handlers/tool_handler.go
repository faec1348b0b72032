package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"github.com/gofiber/fiber/v2"
)

type ToolHandler struct {
	registry *tools.Registry
}

func NewToolHandler(registry *tools.Registry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

func (h *ToolHandler) List(c *fiber.Ctx) error {
	defs := h.registry.List()
	out := make([]dto.ToolInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, dto.ToolInfo{Name: d.Name, Description: d.Description, Parameters: d.Parameters})
	}
	return c.JSON(fiber.Map{"error": false, "tools": out})
}

// Call executes one tool as the identified caller; a user_id in the body is ignored.
func (h *ToolHandler) Call(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ToolCallRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}
	if req.Args == nil {
		req.Args = map[string]any{}
	}
	req.Args["user_id"] = email

	name := c.Params("name")
	result, err := h.registry.Execute(c.UserContext(), name, req.Args)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown tool: " + name,
		})
	case errors.Is(err, tools.ErrMissingArgument), errors.Is(err, tools.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case err != nil:
		return err
	}
	return c.JSON(dto.ToolCallResponse{Tool: name, Result: result})
}
