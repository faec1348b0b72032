package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/agents"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	orch *agents.Orchestrator
	cfg  *config.Config
}

func NewChatHandler(orch *agents.Orchestrator, cfg *config.Config) *ChatHandler {
	return &ChatHandler{orch: orch, cfg: cfg}
}

func (h *ChatHandler) ListAgents(c *fiber.Ctx) error {
	fc := h.orch.Config()
	out := make([]dto.AgentInfo, 0, len(fc.Agents))
	for _, a := range fc.Agents {
		out = append(out, dto.AgentInfo{ID: a.ID, Name: a.Name, Description: a.Description, Tools: a.Tools})
	}
	return c.JSON(fiber.Map{"error": false, "team": fc.Team.ID, "agents": out})
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	email, err := identity.GetEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "message is required",
		})
	}
	if req.SessionID == "" {
		req.SessionID = h.cfg.DefaultSession
	}

	reply, err := h.orch.Handle(c.UserContext(), agents.Turn{
		UserID:    email,
		SessionID: req.SessionID,
		Input:     req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ChatResponse{Agent: reply.Agent, Reply: reply.Text})
}
