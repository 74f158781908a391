package controller

import (
	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/pkg/serverutils"
	"edu-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Tools(ctx *fiber.Ctx) error
	GetMemory(ctx *fiber.Ctx) error
	ClearMemory(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
}

func NewAgentController(agentService service.IAgentService) IAgentController {
	return &agentController{
		agentService: agentService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Post("chat", c.Chat)
	h.Get("tools", c.Tools)
	h.Get("memory/:session_id", c.GetMemory)
	h.Post("memory/:session_id/clear", c.ClearMemory)
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	var req dto.AgentChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.agentService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Agent chat processed", res))
}

func (c *agentController) Tools(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Tool catalogue", c.agentService.ToolCatalog()))
}

func (c *agentController) GetMemory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Agent memory", c.agentService.GetMemory(sessionID)))
}

func (c *agentController) ClearMemory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}

	c.agentService.ClearMemory(sessionID)
	return ctx.JSON(serverutils.SuccessResponse[any]("Agent memory cleared", nil))
}
