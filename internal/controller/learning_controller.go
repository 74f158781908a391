package controller

import (
	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/pkg/serverutils"
	"edu-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILearningController interface {
	RegisterRoutes(r fiber.Router)
	SubmitQuestionnaire(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	ResetProfile(ctx *fiber.Ctx) error
}

type learningController struct {
	learningService service.ILearningService
}

func NewLearningController(learningService service.ILearningService) ILearningController {
	return &learningController{
		learningService: learningService,
	}
}

func (c *learningController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/learning/v1")
	h.Post("questionnaire", c.SubmitQuestionnaire)
	h.Get("profile/:session_id", c.GetProfile)
	h.Post("reset", c.ResetProfile)
}

func (c *learningController) SubmitQuestionnaire(ctx *fiber.Ctx) error {
	var req dto.QuestionnaireRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.learningService.SubmitQuestionnaire(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Questionnaire applied", res))
}

func (c *learningController) GetProfile(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}

	res, err := c.learningService.GetProfile(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Learner profile", res))
}

func (c *learningController) ResetProfile(ctx *fiber.Ctx) error {
	var req dto.ResetProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.learningService.ResetProfile(ctx.Context(), req.SessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Profile reset", nil))
}
