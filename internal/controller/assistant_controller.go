package controller

import (
	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/serverutils"
	"rag-symptom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type assistantController struct {
	service     service.IAssistantService
	defaultTopK int
}

func NewAssistantController(service service.IAssistantService, defaultTopK int) IAssistantController {
	return &assistantController{service: service, defaultTopK: defaultTopK}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask", c.Ask)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.TopK == 0 {
		req.TopK = c.defaultTopK
	}

	res, err := c.service.Ask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
