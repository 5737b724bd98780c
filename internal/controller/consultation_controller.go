package controller

import (
	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/serverutils"
	"rag-symptom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConsultationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type consultationController struct {
	service service.IAssistantService
}

func NewConsultationController(service service.IAssistantService) IConsultationController {
	return &consultationController{service: service}
}

func (c *consultationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/consultation/v1")
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/messages", c.SendMessage)
}

func (c *consultationController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.CreateConsultation(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create consultation", res))
}

func (c *consultationController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *consultationController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetConsultation(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show consultation", res))
}

func (c *consultationController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteConsultation(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete consultation", nil))
}
