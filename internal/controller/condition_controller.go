package controller

import (
	"net/url"

	"rag-symptom-be/internal/pkg/serverutils"
	"rag-symptom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConditionController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type conditionController struct {
	service service.IConditionService
}

func NewConditionController(service service.IConditionService) IConditionController {
	return &conditionController{service: service}
}

func (c *conditionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/condition/v1")
	h.Get("", c.GetAll)
	h.Get(":name", c.Show)
}

func (c *conditionController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all condition", c.service.ListConditions(ctx.UserContext())))
}

func (c *conditionController) Show(ctx *fiber.Ctx) error {
	// names contain spaces ("common cold")
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid condition name")
	}

	res, err := c.service.GetCondition(ctx.UserContext(), name)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show condition", res))
}
