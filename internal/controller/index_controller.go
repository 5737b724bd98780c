package controller

import (
	"rag-symptom-be/internal/pkg/serverutils"
	"rag-symptom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIndexController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Rebuild(ctx *fiber.Ctx) error
}

type indexController struct {
	service service.IIndexService
}

func NewIndexController(service service.IIndexService) IIndexController {
	return &indexController{service: service}
}

func (c *indexController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/index/v1")
	h.Get("status", c.Status)
	h.Post("rebuild", c.Rebuild)
}

func (c *indexController) Status(ctx *fiber.Ctx) error {
	res, err := c.service.Status(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get index status", res))
}

func (c *indexController) Rebuild(ctx *fiber.Ctx) error {
	res, err := c.service.RequestRebuild(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Rebuild requested", res))
}
