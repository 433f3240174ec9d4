package controller

import (
	"ai-coaching-be/internal/pkg/serverutils"
	"ai-coaching-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWantController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetRejectedShoulds(ctx *fiber.Ctx) error
}

type wantController struct {
	wantService service.IWantService
}

func NewWantController(wantService service.IWantService) IWantController {
	return &wantController{
		wantService: wantService,
	}
}

func (c *wantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/want/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("rejected-shoulds", c.GetRejectedShoulds)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
}

func (c *wantController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.wantService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get wants", res))
}

func (c *wantController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.wantService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show want", res))
}

func (c *wantController) GetRejectedShoulds(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.wantService.GetRejectedShoulds(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rejected shoulds", res))
}
