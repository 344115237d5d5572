package controller

import (
	"bazaarchat-be/internal/dto"
	"bazaarchat-be/internal/pkg/serverutils"
	"bazaarchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	RequestOTP(ctx *fiber.Ctx) error
	VerifyOTP(ctx *fiber.Ctx) error
}

type authController struct {
	otpService service.IOTPService
}

func NewAuthController(otpService service.IOTPService) IAuthController {
	return &authController{
		otpService: otpService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("request-otp", c.RequestOTP)
	h.Post("verify-otp", c.VerifyOTP)
}

func (c *authController) RequestOTP(ctx *fiber.Ctx) error {
	var req dto.RequestOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.otpService.RequestOTP(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OTP sent", nil))
}

func (c *authController) VerifyOTP(ctx *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.otpService.VerifyOTP(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Phone verified", res))
}
