package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
	"github.com/tonedrill/backend/internal/util/rekuest"
)

type Auth struct {
	fx.In

	AuthService *service.Auth
	UserService *service.User
}

func RegisterAuth(v1 *svr.V1, c Auth) {
	v1.Post("/auth/otp/request", c.RequestCode)
	v1.Post("/auth/otp/verify", c.VerifyCode)
	v1.Post("/auth/logout", c.Logout)
}

// @Summary      Request a Sign-in Code
// @Description  Mails a one-time sign-in code to the given address. Always responds with `{"ok": true}` for well-formed requests, regardless of whether a code was actually issued.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.OtpRequestRequest  true  "Code request"
// @Success      200      {object}  types.OtpRequestResponse
// @Failure      400      {object}  apperr.Error  "Invalid request"
// @Router       /api/v1/auth/otp/request [POST]
func (c *Auth) RequestCode(ctx *fiber.Ctx) error {
	var req types.OtpRequestRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	if err := c.AuthService.RequestCode(ctx.UserContext(), req.Email); err != nil {
		return err
	}

	return ctx.JSON(types.OtpRequestResponse{OK: true})
}

// @Summary      Verify a Sign-in Code
// @Description  Exchanges a mailed one-time code for a bearer session token, creating the account on first sign-in.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.OtpVerifyRequest  true  "Code verification"
// @Success      200      {object}  types.OtpVerifyResponse
// @Failure      401      {object}  apperr.Error  "Invalid or expired code"
// @Router       /api/v1/auth/otp/verify [POST]
func (c *Auth) VerifyCode(ctx *fiber.Ctx) error {
	var req types.OtpVerifyRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	resp, err := c.AuthService.VerifyCode(ctx.UserContext(), req.Email, req.Code)
	if err != nil {
		return err
	}

	return ctx.JSON(resp)
}

// @Summary      Log Out
// @Description  Revokes the presented session token.
// @Tags         Auth
// @Produce      json
// @Success      204  "Token has been revoked"
// @Security     BearerAuth
// @Router       /api/v1/auth/logout [POST]
func (c *Auth) Logout(ctx *fiber.Ctx) error {
	if token := service.ExtractBearerToken(ctx.Get(fiber.HeaderAuthorization)); token != "" {
		if err := c.UserService.RevokeToken(ctx.UserContext(), token); err != nil {
			return err
		}
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
