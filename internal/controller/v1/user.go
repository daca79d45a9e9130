package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
)

type User struct {
	fx.In

	UserService *service.User
}

func RegisterUser(v1 *svr.V1, c User) {
	v1.Get("/users/me", requireUser(c.UserService), c.Me)
}

// @Summary      Get Current User
// @Tags         User
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      401  {object}  apperr.Error  "Missing or invalid session token"
// @Security     BearerAuth
// @Router       /api/v1/users/me [GET]
func (c *User) Me(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(user)
}
