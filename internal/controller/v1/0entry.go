package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/pkg/apperr"
	"github.com/tonedrill/backend/internal/service"
)

const localsUserKey = "user"

// requireUser guards a route behind bearer-token auth and stashes the
// resolved user in ctx.Locals.
func requireUser(userService *service.User) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := userService.GetUserFromRequest(ctx)
		if err != nil {
			return err
		}

		ctx.Locals(constant.LocalsUserIDKey, user.UserID)
		ctx.Locals(localsUserKey, user)
		return ctx.Next()
	}
}

func userFromLocals(ctx *fiber.Ctx) (*model.User, error) {
	user, ok := ctx.Locals(localsUserKey).(*model.User)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	return user, nil
}
