package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
	"github.com/tonedrill/backend/internal/util/rekuest"
)

type Stats struct {
	fx.In

	StatsService *service.Stats
	UserService  *service.User
}

func RegisterStats(v1 *svr.V1, c Stats) {
	v1.Get("/stats", requireUser(c.UserService), c.GetUserStats)
}

// @Summary      Get Practice Stats
// @Description  Returns the dashboard aggregate: totals, interval heat map, top missed intervals and the recent seven-day activity series.
// @Tags         Stats
// @Produce      json
// @Param        range  query     string  false  "Aggregation window"  Enums(7d, 30d, all)  default(all)
// @Success      200    {object}  types.UserStats
// @Failure      400    {object}  apperr.Error  "Invalid range"
// @Failure      401    {object}  apperr.Error  "Missing or invalid session token"
// @Security     BearerAuth
// @Router       /api/v1/stats [GET]
func (c *Stats) GetUserStats(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	var req types.StatsRequest
	if err := rekuest.ValidQuery(ctx, &req); err != nil {
		return err
	}

	stats, err := c.StatsService.GetUserStats(ctx.UserContext(), user.UserID, req.Range)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}
