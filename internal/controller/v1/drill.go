package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
)

type Drill struct {
	fx.In

	DrillService *service.Drill
}

func RegisterDrill(v1 *svr.V1, c Drill) {
	v1.Get("/drills", c.GetDrills)
}

// @Summary      List Drills
// @Tags         Drill
// @Produce      json
// @Success      200  {array}  types.Drill
// @Router       /api/v1/drills [GET]
func (c *Drill) GetDrills(ctx *fiber.Ctx) error {
	drills, err := c.DrillService.GetDrills(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(drills)
}
