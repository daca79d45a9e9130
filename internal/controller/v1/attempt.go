package v1

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/pkg/fiberstore"
	"github.com/tonedrill/backend/internal/pkg/middlewares"
	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
	"github.com/tonedrill/backend/internal/util/rekuest"
)

type Attempt struct {
	fx.In

	Redis          *redis.Client
	RedSync        *redsync.Redsync
	AttemptService *service.Attempt
	UserService    *service.User
}

func RegisterAttempt(v1 *svr.V1, c Attempt) {
	v1.Post("/attempts", middlewares.Idempotency(&middlewares.IdempotencyConfig{
		Lifetime:  constant.AttemptIdempotencyLifetime,
		KeyHeader: constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{
			fiber.HeaderContentType,
			fiber.HeaderContentLength,
			constant.RequestIDHeader,
		},
		Storage: fiberstore.NewRedis(c.Redis, constant.AttemptIdempotencyRedisHashKey),
		RedSync: c.RedSync,
	}), requireUser(c.UserService), c.SingularAttempt)
}

// @Summary      Submit an Attempt
// @Description  Queues one completed question slot for ingestion. Supply an `X-Idempotency-Key` header to make retries safe.
// @Tags         Attempt
// @Accept       json
// @Produce      json
// @Param        attempt  body      types.SingularAttemptRequest  true  "Attempt"
// @Success      202      {object}  types.AttemptResponse  "Attempt has been durably queued"
// @Failure      400      {object}  apperr.Error  "Invalid request"
// @Failure      401      {object}  apperr.Error  "Missing or invalid session token"
// @Security     BearerAuth
// @Router       /api/v1/attempts [POST]
func (c *Attempt) SingularAttempt(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	var req types.SingularAttemptRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	resp, err := c.AttemptService.QueueSingularAttempt(ctx, user.UserID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(resp)
}
