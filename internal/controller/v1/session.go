package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/tonedrill/backend/internal/drill"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/server/svr"
	"github.com/tonedrill/backend/internal/service"
	"github.com/tonedrill/backend/internal/util/rekuest"
)

type Session struct {
	fx.In

	SessionService *service.Session
	UserService    *service.User
}

func RegisterSession(v1 *svr.V1, c Session) {
	sessions := v1.Group("/sessions", requireUser(c.UserService))

	sessions.Post("/", c.StartSession)
	sessions.Get("/:sessionId", c.GetSession)
	sessions.Post("/:sessionId/answer", c.Answer)
	sessions.Post("/:sessionId/skip", c.Skip)
	sessions.Post("/:sessionId/reveal", c.Reveal)
	sessions.Post("/:sessionId/replay", c.Replay)
	sessions.Delete("/:sessionId", c.CloseSession)
}

// @Summary      Start a Session
// @Description  Starts a practice session and poses the first question. A user has at most one live session; starting a new one discards the previous.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        session  body      types.StartSessionRequest  true  "Session configuration"
// @Success      200      {object}  types.SessionView
// @Failure      400      {object}  apperr.Error  "Invalid request"
// @Failure      401      {object}  apperr.Error  "Missing or invalid session token"
// @Security     BearerAuth
// @Router       /api/v1/sessions [POST]
func (c *Session) StartSession(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	var req types.StartSessionRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	view, err := c.SessionService.StartSession(ctx.UserContext(), user.UserID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Get Session State
// @Tags         Session
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  types.SessionView
// @Failure      400        {object}  apperr.Error  "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId} [GET]
func (c *Session) GetSession(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	view, err := c.SessionService.GetSession(user.UserID, ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Answer the Current Question
// @Description  Evaluates the picked interval label. A correct answer consumes the question slot; an incorrect one leaves it open for a retry once the feedback clears.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        sessionId  path      string                     true  "Session ID"
// @Param        answer     body      types.SessionAnswerRequest  true  "Picked label"
// @Success      200        {object}  types.SessionView
// @Failure      400        {object}  apperr.Error  "Invalid label, busy session or session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId}/answer [POST]
func (c *Session) Answer(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	var req types.SessionAnswerRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	view, err := c.SessionService.Answer(user.UserID, ctx.Params("sessionId"), req.Selection, req.LatencyMs)
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Skip the Current Question
// @Description  Consumes the current question slot as incorrect without exposing the answer.
// @Tags         Session
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  types.SessionView
// @Failure      400        {object}  apperr.Error  "Busy session or session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId}/skip [POST]
func (c *Session) Skip(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	view, err := c.SessionService.Skip(user.UserID, ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Reveal the Answer
// @Description  Consumes the current question slot as incorrect and shows the answer label.
// @Tags         Session
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200        {object}  types.SessionView
// @Failure      400        {object}  apperr.Error  "Busy session or session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId}/reveal [POST]
func (c *Session) Reveal(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	view, err := c.SessionService.Reveal(user.UserID, ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Replay the Current Question
// @Description  Rebuilds the playback plan for the current question without affecting scoring. Scope narrows playback to the tonal context or the interval alone.
// @Tags         Session
// @Produce      json
// @Param        sessionId  path      string  true   "Session ID"
// @Param        scope      query     string  false  "Playback scope"  Enums(full, context, interval)
// @Success      200        {object}  types.SessionView
// @Failure      400        {object}  apperr.Error  "Busy session or session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId}/replay [POST]
func (c *Session) Replay(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	scope := ctx.Query("scope", drill.ReplayFull)
	if err := rekuest.ValidVar(ctx, scope, "oneof=full context interval"); err != nil {
		return err
	}

	view, err := c.SessionService.Replay(ctx.UserContext(), user.UserID, ctx.Params("sessionId"), scope)
	if err != nil {
		return err
	}

	return ctx.JSON(view)
}

// @Summary      Close a Session
// @Tags         Session
// @Param        sessionId  path  string  true  "Session ID"
// @Success      204  "Session has been closed"
// @Failure      400  {object}  apperr.Error  "Session not found"
// @Security     BearerAuth
// @Router       /api/v1/sessions/{sessionId} [DELETE]
func (c *Session) CloseSession(ctx *fiber.Ctx) error {
	user, err := userFromLocals(ctx)
	if err != nil {
		return err
	}

	if err := c.SessionService.CloseSession(user.UserID, ctx.Params("sessionId")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
