package service

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/drill"
	"github.com/tonedrill/backend/internal/model/types"
)

// Attempt accepts completed question slots and queues them for the ingest
// worker. Submission is fire-and-forget from the client's perspective: the
// HTTP response only acknowledges that the attempt is durably queued.
type Attempt struct {
	JS nats.JetStreamContext
}

func NewAttempt(js nats.JetStreamContext) *Attempt {
	return &Attempt{
		JS: js,
	}
}

// QueueSingularAttempt publishes one attempt to the work queue and waits for
// the broker's ack so a 200 means the attempt cannot be lost.
func (s *Attempt) QueueSingularAttempt(ctx *fiber.Ctx, userID string, req *types.SingularAttemptRequest) (*types.AttemptResponse, error) {
	task := &types.AttemptTask{
		TaskID:    xid.New().String(),
		UserID:    userID,
		DrillID:   req.DrillID,
		Prompt:    req.Prompt,
		Answer:    req.Answer,
		IsCorrect: req.IsCorrect,
		LatencyMs: req.LatencyMs,
		CreatedAt: time.Now().UnixMicro(),
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	// the idempotency key doubles as the NATS dedupe ID when present
	msgID := task.TaskID
	if key, ok := ctx.Locals(constant.IdempotencyKeyLocalsKey).(string); ok && key != "" {
		msgID = key
	}

	pub, err := s.JS.PublishAsync(constant.AttemptSubject, taskJSON, nats.MsgId(msgID))
	if err != nil {
		return nil, err
	}

	select {
	case err := <-pub.Err():
		return nil, err
	case <-pub.Ok():
		return &types.AttemptResponse{TaskID: task.TaskID}, nil
	case <-ctx.Context().Done():
		return nil, errors.New("attempt: request canceled while awaiting queue ack")
	}
}

// SubmitterFor adapts the queue to the session state machine: each consumed
// slot (and each incorrect retry) becomes one queued task. Publish failures
// are logged, not surfaced, so a broker hiccup never stalls a running
// session.
func (s *Attempt) SubmitterFor(userID, drillID string) drill.Submitter {
	return &sessionSubmitter{
		js:      s.JS,
		userID:  userID,
		drillID: drillID,
	}
}

type sessionSubmitter struct {
	js      nats.JetStreamContext
	userID  string
	drillID string
}

func (s *sessionSubmitter) Submit(prompt types.IntervalPrompt, answer types.Answer, isCorrect bool, latencyMs int) {
	task := &types.AttemptTask{
		TaskID:    xid.New().String(),
		UserID:    s.userID,
		DrillID:   s.drillID,
		Prompt:    prompt,
		Answer:    answer,
		IsCorrect: isCorrect,
		LatencyMs: latencyMs,
		CreatedAt: time.Now().UnixMicro(),
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		log.Error().
			Str("evt.name", "session.submit.marshal.failed").
			Err(err).
			Msg("failed to marshal attempt task")
		return
	}

	if _, err := s.js.PublishAsync(constant.AttemptSubject, taskJSON, nats.MsgId(task.TaskID)); err != nil {
		log.Error().
			Str("evt.name", "session.submit.publish.failed").
			Str("taskId", task.TaskID).
			Err(err).
			Msg("failed to queue attempt from session")
	}
}
