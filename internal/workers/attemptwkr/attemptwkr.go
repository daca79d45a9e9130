// Package attemptwkr drains the attempt submission queue and ingests each
// task transactionally: the raw attempt row and the user's running aggregate
// commit together or not at all.
package attemptwkr

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/app/appconfig"
	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model"
	modelcache "github.com/tonedrill/backend/internal/model/cache"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/repo"
	"github.com/tonedrill/backend/internal/service"
)

var ingestedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tonedrill_attempts_ingested_total",
	Help: "Attempt tasks consumed from the queue, by outcome.",
}, []string{"outcome"})

type WorkerDeps struct {
	fx.In

	DB           *bun.DB
	NatsJS       nats.JetStreamContext
	AttemptRepo  *repo.Attempt
	UserStatRepo *repo.UserStat
}

type Worker struct {
	// count is the number of workers
	count int

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	ch := make(chan error)
	// handle & dump errors from workers
	go func() {
		for {
			err := <-ch
			if err != nil {
				log.Error().Err(err).Msg("attempt worker error")
			}
		}
	}()

	workers := &Worker{
		count:      0,
		WorkerDeps: deps,
	}

	count := conf.AttemptWorkerCount
	if count <= 0 {
		count = runtime.NumCPU()
	}

	// spawn workers
	for i := 0; i < count; i++ {
		go func() {
			err := workers.Consumer(context.Background(), ch)
			if err != nil {
				ch <- err
			}
		}()
		workers.count += 1
	}
}

func (w *Worker) Consumer(ctx context.Context, ch chan error) error {
	msgChan := make(chan *nats.Msg, 16)

	_, err := w.NatsJS.ChanQueueSubscribe(constant.AttemptSubjectGlob, constant.AttemptConsumerName, msgChan, nats.AckWait(time.Second*10), nats.MaxAckPending(128))
	if err != nil {
		log.Err(err).Msg("failed to subscribe to " + constant.AttemptSubjectGlob)
		return err
	}

	for {
		select {
		case msg := <-msgChan:
			func() {
				taskCtx, cancelTask := context.WithDeadline(ctx, time.Now().Add(time.Second*10))
				inprogressInformer := time.AfterFunc(time.Second*5, func() {
					if err := msg.InProgress(); err != nil {
						log.Error().Err(err).Msg("failed to set msg InProgress")
					}
				})
				defer func() {
					inprogressInformer.Stop()
					cancelTask()
					if err := msg.Ack(); err != nil {
						log.Error().Err(err).Msg("failed to ack")
					}
				}()

				task := &types.AttemptTask{}
				if err := json.Unmarshal(msg.Data, task); err != nil {
					ingestedCounter.WithLabelValues("malformed").Inc()
					ch <- err
					return
				}

				if err := w.consumeAttempt(taskCtx, task); err != nil {
					ingestedCounter.WithLabelValues("failed").Inc()
					log.Error().
						Err(err).
						Str("taskId", task.TaskID).
						Str("userId", task.UserID).
						Msg("failed to consume attempt task")
					ch <- err
					return
				}

				ingestedCounter.WithLabelValues("ok").Inc()
				if l := log.Debug(); l.Enabled() {
					l.Str("taskId", task.TaskID).Msg("attempt task processed successfully")
				}
			}()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Worker) consumeAttempt(ctx context.Context, task *types.AttemptTask) error {
	// task.CreatedAt is in microseconds
	var createdAt time.Time
	if task.CreatedAt != 0 {
		createdAt = time.UnixMicro(task.CreatedAt)
	} else {
		createdAt = time.Now()
	}

	promptJSON, err := json.Marshal(task.Prompt)
	if err != nil {
		return errors.Wrap(err, "marshal prompt")
	}
	answerJSON, err := json.Marshal(task.Answer)
	if err != nil {
		return errors.Wrap(err, "marshal answer")
	}

	err = w.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := w.AttemptRepo.CreateAttemptWithinTx(ctx, tx, &model.Attempt{
			UserID:    task.UserID,
			DrillID:   task.DrillID,
			Prompt:    promptJSON,
			Answer:    answerJSON,
			IsCorrect: task.IsCorrect,
			LatencyMs: task.LatencyMs,
			CreatedAt: createdAt,
		})
		if err != nil {
			return err
		}

		stat, err := w.UserStatRepo.GetUserStatForUpdateWithinTx(ctx, tx, task.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			stat = &model.UserStat{UserID: task.UserID}
		} else if err != nil {
			return err
		}

		stat.TotalAttempts++
		if task.IsCorrect {
			stat.CorrectAttempts++
		}
		stat.StreakDays = service.ComputeNextStreak(stat.StreakDays, stat.LastAttemptAt, createdAt)
		stat.LastAttemptAt = null.TimeFrom(createdAt)

		if task.Prompt.Kind == constant.KindInterval {
			if stat.IntervalHeat == nil {
				stat.IntervalHeat = model.HeatMap{}
			}
			stat.IntervalHeat.Bump(model.HeatKey(task.Prompt.Interval, task.Prompt.Direction), task.IsCorrect)
		}
		stat.UpdatedAt = time.Now()

		return w.UserStatRepo.UpsertWithinTx(ctx, tx, stat)
	})
	if err != nil {
		return err
	}

	w.flushStatsCache(task.UserID)
	return nil
}

// flushStatsCache drops the cached dashboard responses made stale by a new
// attempt.
func (w *Worker) flushStatsCache(userID string) {
	for _, statsRange := range []string{constant.StatsRange7D, constant.StatsRange30D, constant.StatsRangeAll} {
		if err := modelcache.UserStatsByUserID.Delete(userID + "|" + statsRange); err != nil {
			log.Warn().
				Err(err).
				Str("userId", userID).
				Str("range", statsRange).
				Msg("failed to flush stats cache")
		}
	}
}
