package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/repo/selector"
)

type UserStat struct {
	db  *bun.DB
	sel selector.S[model.UserStat]
}

func NewUserStat(db *bun.DB) *UserStat {
	return &UserStat{
		db:  db,
		sel: selector.New[model.UserStat](db),
	}
}

func (r *UserStat) GetUserStatByUserID(ctx context.Context, userID string) (*model.UserStat, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("user_id = ?", userID)
	})
}

// GetUserStatForUpdateWithinTx reads a user's aggregate row inside the
// caller's transaction with a row lock, so concurrent ingests of the same
// user's attempts serialize instead of losing counter increments.
func (r *UserStat) GetUserStatForUpdateWithinTx(ctx context.Context, tx bun.Tx, userID string) (*model.UserStat, error) {
	stat := &model.UserStat{}
	err := tx.NewSelect().
		Model(stat).
		Where("user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return stat, nil
}

// UpsertWithinTx writes the whole aggregate row, inserting it for a user's
// first ever attempt.
func (r *UserStat) UpsertWithinTx(ctx context.Context, tx bun.Tx, stat *model.UserStat) error {
	_, err := tx.NewInsert().
		Model(stat).
		On("CONFLICT (user_id) DO UPDATE").
		Set("total_attempts = EXCLUDED.total_attempts").
		Set("correct_attempts = EXCLUDED.correct_attempts").
		Set("last_attempt_at = EXCLUDED.last_attempt_at").
		Set("streak_days = EXCLUDED.streak_days").
		Set("interval_heat = EXCLUDED.interval_heat").
		Set("chord_heat = EXCLUDED.chord_heat").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
