package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/repo/selector"
)

type Attempt struct {
	db  *bun.DB
	sel selector.S[model.Attempt]
}

func NewAttempt(db *bun.DB) *Attempt {
	return &Attempt{
		db:  db,
		sel: selector.New[model.Attempt](db),
	}
}

// CreateAttemptWithinTx inserts an attempt inside the caller's transaction so
// the raw row and the user aggregate commit or roll back together.
func (r *Attempt) CreateAttemptWithinTx(ctx context.Context, tx bun.Tx, attempt *model.Attempt) error {
	_, err := tx.NewInsert().
		Model(attempt).
		Exec(ctx)
	return err
}

// GetAttemptsSince returns a user's attempts created at or after since,
// oldest first. Day bucketing happens in Go: grouping in SQL would truncate
// on the database session's calendar, not the server's.
func (r *Attempt) GetAttemptsSince(ctx context.Context, userID string, since time.Time) ([]*model.Attempt, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("user_id = ?", userID).
			Where("created_at >= ?", since).
			Order("created_at ASC")
	})
}
