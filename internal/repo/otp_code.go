package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/repo/selector"
)

type OtpCode struct {
	db  *bun.DB
	sel selector.S[model.OtpCode]
}

func NewOtpCode(db *bun.DB) *OtpCode {
	return &OtpCode{
		db:  db,
		sel: selector.New[model.OtpCode](db),
	}
}

func (r *OtpCode) CreateCode(ctx context.Context, code *model.OtpCode) error {
	_, err := r.db.NewInsert().
		Model(code).
		Exec(ctx)
	return err
}

// GetActiveCode returns the newest unconsumed, unexpired code for the
// identifier, or apperr.ErrNotFound.
func (r *OtpCode) GetActiveCode(ctx context.Context, identifier string, now time.Time) (*model.OtpCode, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("identifier = ?", identifier).
			Where("consumed_at IS NULL").
			Where("expires_at > ?", now).
			Order("created_at DESC").
			Limit(1)
	})
}

// CountRecentCodes counts codes issued to the identifier since the given
// time, for request throttling.
func (r *OtpCode) CountRecentCodes(ctx context.Context, identifier string, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*model.OtpCode)(nil)).
		Where("identifier = ?", identifier).
		Where("created_at >= ?", since).
		Count(ctx)
}

// ConsumeCode marks a code as used so it can never verify twice.
func (r *OtpCode) ConsumeCode(ctx context.Context, codeID int64, now time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*model.OtpCode)(nil)).
		Set("consumed_at = ?", null.TimeFrom(now)).
		Where("code_id = ?", codeID).
		Where("consumed_at IS NULL").
		Exec(ctx)
	return err
}
