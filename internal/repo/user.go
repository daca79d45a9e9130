package repo

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/model/cache"
	"github.com/tonedrill/backend/internal/repo/selector"
)

type User struct {
	db  *bun.DB
	sel selector.S[model.User]
}

func NewUser(db *bun.DB) *User {
	return &User{
		db:  db,
		sel: selector.New[model.User](db),
	}
}

func (r *User) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := cache.UserByID.Get(userID, &user)
	if err == nil {
		return &user, nil
	}

	got, err := r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("user_id = ?", userID)
	})
	if err != nil {
		return nil, err
	}

	go cache.UserByID.Set(userID, *got, time.Hour*24)
	return got, nil
}

func (r *User) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email))
	})
}

func (r *User) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	return err
}

func (r *User) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	_, err := r.db.NewUpdate().
		Model((*model.User)(nil)).
		Set("display_name = ?", displayName).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}

	return cache.UserByID.Delete(userID)
}
