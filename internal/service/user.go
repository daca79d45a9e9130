package service

import (
	"context"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/tonedrill/backend/internal/app/appconfig"
	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/pkg/apperr"
	"github.com/tonedrill/backend/internal/repo"
)

// User resolves users from requests and manages opaque session tokens, which
// live only in Redis and expire server-side.
type User struct {
	UserRepo *repo.User
	Redis    *redis.Client

	conf *appconfig.Config
}

func NewUser(userRepo *repo.User, client *redis.Client, conf *appconfig.Config) *User {
	return &User{
		UserRepo: userRepo,
		Redis:    client,
		conf:     conf,
	}
}

// GetUserFromRequest resolves the Authorization bearer token into a user.
func (s *User) GetUserFromRequest(ctx *fiber.Ctx) (*model.User, error) {
	token := ExtractBearerToken(ctx.Get(fiber.HeaderAuthorization))
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}

	userID, err := s.Redis.Get(ctx.UserContext(), constant.SessionTokenRedisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.ErrUnauthorized
	} else if err != nil {
		return nil, err
	}

	return s.UserRepo.GetUserByID(ctx.UserContext(), userID)
}

// IssueToken mints an opaque session token bound to the user.
func (s *User) IssueToken(ctx context.Context, userID string) (string, error) {
	token := uniuri.NewLen(32)
	err := s.Redis.Set(ctx, constant.SessionTokenRedisKeyPrefix+token, userID, s.conf.SessionTokenLifetime).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// RevokeToken invalidates a session token immediately.
func (s *User) RevokeToken(ctx context.Context, token string) error {
	return s.Redis.Del(ctx, constant.SessionTokenRedisKeyPrefix+token).Err()
}

// ExtractBearerToken pulls the token out of an Authorization header value.
func ExtractBearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constant.AuthorizationScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
