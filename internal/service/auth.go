package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tonedrill/backend/internal/app/appconfig"
	"github.com/tonedrill/backend/internal/model"
	"github.com/tonedrill/backend/internal/model/types"
	"github.com/tonedrill/backend/internal/pkg/apperr"
	"github.com/tonedrill/backend/internal/repo"
)

const (
	otpThrottleWindow   = time.Minute * 10
	otpThrottleMaxCodes = 3
	otpBcryptCost       = 10
)

// errInvalidOtp deliberately does not distinguish expired, consumed, wrong
// or never-issued codes.
var errInvalidOtp = apperr.ErrUnauthorized.Msg("invalid or expired sign-in code")

// Auth implements passwordless sign-in: mail a short-lived one-time code,
// exchange it for a session token. Accounts are created on first successful
// verification.
type Auth struct {
	OtpCodeRepo *repo.OtpCode
	UserRepo    *repo.User
	UserService *User
	Mailer      *Mailer

	conf *appconfig.Config
}

func NewAuth(otpCodeRepo *repo.OtpCode, userRepo *repo.User, userService *User, mailer *Mailer, conf *appconfig.Config) *Auth {
	return &Auth{
		OtpCodeRepo: otpCodeRepo,
		UserRepo:    userRepo,
		UserService: userService,
		Mailer:      mailer,
		conf:        conf,
	}
}

// RequestCode issues and mails a sign-in code. It reveals nothing to the
// caller: throttled or failed requests still look like success, so the
// endpoint cannot be used to probe for registered addresses.
func (s *Auth) RequestCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	now := time.Now()

	count, err := s.OtpCodeRepo.CountRecentCodes(ctx, email, now.Add(-otpThrottleWindow))
	if err != nil {
		return err
	}
	if count >= otpThrottleMaxCodes {
		log.Info().
			Str("evt.name", "auth.otp.throttled").
			Str("identifier", email).
			Msg("sign-in code request throttled")
		return nil
	}

	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), otpBcryptCost)
	if err != nil {
		return err
	}

	err = s.OtpCodeRepo.CreateCode(ctx, &model.OtpCode{
		Identifier: email,
		CodeHash:   string(hash),
		ExpiresAt:  now.Add(s.conf.OTPCodeLifetime),
		CreatedAt:  now,
	})
	if err != nil {
		return err
	}

	if err := s.Mailer.SendOtpCode(ctx, email, code); err != nil {
		// swallowed: the client response stays indistinguishable
		log.Error().
			Str("evt.name", "auth.otp.delivery.failed").
			Str("identifier", email).
			Err(err).
			Msg("failed to deliver sign-in code")
	}

	return nil
}

// VerifyCode exchanges a mailed code for a session token, creating the user
// on first sign-in.
func (s *Auth) VerifyCode(ctx context.Context, email, code string) (*types.OtpVerifyResponse, error) {
	email = normalizeEmail(email)
	now := time.Now()

	active, err := s.OtpCodeRepo.GetActiveCode(ctx, email, now)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, errInvalidOtp
	} else if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(active.CodeHash), []byte(code)) != nil {
		return nil, errInvalidOtp
	}

	if err := s.OtpCodeRepo.ConsumeCode(ctx, active.CodeID, now); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		user = &model.User{
			UserID:    xid.New().String(),
			Email:     email,
			CreatedAt: now,
		}
		if err := s.UserRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		log.Info().
			Str("evt.name", "auth.user.created").
			Str("userId", user.UserID).
			Msg("created user on first sign-in")
	} else if err != nil {
		return nil, err
	}

	token, err := s.UserService.IssueToken(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	return &types.OtpVerifyResponse{
		Token:  token,
		UserID: user.UserID,
	}, nil
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
