package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/tonedrill/backend/internal/app/appconfig"
)

const mailerEndpoint = "https://api.resend.com/emails"

// Mailer delivers one-time sign-in codes over a transactional mail API.
// Without an API key it degrades to logging the code, which is only
// acceptable for local development.
type Mailer struct {
	apiKey string
	from   string
	client *fasthttp.Client
}

func NewMailer(conf *appconfig.Config) *Mailer {
	return &Mailer{
		apiKey: conf.MailerAPIKey,
		from:   conf.MailerFrom,
		client: &fasthttp.Client{
			ReadTimeout:  time.Second * 10,
			WriteTimeout: time.Second * 10,
		},
	}
}

type mailerPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (s *Mailer) SendOtpCode(ctx context.Context, to, code string) error {
	if s.apiKey == "" {
		log.Warn().
			Str("evt.name", "mailer.console_fallback").
			Str("to", to).
			Str("code", code).
			Msg("mailer api key is not configured; logging sign-in code instead of sending mail")
		return nil
	}

	payload, err := json.Marshal(mailerPayload{
		From:    s.from,
		To:      []string{to},
		Subject: "Your sign-in code",
		Text:    fmt.Sprintf("Your sign-in code is %s. It expires in 10 minutes. If you did not request it, ignore this mail.", code),
	})
	if err != nil {
		return err
	}

	return retry.Do(func() error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(mailerEndpoint)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+s.apiKey)
		req.SetBody(payload)

		if err := s.client.DoTimeout(req, resp, time.Second*15); err != nil {
			return err
		}
		if resp.StatusCode() >= 400 {
			return errors.Errorf("mailer: unexpected status %d", resp.StatusCode())
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "mailer.retry").
				Uint("attempt", n).
				Err(err).
				Msg("failed to deliver sign-in code. retrying...")
		}),
	)
}
