package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// OtpCode is a hashed one-time sign-in code. The plaintext code only ever
// exists in the delivery mail.
type OtpCode struct {
	bun.BaseModel `bun:"otp_codes,alias:oc"`

	CodeID     int64     `bun:",pk,autoincrement" json:"id"`
	Identifier string    `json:"identifier"`
	CodeHash   string    `json:"-"`
	ExpiresAt  time.Time `json:"expiresAt"`
	ConsumedAt null.Time `bun:"consumed_at" json:"consumedAt" swaggertype:"string"`
	CreatedAt  time.Time `json:"createdAt"`
}
