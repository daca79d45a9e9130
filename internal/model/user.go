package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type User struct {
	bun.BaseModel `bun:"users,alias:u"`

	UserID      string      `bun:",pk" json:"id"`
	Email       string      `json:"email"`
	DisplayName null.String `bun:"display_name" json:"displayName" swaggertype:"string"`
	CreatedAt   time.Time   `json:"createdAt"`
}
