package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named balance holder. Its ID is supplied by callers, never
// generated; the account itself is created implicitly by the first deposit
// that references it and is never deleted.
type Account struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
