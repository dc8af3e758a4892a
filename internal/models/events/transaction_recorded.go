package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecorded is published after a transaction has been committed to
// the ledger. Consumers must treat it as informational; the ledger is the
// source of truth.
type TransactionRecorded struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
