package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and balances go over the wire as JSON numbers, not decimal's
	// default quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TimestampLayout is ISO-8601 UTC with millisecond precision, the format all
// transaction timestamps are serialized with.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TransactionType discriminates the two supported transaction kinds.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction is a single immutable deposit or withdrawal recorded against an
// account. Once appended to an account's history it is never mutated or
// removed.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// MarshalJSON renders Timestamp in TimestampLayout; the default time.Time
// encoding would drop trailing zeros from the fractional seconds.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{
		alias:     alias(t),
		Timestamp: t.Timestamp.UTC().Format(TimestampLayout),
	})
}
