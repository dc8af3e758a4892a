package interfaces

import (
	"context"

	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerStore owns all account and transaction state. Implementations must
// keep an account's balance consistent with its transaction log on every
// mutation, and must report ledger.ErrAccountNotFound for accounts that have
// never been created.
type LedgerStore interface {
	// SaveTransaction appends tx to its account's history and applies it to
	// the balance as a single atomic mutation. A deposit to an unknown
	// account creates the account; a withdrawal never does.
	SaveTransaction(ctx context.Context, tx models.Transaction) error
	// GetBalance returns the account's current balance.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	// GetTransactions returns the account's full history in insertion order.
	GetTransactions(ctx context.Context, accountID string) ([]models.Transaction, error)
}
