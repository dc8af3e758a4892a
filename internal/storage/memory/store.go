package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/miro-trifonov/teya-tinyLedger/internal/interfaces"
	"github.com/miro-trifonov/teya-tinyLedger/internal/ledger"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
)

// MemoryLedgerStore is the in-memory LedgerStore implementation and the
// default backend. State lives for the process lifetime only.
//
// The balance is kept denormalized next to the transaction log; both are
// updated inside the same critical section so the balance always equals the
// sum of deposits minus withdrawals in the log.
type MemoryLedgerStore struct {
	mu           sync.Mutex
	accounts     map[string]*models.Account
	transactions map[string][]models.Transaction
}

// NewMemoryLedgerStore creates an empty in-memory store.
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		accounts:     make(map[string]*models.Account),
		transactions: make(map[string][]models.Transaction),
	}
}

// SaveTransaction applies tx to its account and appends it to the account's
// history. A deposit to an unknown account creates the account first; a
// withdrawal against an unknown account fails with ErrAccountNotFound, a
// withdrawal that would drive the balance negative fails with
// ErrInsufficientFunds, and an unknown transaction type fails with
// ErrInvalidType. Every failure leaves the store unchanged.
func (m *MemoryLedgerStore) SaveTransaction(ctx context.Context, tx models.Transaction) error {
	// Validated before the account-creation branch; a rejected transaction
	// must not leave a fresh account behind.
	if !tx.Type.Valid() {
		return ledger.ErrInvalidType
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, exists := m.accounts[tx.AccountID]
	if !exists {
		if tx.Type == models.TypeWithdrawal {
			return ledger.ErrAccountNotFound
		}
		acct = &models.Account{
			ID:        tx.AccountID,
			Balance:   decimal.Zero,
			CreatedAt: tx.Timestamp,
		}
		m.accounts[tx.AccountID] = acct
	}

	switch tx.Type {
	case models.TypeDeposit:
		acct.Balance = acct.Balance.Add(tx.Amount)
	case models.TypeWithdrawal:
		if tx.Amount.GreaterThan(acct.Balance) {
			return ledger.ErrInsufficientFunds
		}
		acct.Balance = acct.Balance.Sub(tx.Amount)
	}

	m.transactions[tx.AccountID] = append(m.transactions[tx.AccountID], tx)
	return nil
}

// GetBalance returns the account's current balance.
func (m *MemoryLedgerStore) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, exists := m.accounts[accountID]
	if !exists {
		return decimal.Zero, ledger.ErrAccountNotFound
	}
	return acct.Balance, nil
}

// GetTransactions returns a copy of the account's history in insertion order,
// so callers cannot mutate internal state.
func (m *MemoryLedgerStore) GetTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[accountID]; !exists {
		return nil, ledger.ErrAccountNotFound
	}
	txs := m.transactions[accountID]
	copied := make([]models.Transaction, len(txs))
	copy(copied, txs)
	return copied, nil
}

// Compile-time check: MemoryLedgerStore implements LedgerStore.
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
