package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/miro-trifonov/teya-tinyLedger/internal/interfaces"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models/events"
)

// Ledger enforces the domain rules for deposits and withdrawals on top of a
// LedgerStore. Mutations to a given account are serialized behind a
// per-account mutex so the sufficient-funds check and the write happen as one
// critical section.
type Ledger struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	log       *logrus.Logger

	muMap map[string]*sync.Mutex // one lock per account id
	mapMu sync.Mutex             // protects muMap itself
}

// NewLedger creates a Ledger on top of the given storage implementation.
// Every recorded transaction is announced through publisher best-effort.
func NewLedger(store interfaces.LedgerStore, publisher interfaces.EventPublisher, log *logrus.Logger) *Ledger {
	return &Ledger{
		store:     store,
		publisher: publisher,
		log:       log,
		muMap:     make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) getAccountLock(accountID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountID]; !exists {
		l.muMap[accountID] = &sync.Mutex{}
	}
	return l.muMap[accountID]
}

// RecordTransaction validates and records a single deposit or withdrawal.
//
// A deposit to an unknown account creates the account with balance zero
// before being applied. A withdrawal requires the account to exist
// (ErrAccountNotFound otherwise) and to hold at least the requested amount
// (ErrInsufficientFunds otherwise); a rejected withdrawal leaves balance and
// history untouched. On success the created transaction, with its generated
// id and UTC timestamp, is returned.
func (l *Ledger) RecordTransaction(ctx context.Context, accountID string, txType models.TransactionType, amount decimal.Decimal, description string) (models.Transaction, error) {
	if accountID == "" {
		return models.Transaction{}, ErrInvalidAccountID
	}
	if !txType.Valid() {
		return models.Transaction{}, ErrInvalidType
	}
	// Handlers validate amounts too; the ledger re-checks so no caller can
	// record a non-positive amount.
	if !amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}

	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	if txType == models.TypeWithdrawal {
		balance, err := l.store.GetBalance(ctx, accountID)
		if err != nil {
			return models.Transaction{}, err
		}
		if amount.GreaterThan(balance) {
			return models.Transaction{}, ErrInsufficientFunds
		}
	}

	tx := models.Transaction{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
	if err := l.store.SaveTransaction(ctx, tx); err != nil {
		return models.Transaction{}, err
	}

	l.log.WithFields(logrus.Fields{
		"transaction_id": tx.ID,
		"account_id":     tx.AccountID,
		"type":           tx.Type,
		"amount":         tx.Amount,
	}).Info("transaction recorded")

	l.publish(ctx, tx)
	return tx, nil
}

// GetBalance returns the current balance of an account, or
// ErrAccountNotFound if it has never been created.
func (l *Ledger) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return l.store.GetBalance(ctx, accountID)
}

// GetTransactions returns the full transaction history of an account in the
// order recorded, or ErrAccountNotFound if it has never been created.
func (l *Ledger) GetTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	return l.store.GetTransactions(ctx, accountID)
}

// publish announces a recorded transaction. Failures are logged and dropped;
// the transaction is already committed and is never rolled back or retried.
func (l *Ledger) publish(ctx context.Context, tx models.Transaction) {
	evt := events.TransactionRecorded{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		OccurredAt:    tx.Timestamp,
	}
	if err := l.publisher.Publish(ctx, evt); err != nil {
		l.log.WithError(err).WithField("transaction_id", tx.ID).
			Warn("failed to publish transaction event")
	}
}
