// Package postgres implements LedgerStore on PostgreSQL via database/sql and
// the lib/pq driver. Expected schema:
//
//	CREATE TABLE accounts (
//	    id         TEXT PRIMARY KEY,
//	    balance    NUMERIC NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE transactions (
//	    seq         BIGSERIAL PRIMARY KEY,
//	    id          TEXT NOT NULL UNIQUE,
//	    account_id  TEXT NOT NULL REFERENCES accounts (id),
//	    type        TEXT NOT NULL,
//	    amount      NUMERIC NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//
// The seq column preserves insertion order independently of timestamp ties.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/miro-trifonov/teya-tinyLedger/internal/interfaces"
	"github.com/miro-trifonov/teya-tinyLedger/internal/ledger"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
)

// PostgresLedgerStore is the PostgreSQL-backed LedgerStore implementation,
// selected with STORAGE_BACKEND=postgres.
type PostgresLedgerStore struct {
	db *sql.DB
}

// NewPostgresLedgerStore wraps an open database handle.
func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// SaveTransaction applies tx inside a single database transaction: the
// account row is locked, created if the transaction is a deposit to an
// unknown account, its balance updated, and the transaction row inserted.
// Any failure rolls the whole mutation back.
func (p *PostgresLedgerStore) SaveTransaction(ctx context.Context, tx models.Transaction) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const selectQuery = `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`

	var balance decimal.Decimal
	err = dbTx.QueryRowContext(ctx, selectQuery, tx.AccountID).Scan(&balance)
	if err == sql.ErrNoRows {
		if tx.Type == models.TypeWithdrawal {
			return ledger.ErrAccountNotFound
		}
		const insertAccount = `INSERT INTO accounts (id, balance, created_at) VALUES ($1, $2, $3)`
		if _, err = dbTx.ExecContext(ctx, insertAccount, tx.AccountID, decimal.Zero, tx.Timestamp); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		balance = decimal.Zero
	} else if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}

	switch tx.Type {
	case models.TypeDeposit:
		balance = balance.Add(tx.Amount)
	case models.TypeWithdrawal:
		if tx.Amount.GreaterThan(balance) {
			return ledger.ErrInsufficientFunds
		}
		balance = balance.Sub(tx.Amount)
	default:
		return ledger.ErrInvalidType
	}

	const updateBalance = `UPDATE accounts SET balance = $1 WHERE id = $2`
	if _, err = dbTx.ExecContext(ctx, updateBalance, balance, tx.AccountID); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	const insertTransaction = `INSERT INTO transactions (id, account_id, type, amount, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = dbTx.ExecContext(ctx, insertTransaction,
		tx.ID, tx.AccountID, string(tx.Type), tx.Amount, tx.Description, tx.Timestamp); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return dbTx.Commit()
}

// GetBalance returns the denormalized balance from the account row.
func (p *PostgresLedgerStore) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	const query = `SELECT balance FROM accounts WHERE id = $1`

	var balance decimal.Decimal
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, ledger.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	return balance, nil
}

// GetTransactions returns the account's history in the order recorded.
func (p *PostgresLedgerStore) GetTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	const existsQuery = `SELECT 1 FROM accounts WHERE id = $1`

	var one int
	err := p.db.QueryRowContext(ctx, existsQuery, accountID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	const query = `SELECT id, account_id, type, amount, description, created_at FROM transactions
	WHERE account_id = $1 ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Description, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

// Compile-time check: PostgresLedgerStore implements LedgerStore.
var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
