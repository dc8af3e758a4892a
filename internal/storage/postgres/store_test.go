package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miro-trifonov/teya-tinyLedger/internal/ledger"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
)

func newMockStore(t *testing.T) (*PostgresLedgerStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgresLedgerStore(db), mock
}

func newTx(accountID string, txType models.TransactionType, amount string) models.Transaction {
	return models.Transaction{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Type:      txType,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: time.Now().UTC(),
	}
}

func TestSaveTransaction_DepositToExistingAccount(t *testing.T) {
	store, mock := newMockStore(t)
	tx := newTx("acc1", models.TypeDeposit, "150")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE id = (.+) FOR UPDATE").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100"))
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(decimal.RequireFromString("250"), "acc1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(tx.ID, "acc1", "deposit", tx.Amount, "", tx.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.SaveTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTransaction_DepositCreatesUnknownAccount(t *testing.T) {
	store, mock := newMockStore(t)
	tx := newTx("acc1", models.TypeDeposit, "150")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE id = (.+) FOR UPDATE").
		WithArgs("acc1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("acc1", decimal.Zero, tx.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE accounts SET balance").
		WithArgs(tx.Amount, "acc1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(tx.ID, "acc1", "deposit", tx.Amount, "", tx.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.SaveTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTransaction_WithdrawalUnknownAccountRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE id = (.+) FOR UPDATE").
		WithArgs("acc1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := store.SaveTransaction(context.Background(), newTx("acc1", models.TypeWithdrawal, "50"))
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTransaction_InsufficientFundsRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE id = (.+) FOR UPDATE").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("10"))
	mock.ExpectRollback()

	err := store.SaveTransaction(context.Background(), newTx("acc1", models.TypeWithdrawal, "50"))
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTransaction_InsertFailureRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	tx := newTx("acc1", models.TypeDeposit, "150")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE id = (.+) FOR UPDATE").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100"))
	mock.ExpectExec("UPDATE accounts SET balance").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO transactions").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := store.SaveTransaction(context.Background(), tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBalance(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT balance FROM accounts WHERE id =").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("42.5"))

	balance, err := store.GetBalance(context.Background(), "acc1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("42.5")), "balance = %s", balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBalance_UnknownAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT balance FROM accounts WHERE id =").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetBalance(context.Background(), "ghost")
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactions(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT 1 FROM accounts WHERE id =").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("FROM transactions WHERE account_id = (.+) ORDER BY seq").
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "type", "amount", "description", "created_at"}).
			AddRow("tx-1", "acc1", "deposit", "100", "salary", now).
			AddRow("tx-2", "acc1", "withdrawal", "40", "", now))

	history, err := store.GetTransactions(context.Background(), "acc1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "tx-1", history[0].ID)
	assert.Equal(t, models.TypeDeposit, history[0].Type)
	assert.True(t, history[0].Amount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "salary", history[0].Description)
	assert.Equal(t, "tx-2", history[1].ID)
	assert.Equal(t, models.TypeWithdrawal, history[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactions_UnknownAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT 1 FROM accounts WHERE id =").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetTransactions(context.Background(), "ghost")
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
