package ledger

import "errors"

// Domain errors. Handlers map these to HTTP status codes; nothing below this
// layer retries or logs them as failures.
var (
	// ErrAccountNotFound is returned when an operation references an account
	// that has never been created.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current
	// balance. The account is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned for zero or negative transaction amounts.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrInvalidType is returned for transaction types other than deposit and
	// withdrawal.
	ErrInvalidType = errors.New("unknown transaction type")

	// ErrInvalidAccountID is returned when the account id is empty.
	ErrInvalidAccountID = errors.New("account id must not be empty")
)
