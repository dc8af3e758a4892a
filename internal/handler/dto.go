package handler

import "github.com/shopspring/decimal"

// TransactionRequest is the body of POST /transactions/{account_id}.
type TransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=deposit withdrawal"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TransactionResponse confirms a recorded transaction.
type TransactionResponse struct {
	Message string `json:"message"`
}

// BalanceResponse carries an account's current balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
