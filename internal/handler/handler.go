// Package handler exposes the ledger service over HTTP. Handlers translate
// requests into service calls and domain errors into status codes; business
// rules live in the ledger package.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/miro-trifonov/teya-tinyLedger/internal/ledger"
	"github.com/miro-trifonov/teya-tinyLedger/internal/models"
)

// Handler holds the ledger service and request validation state.
type Handler struct {
	svc      *ledger.Ledger
	log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a Handler backed by the given service.
func NewHandler(svc *ledger.Ledger, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		log:      log,
		validate: validator.New(),
	}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/transactions/{account_id}", h.CreateTransaction).Methods("POST")
	r.HandleFunc("/transactions/{account_id}", h.ListTransactions).Methods("GET")
	r.HandleFunc("/balance/{account_id}", h.GetBalance).Methods("GET")
	return r
}

// CreateTransaction handles POST /transactions/{account_id}.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "type must be deposit or withdrawal")
		return
	}

	_, err := h.svc.RecordTransaction(r.Context(), accountID, models.TransactionType(req.Type), req.Amount, req.Description)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransactionResponse{Message: "Transaction successfully recorded."})
}

// GetBalance handles GET /balance/{account_id}.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	balance, err := h.svc.GetBalance(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
}

// ListTransactions handles GET /transactions/{account_id}.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]

	txs, err := h.svc.GetTransactions(r.Context(), accountID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, txs)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps service errors onto HTTP status codes. Unrecognized
// errors are storage or infrastructure failures and surface as 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidType),
		errors.Is(err, ledger.ErrInvalidAccountID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
