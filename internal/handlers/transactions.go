package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fueldesk/fuel-manager/internal/db"
	"github.com/fueldesk/fuel-manager/internal/ledger"
	"github.com/fueldesk/fuel-manager/internal/middleware"
)

// TransactionsHandler handles fuel transaction requests
type TransactionsHandler struct {
	transactions db.TransactionCollection
	ledger       *ledger.Service
}

// NewTransactionsHandler creates a new transactions handler
func NewTransactionsHandler(transactions db.TransactionCollection, ledgerService *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, ledger: ledgerService}
}

// ServeHTTP routes /api/transactions
func (h *TransactionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionsHandler) list(w http.ResponseWriter, r *http.Request) {
	txns, err := h.transactions.FindTransactions(r.Context())
	if err != nil {
		http.Error(w, "Failed to load transactions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txns)
}

func (h *TransactionsHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var input ledger.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.ledger.ApplyTransaction(r.Context(), claims, input)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidKind),
			errors.Is(err, ledger.ErrInvalidAmount),
			errors.Is(err, ledger.ErrInvalidPrice):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledger.ErrUnknownFuelKind):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrPermissionDenied):
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
		default:
			http.Error(w, "Failed to record transaction", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}
