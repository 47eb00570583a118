package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lotledger/lotledger/internal/api/request"
	"github.com/lotledger/lotledger/internal/api/response"
	"github.com/lotledger/lotledger/internal/service"
	"github.com/lotledger/lotledger/internal/validation"
)

// TransactionsHandler handles ledger-related HTTP requests.
type TransactionsHandler struct {
	ledgerService *service.LedgerService
}

// NewTransactionsHandler creates a new TransactionsHandler
func NewTransactionsHandler(ledgerService *service.LedgerService) *TransactionsHandler {
	return &TransactionsHandler{ledgerService: ledgerService}
}

// ImportResponse reports the outcome of a ledger import.
type ImportResponse struct {
	Account  string `json:"account"`
	Platform string `json:"platform"`
	Imported int    `json:"imported"`
}

// Import normalizes a provider export and appends it to the ledger.
//
// Endpoint: POST /api/transactions/import
func (h *TransactionsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req request.ImportTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateImportTransactions(req); err != nil {
		respondServiceError(w, "validation failed", err)
		return
	}

	imported, err := h.ledgerService.ImportTransactions(req.Platform, req.Account, req.Rows)
	if err != nil {
		respondServiceError(w, "failed to import transactions", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{
		Account:  req.Account,
		Platform: strings.ToLower(req.Platform),
		Imported: len(imported),
	})
}

// List returns ledger rows, optionally filtered by ?accounts=a,b.
//
// Endpoint: GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.ledgerService.GetTransactions(queryList(r, "accounts"))
	if err != nil {
		respondServiceError(w, "failed to retrieve transactions", err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// Accounts returns the distinct accounts present in the ledger.
//
// Endpoint: GET /api/transactions/accounts
func (h *TransactionsHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledgerService.GetAccounts()
	if err != nil {
		respondServiceError(w, "failed to retrieve accounts", err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}
