/**
 * @description
 * This file contains the HTTP handlers for the treasury-service's API
 * endpoints. Handlers are responsible for parsing incoming requests, calling
 * the appropriate methods on the application service, and writing the HTTP
 * response. They act as the bridge between the web layer and the business
 * logic layer.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain, internal/fx, internal/store: For service
 *   logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/treasura/treasury-service/internal/app"
	"github.com/treasura/treasury-service/internal/domain"
	"github.com/treasura/treasury-service/internal/fx"
	"github.com/treasura/treasury-service/internal/store"
)

// TreasuryHandlers holds the application service that handlers will use.
type TreasuryHandlers struct {
	service *app.Service
}

// NewTreasuryHandlers creates a new instance of TreasuryHandlers.
func NewTreasuryHandlers(service *app.Service) *TreasuryHandlers {
	return &TreasuryHandlers{service: service}
}

// transferResponse is sent back after a successful transfer. It carries the
// created transaction and a human-readable confirmation for the dashboard.
type transferResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Message     string              `json:"message"`
}

// ListAccountsHandler handles requests for the full account list.
func (h *TreasuryHandlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		log.Printf("level=error component=api endpoint=list_accounts msg=\"failed to list accounts\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch accounts")
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// ListTransactionsHandler handles requests for the filtered transaction log.
// Supported query parameters: accountId, currency, dateFrom, dateTo. Date
// bounds are inclusive and apply to the transfer date.
func (h *TreasuryHandlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.TransactionFilter{
		AccountID: strings.TrimSpace(r.URL.Query().Get("accountId")),
		Currency:  strings.TrimSpace(r.URL.Query().Get("currency")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("dateFrom")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid dateFrom: %q", raw))
			return
		}
		filter.DateFrom = &date
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("dateTo")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid dateTo: %q", raw))
			return
		}
		// Push the bound to the end of the day so a transfer dated anywhere
		// on dateTo is included.
		end := date.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	transactions, err := h.service.ListTransactions(r.Context(), filter)
	if err != nil {
		log.Printf("level=error component=api endpoint=list_transactions msg=\"failed to list transactions\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// TransferHandler handles requests to move funds between two accounts.
func (h *TreasuryHandlers) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("level=warn component=api endpoint=transfer outcome=reject reason=invalid_json err=%v", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	tx, err := h.service.Transfer(r.Context(), req)
	if err != nil {
		log.Printf("level=warn component=api endpoint=transfer outcome=failed from=%s to=%s err=%v", req.FromAccountID, req.ToAccountID, err)
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			h.writeError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, app.ErrInsufficientFunds):
			h.writeError(w, http.StatusPaymentRequired, "Insufficient funds")
		case errors.Is(err, fx.ErrRateNotFound):
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, app.ErrSelfTransferNotAllowed),
			errors.Is(err, app.ErrInvalidTransferAmount),
			errors.Is(err, app.ErrInvalidTransferDate):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.writeError(w, http.StatusInternalServerError, "Transfer failed")
		}
		return
	}

	message := fmt.Sprintf("Successfully transferred %s %s to %s", tx.FromCurrency, tx.AmountSent, tx.ToAccountName)
	h.writeJSON(w, http.StatusCreated, transferResponse{Transaction: tx, Message: message})
}

// SummaryHandler handles requests for the dashboard currency totals.
func (h *TreasuryHandlers) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		log.Printf("level=error component=api endpoint=summary msg=\"failed to compute summary\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *TreasuryHandlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("level=error component=api msg=\"failed to encode response\" err=%v", err)
	}
}

func (h *TreasuryHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}
