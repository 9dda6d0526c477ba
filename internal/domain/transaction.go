/**
 * @description
 * This file defines the transaction model and the DTOs used by the transfer
 * engine and the transaction log. A Transaction is an immutable record of one
 * completed transfer; nothing mutates a record after it has been appended.
 *
 * @notes
 * - Account names and currencies are snapshotted onto the record at transfer
 *   time so the log survives later account renames (no live join).
 * - ExchangeRate is nil for same-currency transfers, not zero. The distinction
 *   matters: "no conversion happened" is not the same as "rate of 0".
 */

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses. The transfer engine only ever produces
// StatusCompleted; the other two are reserved for future asynchronous
// settlement flows.
const (
	StatusCompleted  = "completed"
	StatusProcessing = "processing"
	StatusFailed     = "failed"
)

// Transaction is the immutable ledger record for one transfer.
type Transaction struct {
	ID              int64            `json:"id"`
	FromAccountID   string           `json:"fromAccountId"`
	ToAccountID     string           `json:"toAccountId"`
	FromAccountName string           `json:"fromAccountName"`
	ToAccountName   string           `json:"toAccountName"`
	AmountSent      decimal.Decimal  `json:"amountSent"`
	AmountReceived  decimal.Decimal  `json:"amountReceived"`
	FromCurrency    string           `json:"fromCurrency"`
	ToCurrency      string           `json:"toCurrency"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Status          string           `json:"status"`
	TransferDate    time.Time        `json:"transferDate"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// TransferRequest is the DTO for incoming transfer API requests. Amount and
// TransferDate arrive as strings and are validated by the service.
type TransferRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        string `json:"amount"`
	TransferDate  string `json:"transferDate"`
	Notes         string `json:"notes,omitempty"`
}

// TransactionFilter narrows a transaction log query. Every set field is a
// conjunctive predicate; zero values mean "no constraint".
type TransactionFilter struct {
	AccountID string
	Currency  string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Matches reports whether tx satisfies every predicate set on the filter.
// AccountID and Currency match against either side of the transfer; the date
// bounds are inclusive on the transfer date.
func (f TransactionFilter) Matches(tx Transaction) bool {
	if f.AccountID != "" && tx.FromAccountID != f.AccountID && tx.ToAccountID != f.AccountID {
		return false
	}
	if f.Currency != "" && tx.FromCurrency != f.Currency && tx.ToCurrency != f.Currency {
		return false
	}
	if f.DateFrom != nil && tx.TransferDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && tx.TransferDate.After(*f.DateTo) {
		return false
	}
	return true
}
