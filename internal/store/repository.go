/**
 * @description
 * This file defines the `Repository` interface, the contract for all data
 * access the treasury-service needs. The transfer engine depends only on this
 * interface, so the in-memory store used by the demo and the PostgreSQL store
 * are interchangeable without touching business logic.
 *
 * @dependencies
 * - context, errors: Standard Go libraries.
 * - github.com/shopspring/decimal: Balance amounts.
 * - internal/domain: The service's domain models.
 */

package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Repository defines the set of methods for interacting with account and
// transaction storage.
type Repository interface {
	// Account methods. GetAccount and ListAccounts are pure reads;
	// UpdateAccountBalance replaces the balance field only and returns the
	// updated account, or ErrAccountNotFound for an unknown id.
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error)

	// Transaction methods. CreateTransaction assigns the next sequential id
	// and the creation instant; ids are never reused and records are never
	// overwritten. ListTransactions applies the filter conjunctively and
	// returns records newest-first by creation instant.
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}
