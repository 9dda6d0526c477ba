/**
 * @description
 * This file provides the in-memory implementation of the `Repository`
 * interface, the default store for the demo dashboard. Accounts live in a map
 * keyed by id; transactions in a map keyed by their sequential id. State lasts
 * for the process lifetime only.
 *
 * @notes
 * - All methods copy values in and out, so callers never hold aliases into
 *   the store's internal state.
 * - Id assignment happens under the same lock as the insert, so no two
 *   concurrent appends can receive the same id.
 */

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
)

// MemoryRepository is a concrete implementation of the Repository interface
// backed by process memory.
type MemoryRepository struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[int64]domain.Transaction
	nextTxID     int64
}

// NewMemoryRepository creates a MemoryRepository seeded with the given
// accounts.
func NewMemoryRepository(accounts []domain.Account) *MemoryRepository {
	r := &MemoryRepository{
		accounts:     make(map[string]domain.Account, len(accounts)),
		transactions: make(map[int64]domain.Transaction),
		nextTxID:     1,
	}
	for _, account := range accounts {
		r.accounts[account.ID] = account
	}
	return r
}

// GetAccount retrieves a single account by id.
func (r *MemoryRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

// ListAccounts returns all accounts. Order is not significant.
func (r *MemoryRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// UpdateAccountBalance replaces the balance of the account with the given id,
// leaving every other field untouched.
func (r *MemoryRepository) UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	account.Balance = balance
	r.accounts[id] = account
	return &account, nil
}

// CreateTransaction assigns the next sequential id and the creation instant,
// then stores the record. Existing records are never overwritten.
func (r *MemoryRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = r.nextTxID
	r.nextTxID++
	tx.CreatedAt = time.Now().UTC()

	r.transactions[tx.ID] = *tx
	return nil
}

// ListTransactions returns all records matching the filter, newest-first by
// creation instant (id breaks ties, so same-instant records keep reverse
// insertion order).
func (r *MemoryRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		if filter.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}
