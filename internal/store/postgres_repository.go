/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface for deployments that want the ledger to outlive the process. The
 * layout is two tables: `accounts` keyed by the stable string id, and
 * `transactions` keyed by an auto-incrementing integer, carrying the name and
 * currency snapshots rather than live joins back to accounts.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - github.com/shopspring/decimal: Balance and amount values.
 * - internal/domain: Contains the domain models used for data transfer.
 *
 * @notes
 * - Numeric columns are selected as text and parsed into decimals so no
 *   float conversion ever touches a monetary value.
 */

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
)

// PostgresRepository is a concrete implementation of the Repository interface
// for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, name, provider, currency, balance::text, account_type`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var balance string
	if err := row.Scan(&account.ID, &account.Name, &account.Provider, &account.Currency, &balance, &account.AccountType); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parsing balance for account %s: %w", account.ID, err)
	}
	account.Balance = parsed
	return &account, nil
}

// GetAccount retrieves a single account by id.
func (r *PostgresRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by id.
func (r *PostgresRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// UpdateAccountBalance replaces the balance of the account with the given id.
func (r *PostgresRepository) UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Account, error) {
	query := `UPDATE accounts SET balance = $2 WHERE id = $1 RETURNING ` + accountColumns
	account, err := scanAccount(r.db.QueryRow(ctx, query, id, balance.String()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// CreateTransaction inserts a new transaction record. The database assigns
// the sequential id and the creation instant; both are written back onto tx.
func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			from_account_id, to_account_id, from_account_name, to_account_name,
			amount_sent, amount_received, from_currency, to_currency,
			exchange_rate, notes, status, transfer_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	var exchangeRate *string
	if tx.ExchangeRate != nil {
		s := tx.ExchangeRate.String()
		exchangeRate = &s
	}
	return r.db.QueryRow(ctx, query,
		tx.FromAccountID, tx.ToAccountID, tx.FromAccountName, tx.ToAccountName,
		tx.AmountSent.String(), tx.AmountReceived.String(), tx.FromCurrency, tx.ToCurrency,
		exchangeRate, tx.Notes, tx.Status, tx.TransferDate,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// ListTransactions returns all records matching the filter, newest-first.
func (r *PostgresRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var conditions []string
	var args []interface{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.AccountID != "" {
		p := addArg(filter.AccountID)
		conditions = append(conditions, fmt.Sprintf("(from_account_id = %s OR to_account_id = %s)", p, p))
	}
	if filter.Currency != "" {
		p := addArg(filter.Currency)
		conditions = append(conditions, fmt.Sprintf("(from_currency = %s OR to_currency = %s)", p, p))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("transfer_date >= %s", addArg(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("transfer_date <= %s", addArg(*filter.DateTo)))
	}

	query := `
		SELECT id, from_account_id, to_account_id, from_account_name, to_account_name,
		       amount_sent::text, amount_received::text, from_currency, to_currency,
		       exchange_rate::text, notes, status, transfer_date, created_at
		FROM transactions
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var amountSent, amountReceived string
		var exchangeRate *string
		if err := rows.Scan(
			&tx.ID, &tx.FromAccountID, &tx.ToAccountID, &tx.FromAccountName, &tx.ToAccountName,
			&amountSent, &amountReceived, &tx.FromCurrency, &tx.ToCurrency,
			&exchangeRate, &tx.Notes, &tx.Status, &tx.TransferDate, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		if tx.AmountSent, err = decimal.NewFromString(amountSent); err != nil {
			return nil, fmt.Errorf("parsing amount_sent for transaction %d: %w", tx.ID, err)
		}
		if tx.AmountReceived, err = decimal.NewFromString(amountReceived); err != nil {
			return nil, fmt.Errorf("parsing amount_received for transaction %d: %w", tx.ID, err)
		}
		if exchangeRate != nil {
			rate, err := decimal.NewFromString(*exchangeRate)
			if err != nil {
				return nil, fmt.Errorf("parsing exchange_rate for transaction %d: %w", tx.ID, err)
			}
			tx.ExchangeRate = &rate
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// SeedAccounts inserts the given accounts when the accounts table is empty.
// An already-seeded database is left untouched.
func (r *PostgresRepository) SeedAccounts(ctx context.Context, accounts []domain.Account) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("checking existing accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO accounts (id, name, provider, currency, balance, account_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, account := range accounts {
		if _, err := r.db.Exec(ctx, query,
			account.ID, account.Name, account.Provider, account.Currency,
			account.Balance.String(), account.AccountType,
		); err != nil {
			return fmt.Errorf("seeding account %s: %w", account.ID, err)
		}
	}
	return nil
}
