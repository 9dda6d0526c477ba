/**
 * @description
 * This file contains the core business logic for the treasury-service. The
 * `Service` struct owns the transfer engine: it validates a transfer request,
 * converts the amount through the FX rate table, moves both balances through
 * the repository, appends the immutable transaction record, and publishes a
 * transfer-completed event for downstream consumers.
 *
 * Key features:
 * - Transfers are serialized by a single execution lock, so no two transfers
 *   can interleave their read-check-write sequence and overdraw an account.
 * - All validation happens before any mutation; a rejected request leaves
 *   both the ledger and the log untouched.
 * - Event publication is best-effort and never fails a committed transfer.
 *
 * @dependencies
 * - github.com/shopspring/decimal: Exact monetary arithmetic.
 * - github.com/google/uuid: Event identifiers.
 * - internal/domain, internal/fx, internal/store: Domain models, rate table, data access.
 * - pkg/rabbitmq: Event publication.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
	"github.com/treasura/treasury-service/internal/fx"
	"github.com/treasura/treasury-service/internal/store"
	"github.com/treasura/treasury-service/pkg/rabbitmq"
)

var (
	ErrSelfTransferNotAllowed = errors.New("cannot transfer to the same account")
	ErrInvalidTransferAmount  = errors.New("transfer amount must be a positive decimal")
	ErrInvalidTransferDate    = errors.New("transfer date is not a valid date")
	ErrInsufficientFunds      = errors.New("insufficient funds")
)

const transferDateFormat = "2006-01-02"

// Service provides the core business logic for the treasury dashboard.
type Service struct {
	repo          store.Repository
	rates         *fx.RateTable
	eventProducer rabbitmq.Publisher
	eventExchange string
	baseCurrency  string

	// transferMu serializes the whole read-check-write sequence of a
	// transfer. The account set is small and bounded, so one global lock is
	// sufficient; per-account locks would buy nothing here.
	transferMu sync.Mutex
}

// NewService creates a new treasury service instance. The producer may be nil
// when no broker is configured; events are then skipped.
func NewService(repo store.Repository, rates *fx.RateTable, producer rabbitmq.Publisher, eventExchange, baseCurrency string) *Service {
	return &Service{
		repo:          repo,
		rates:         rates,
		eventProducer: producer,
		eventExchange: eventExchange,
		baseCurrency:  baseCurrency,
	}
}

// ListAccounts returns every account in the ledger. Pure read.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// ListTransactions returns the transaction log filtered by the given
// predicates, newest-first. Pure read.
func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Transfer executes a funds movement between two accounts and returns the
// created transaction record.
//
// Validation order: self-transfer, amount, date, account lookup, balance
// check, FX rate lookup. Every rejection happens before any balance changes.
func (s *Service) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.Transaction, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, ErrSelfTransferNotAllowed
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidTransferAmount
	}

	transferDate, err := parseTransferDate(req.TransferDate)
	if err != nil {
		return nil, err
	}

	s.transferMu.Lock()
	defer s.transferMu.Unlock()

	fromAccount, err := s.repo.GetAccount(ctx, req.FromAccountID)
	if err != nil {
		return nil, fmt.Errorf("looking up source account %s: %w", req.FromAccountID, err)
	}
	toAccount, err := s.repo.GetAccount(ctx, req.ToAccountID)
	if err != nil {
		return nil, fmt.Errorf("looking up destination account %s: %w", req.ToAccountID, err)
	}

	// Draining the account to exactly zero is legal; only amounts strictly
	// above the balance are rejected.
	if amount.GreaterThan(fromAccount.Balance) {
		return nil, ErrInsufficientFunds
	}

	receivedAmount, rate, err := s.rates.Convert(amount, fromAccount.Currency, toAccount.Currency)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateAccountBalance(ctx, fromAccount.ID, fromAccount.Balance.Sub(amount)); err != nil {
		return nil, fmt.Errorf("debiting account %s: %w", fromAccount.ID, err)
	}
	if _, err := s.repo.UpdateAccountBalance(ctx, toAccount.ID, toAccount.Balance.Add(receivedAmount)); err != nil {
		// Restore the source balance so readers never observe a half-applied
		// transfer.
		if _, restoreErr := s.repo.UpdateAccountBalance(ctx, fromAccount.ID, fromAccount.Balance); restoreErr != nil {
			log.Printf("level=error component=app msg=\"failed to restore source balance after credit failure\" account_id=%s err=%v", fromAccount.ID, restoreErr)
		}
		return nil, fmt.Errorf("crediting account %s: %w", toAccount.ID, err)
	}

	txRecord := &domain.Transaction{
		FromAccountID:   fromAccount.ID,
		ToAccountID:     toAccount.ID,
		FromAccountName: fromAccount.Name,
		ToAccountName:   toAccount.Name,
		AmountSent:      amount,
		AmountReceived:  receivedAmount,
		FromCurrency:    fromAccount.Currency,
		ToCurrency:      toAccount.Currency,
		ExchangeRate:    rate,
		Status:          domain.StatusCompleted,
		TransferDate:    transferDate,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		txRecord.Notes = &notes
	}

	if err := s.repo.CreateTransaction(ctx, txRecord); err != nil {
		// Undo both balance updates; the log append is part of the transfer.
		if _, restoreErr := s.repo.UpdateAccountBalance(ctx, fromAccount.ID, fromAccount.Balance); restoreErr != nil {
			log.Printf("level=error component=app msg=\"failed to restore source balance after log append failure\" account_id=%s err=%v", fromAccount.ID, restoreErr)
		}
		if _, restoreErr := s.repo.UpdateAccountBalance(ctx, toAccount.ID, toAccount.Balance); restoreErr != nil {
			log.Printf("level=error component=app msg=\"failed to restore destination balance after log append failure\" account_id=%s err=%v", toAccount.ID, restoreErr)
		}
		return nil, fmt.Errorf("appending transaction record: %w", err)
	}

	log.Printf("level=info component=app msg=\"transfer completed\" transaction_id=%d from=%s to=%s amount_sent=%s amount_received=%s",
		txRecord.ID, fromAccount.ID, toAccount.ID, amount, receivedAmount)

	s.publishTransferCompleted(ctx, txRecord)

	return txRecord, nil
}

// publishTransferCompleted emits the transfer-completed event. Failures are
// logged and swallowed: the transfer is already committed.
func (s *Service) publishTransferCompleted(ctx context.Context, tx *domain.Transaction) {
	if s.eventProducer == nil {
		return
	}

	event := rabbitmq.TransferCompletedEvent{
		EventID:        uuid.New(),
		TransactionID:  tx.ID,
		FromAccountID:  tx.FromAccountID,
		ToAccountID:    tx.ToAccountID,
		AmountSent:     tx.AmountSent.String(),
		AmountReceived: tx.AmountReceived.String(),
		FromCurrency:   tx.FromCurrency,
		ToCurrency:     tx.ToCurrency,
		Status:         tx.Status,
		OccurredAt:     tx.CreatedAt,
	}
	if err := s.eventProducer.Publish(ctx, s.eventExchange, "transfer.completed", event); err != nil {
		log.Printf("level=warn component=app msg=\"transfer event publish failed\" transaction_id=%d err=%v", tx.ID, err)
	}
}

// Summary computes the dashboard totals: one total per currency, each also
// expressed in the base currency through the shared rate table, plus a grand
// total. A currency with no rate to the base is reported with a zero base
// value rather than failing the whole summary.
func (s *Service) Summary(ctx context.Context) (*domain.Summary, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	var currencies []string
	for _, account := range accounts {
		if _, ok := totals[account.Currency]; !ok {
			currencies = append(currencies, account.Currency)
		}
		totals[account.Currency] = totals[account.Currency].Add(account.Balance)
	}

	summary := &domain.Summary{BaseCurrency: s.baseCurrency}
	for _, currency := range currencies {
		total := totals[currency]
		inBase, _, err := s.rates.Convert(total, currency, s.baseCurrency)
		if err != nil {
			log.Printf("level=warn component=app msg=\"no rate to base currency; excluding from grand total\" currency=%s base=%s", currency, s.baseCurrency)
			inBase = decimal.Zero
		}
		summary.Totals = append(summary.Totals, domain.CurrencyTotal{
			Currency:    currency,
			Total:       total,
			TotalInBase: inBase,
		})
		summary.GrandTotal = summary.GrandTotal.Add(inBase)
	}
	return summary, nil
}

func parseTransferDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrInvalidTransferDate
	}
	if date, err := time.Parse(transferDateFormat, trimmed); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return date, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTransferDate, value)
}
