package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
)

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: "chase_usd_1", Name: "Chase_USD_1", Provider: "Chase", Currency: "USD", Balance: decimal.RequireFromString("25000.00"), AccountType: domain.AccountTypeBank},
		{ID: "mpesa_kes_1", Name: "Mpesa_KES_1", Provider: "Mpesa", Currency: "KES", Balance: decimal.RequireFromString("1250000.00"), AccountType: domain.AccountTypeMobileMoney},
	}
}

func TestGetAccount(t *testing.T) {
	repo := NewMemoryRepository(testAccounts())
	ctx := context.Background()

	account, err := repo.GetAccount(ctx, "chase_usd_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Chase_USD_1" || account.Currency != "USD" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := repo.GetAccount(ctx, "unknown"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateAccountBalance(t *testing.T) {
	repo := NewMemoryRepository(testAccounts())
	ctx := context.Background()

	updated, err := repo.UpdateAccountBalance(ctx, "chase_usd_1", decimal.RequireFromString("24000.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Balance.Equal(decimal.RequireFromString("24000.00")) {
		t.Fatalf("expected balance 24000.00, got %s", updated.Balance)
	}
	// Only the balance changes; every other field stays as seeded.
	if updated.Name != "Chase_USD_1" || updated.Provider != "Chase" || updated.Currency != "USD" {
		t.Fatalf("non-balance fields changed: %+v", updated)
	}

	if _, err := repo.UpdateAccountBalance(ctx, "unknown", decimal.Zero); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateAccountBalanceDoesNotAliasCallerState(t *testing.T) {
	repo := NewMemoryRepository(testAccounts())
	ctx := context.Background()

	account, err := repo.GetAccount(ctx, "chase_usd_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	account.Name = "mutated"

	stored, err := repo.GetAccount(ctx, "chase_usd_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Chase_USD_1" {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestCreateTransactionAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryRepository(testAccounts())
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		tx := &domain.Transaction{
			FromAccountID: "chase_usd_1",
			ToAccountID:   "mpesa_kes_1",
			AmountSent:    decimal.NewFromInt(10),
			Status:        domain.StatusCompleted,
			TransferDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.ID != want {
			t.Fatalf("expected id %d, got %d", want, tx.ID)
		}
		if tx.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be set")
		}
	}
}

func TestListTransactionsFiltersAndOrder(t *testing.T) {
	repo := NewMemoryRepository(testAccounts())
	ctx := context.Background()

	seed := []domain.Transaction{
		{FromAccountID: "chase_usd_1", ToAccountID: "mpesa_kes_1", FromCurrency: "USD", ToCurrency: "KES", TransferDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{FromAccountID: "mpesa_kes_1", ToAccountID: "chase_usd_1", FromCurrency: "KES", ToCurrency: "USD", TransferDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
		{FromAccountID: "chase_usd_1", ToAccountID: "wise_usd_2", FromCurrency: "USD", ToCurrency: "USD", TransferDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	for i := range seed {
		if err := repo.CreateTransaction(ctx, &seed[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	dateFrom := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	dateTo := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  domain.TransactionFilter
		wantIDs []int64
	}{
		{
			name:    "no filter returns everything newest-first",
			filter:  domain.TransactionFilter{},
			wantIDs: []int64{3, 2, 1},
		},
		{
			name:    "account filter matches either side",
			filter:  domain.TransactionFilter{AccountID: "mpesa_kes_1"},
			wantIDs: []int64{2, 1},
		},
		{
			name:    "currency filter matches either side",
			filter:  domain.TransactionFilter{Currency: "KES"},
			wantIDs: []int64{2, 1},
		},
		{
			name:    "date range is inclusive",
			filter:  domain.TransactionFilter{DateFrom: &dateFrom, DateTo: &dateTo},
			wantIDs: []int64{2},
		},
		{
			name:    "filters are conjunctive",
			filter:  domain.TransactionFilter{AccountID: "chase_usd_1", Currency: "KES", DateFrom: &dateFrom},
			wantIDs: []int64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d transactions, got %d", len(tt.wantIDs), len(got))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Fatalf("position %d: expected id %d, got %d", i, want, got[i].ID)
				}
			}
		})
	}
}
