package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/treasura/treasury-service/internal/app"
	"github.com/treasura/treasury-service/internal/domain"
	"github.com/treasura/treasury-service/internal/fx"
	"github.com/treasura/treasury-service/internal/store"
	"github.com/treasura/treasury-service/pkg/rabbitmq"
)

func newTestRouter() http.Handler {
	repo := store.NewMemoryRepository(store.SeedAccounts())
	service := app.NewService(repo, fx.DefaultRates(), &rabbitmq.EventProducerFallback{}, "treasury.events", "USD")
	return TreasuryRoutes(NewTreasuryHandlers(service))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListAccountsEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/accounts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var accounts []domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(accounts) != 10 {
		t.Fatalf("expected 10 seeded accounts, got %d", len(accounts))
	}
}

func TestTransferEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/transfer", domain.TransferRequest{
		FromAccountID: "chase_usd_1",
		ToAccountID:   "mpesa_kes_1",
		Amount:        "1000.00",
		TransferDate:  "2024-06-15",
		Notes:         "monthly sweep",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Transaction domain.Transaction `json:"transaction"`
		Message     string             `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Transaction.ID != 1 || resp.Transaction.Status != domain.StatusCompleted {
		t.Fatalf("unexpected transaction: %+v", resp.Transaction)
	}
	if resp.Transaction.ExchangeRate == nil {
		t.Fatal("expected exchange rate on cross-currency transfer")
	}
	if resp.Message == "" {
		t.Fatal("expected confirmation message")
	}
}

func TestTransferEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		req        domain.TransferRequest
		wantStatus int
	}{
		{
			name:       "self transfer is a bad request",
			req:        domain.TransferRequest{FromAccountID: "chase_usd_1", ToAccountID: "chase_usd_1", Amount: "10", TransferDate: "2024-06-15"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown account is not found",
			req:        domain.TransferRequest{FromAccountID: "nope", ToAccountID: "chase_usd_1", Amount: "10", TransferDate: "2024-06-15"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "insufficient funds is payment required",
			req:        domain.TransferRequest{FromAccountID: "chase_usd_1", ToAccountID: "wise_usd_2", Amount: "9999999", TransferDate: "2024-06-15"},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "invalid amount is a bad request",
			req:        domain.TransferRequest{FromAccountID: "chase_usd_1", ToAccountID: "wise_usd_2", Amount: "-1", TransferDate: "2024-06-15"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()
			rec := doJSON(t, router, http.MethodPost, "/api/transfer", tt.req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body)
			}
		})
	}
}

func TestListTransactionsEndpointFilters(t *testing.T) {
	router := newTestRouter()

	transfers := []domain.TransferRequest{
		{FromAccountID: "chase_usd_1", ToAccountID: "mpesa_kes_1", Amount: "100", TransferDate: "2024-06-01"},
		{FromAccountID: "uba_ngn_1", ToAccountID: "zenith_ngn_3", Amount: "5000", TransferDate: "2024-06-10"},
	}
	for _, req := range transfers {
		if rec := doJSON(t, router, http.MethodPost, "/api/transfer", req); rec.Code != http.StatusCreated {
			t.Fatalf("seeding transfer failed: %d %s", rec.Code, rec.Body)
		}
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all", query: "", want: 2},
		{name: "by account", query: "?accountId=mpesa_kes_1", want: 1},
		{name: "by currency either side", query: "?currency=KES", want: 1},
		{name: "by date range inclusive", query: "?dateFrom=2024-06-10&dateTo=2024-06-10", want: 1},
		{name: "no match", query: "?accountId=equity_kes_4", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, "/api/transactions"+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
			}
			var transactions []domain.Transaction
			if err := json.Unmarshal(rec.Body.Bytes(), &transactions); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(transactions) != tt.want {
				t.Fatalf("expected %d transactions, got %d", tt.want, len(transactions))
			}
		})
	}

	t.Run("malformed date is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/transactions?dateFrom=June", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSummaryEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var summary domain.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if summary.BaseCurrency != "USD" {
		t.Fatalf("expected base currency USD, got %s", summary.BaseCurrency)
	}
	if len(summary.Totals) != 3 {
		t.Fatalf("expected totals for KES, NGN and USD, got %d entries", len(summary.Totals))
	}
	if summary.GrandTotal.IsZero() {
		t.Fatal("expected non-zero grand total")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
