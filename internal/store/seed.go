/**
 * @description
 * This file holds the fixed account list the dashboard is seeded with at
 * process start. Accounts are never created or deleted at runtime; these ten
 * positions are the whole universe.
 */

package store

import (
	"github.com/shopspring/decimal"
	"github.com/treasura/treasury-service/internal/domain"
)

// SeedAccounts returns the initial treasury positions. Balances are the
// opening balances; only the transfer engine mutates them afterwards.
func SeedAccounts() []domain.Account {
	return []domain.Account{
		{ID: "mpesa_kes_1", Name: "Mpesa_KES_1", Provider: "Mpesa", Currency: "KES", Balance: decimal.RequireFromString("1250000.00"), AccountType: domain.AccountTypeMobileMoney},
		{ID: "uba_ngn_1", Name: "UBA_NGN_1", Provider: "UBA", Currency: "NGN", Balance: decimal.RequireFromString("3500000.00"), AccountType: domain.AccountTypeBank},
		{ID: "chase_usd_1", Name: "Chase_USD_1", Provider: "Chase", Currency: "USD", Balance: decimal.RequireFromString("25000.00"), AccountType: domain.AccountTypeBank},
		{ID: "airtel_kes_2", Name: "Airtel_KES_2", Provider: "Airtel", Currency: "KES", Balance: decimal.RequireFromString("850000.00"), AccountType: domain.AccountTypeMobileMoney},
		{ID: "gtbank_ngn_2", Name: "GTBank_NGN_2", Provider: "GTBank", Currency: "NGN", Balance: decimal.RequireFromString("2100000.00"), AccountType: domain.AccountTypeBank},
		{ID: "wise_usd_2", Name: "Wise_USD_2", Provider: "Wise", Currency: "USD", Balance: decimal.RequireFromString("12500.00"), AccountType: domain.AccountTypeDigitalWallet},
		{ID: "tigo_kes_3", Name: "Tigo_KES_3", Provider: "Tigo", Currency: "KES", Balance: decimal.RequireFromString("600000.00"), AccountType: domain.AccountTypeMobileMoney},
		{ID: "zenith_ngn_3", Name: "Zenith_NGN_3", Provider: "Zenith", Currency: "NGN", Balance: decimal.RequireFromString("1800000.00"), AccountType: domain.AccountTypeBank},
		{ID: "paypal_usd_3", Name: "PayPal_USD_3", Provider: "PayPal", Currency: "USD", Balance: decimal.RequireFromString("8750.00"), AccountType: domain.AccountTypeDigitalWallet},
		{ID: "equity_kes_4", Name: "Equity_KES_4", Provider: "Equity", Currency: "KES", Balance: decimal.RequireFromString("2200000.00"), AccountType: domain.AccountTypeBank},
	}
}
