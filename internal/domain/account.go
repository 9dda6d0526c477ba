/**
 * @description
 * This file defines the account model for the treasury-service. Accounts are
 * the fixed set of treasury positions the dashboard tracks; they are seeded at
 * process start and only their balances ever change.
 *
 * @notes
 * - Balances use `decimal.Decimal` (fixed-point) rather than floats so that
 *   transfer arithmetic and FX conversion are exact.
 */

package domain

import "github.com/shopspring/decimal"

// Account types. Informational only; transfer logic never branches on them.
const (
	AccountTypeBank          = "bank"
	AccountTypeMobileMoney   = "mobile_money"
	AccountTypeDigitalWallet = "digital_wallet"
)

// Account represents a single treasury position in one currency.
// The id is a stable string key (e.g., "chase_usd_1") and never changes.
type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Provider    string          `json:"provider"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	AccountType string          `json:"accountType"`
}
