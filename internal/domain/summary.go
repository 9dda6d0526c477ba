package domain

import "github.com/shopspring/decimal"

// CurrencyTotal is the sum of all balances held in one currency, alongside
// its value in the dashboard's base currency.
type CurrencyTotal struct {
	Currency    string          `json:"currency"`
	Total       decimal.Decimal `json:"total"`
	TotalInBase decimal.Decimal `json:"totalInBase"`
}

// Summary is the dashboard overview: per-currency totals and a grand total in
// the base currency. All conversions come from the one shared rate table, so
// the summary can never disagree with the rates transfers use.
type Summary struct {
	BaseCurrency string          `json:"baseCurrency"`
	Totals       []CurrencyTotal `json:"totals"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}
