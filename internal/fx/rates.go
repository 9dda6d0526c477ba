/**
 * @description
 * This package owns the static foreign-exchange rate table and the conversion
 * logic built on it. The table is the single source of truth for every
 * conversion in the service: the transfer engine and the dashboard summary
 * both go through it.
 *
 * @notes
 * - Rates are directional. The table is not symmetric by construction
 *   (rate(A,B) * rate(B,A) need not equal 1) and inverses are never derived
 *   from the configured values.
 * - A same-currency conversion is "no conversion needed" and returns no rate;
 *   a missing pair is a hard failure the caller must abort on. Callers must
 *   not conflate the two.
 */

package fx

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrRateNotFound is returned when the table holds no entry for a currency
// pair whose currencies differ.
var ErrRateNotFound = errors.New("exchange rate not found")

// Pair is an ordered currency pair used as a rate table key.
type Pair struct {
	From string
	To   string
}

// RateTable maps ordered currency pairs to multiplicative conversion rates.
type RateTable struct {
	rates map[Pair]decimal.Decimal
}

// NewRateTable builds a RateTable from an explicit pair->rate map.
func NewRateTable(rates map[Pair]decimal.Decimal) *RateTable {
	table := make(map[Pair]decimal.Decimal, len(rates))
	for pair, rate := range rates {
		table[pair] = rate
	}
	return &RateTable{rates: table}
}

// DefaultRates returns the demo rate table. Values are configured literals;
// the KES/NGN legs are intentionally not exact inverses of each other.
func DefaultRates() *RateTable {
	return NewRateTable(map[Pair]decimal.Decimal{
		{From: "KES", To: "USD"}: decimal.RequireFromString("0.0067"),
		{From: "USD", To: "KES"}: decimal.RequireFromString("150"),
		{From: "NGN", To: "USD"}: decimal.RequireFromString("0.00125"),
		{From: "USD", To: "NGN"}: decimal.RequireFromString("800"),
		{From: "KES", To: "NGN"}: decimal.RequireFromString("5.33"),
		{From: "NGN", To: "KES"}: decimal.RequireFromString("0.19"),
	})
}

// Rate returns the configured rate for the pair. A same-currency pair yields
// (nil, true): conversion is unnecessary, and no rate applies. An unknown
// cross-currency pair yields (nil, false).
func (t *RateTable) Rate(from, to string) (*decimal.Decimal, bool) {
	if from == to {
		return nil, true
	}
	rate, ok := t.rates[Pair{From: from, To: to}]
	if !ok {
		return nil, false
	}
	return &rate, true
}

// Convert converts amount from one currency to another. For same-currency
// pairs the amount passes through unchanged with a nil rate. For
// cross-currency pairs the configured rate is applied; if the table has no
// entry, ErrRateNotFound is returned and the caller must abort whatever
// operation needed the conversion.
func (t *RateTable) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, *decimal.Decimal, error) {
	rate, ok := t.Rate(from, to)
	if !ok {
		return decimal.Decimal{}, nil, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
	}
	if rate == nil {
		return amount, nil, nil
	}
	return amount.Mul(*rate), rate, nil
}
