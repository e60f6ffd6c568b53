package calcpad

import (
	"github.com/shopspring/decimal"
)

// StaticRates is a value.RateProvider backed by a fixed snapshot of quotes
// against one base currency. Cross rates between two non-base currencies
// go through the base.
type StaticRates struct {
	quotes map[string]decimal.Decimal
}

// NewStaticRates builds a rate table. Quotes give the amount of each
// currency equal to one unit of base; the base itself is implied at 1.
func NewStaticRates(base string, quotes map[string]float64) *StaticRates {
	table := make(map[string]decimal.Decimal, len(quotes)+1)
	table[base] = decimal.NewFromInt(1)

	for code, rate := range quotes {
		table[code] = decimal.NewFromFloat(rate)
	}

	return &StaticRates{quotes: table}
}

// Rate returns the multiplier converting an amount in from-currency to
// to-currency, or reports the pair unavailable.
func (r *StaticRates) Rate(from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}

	fq, ok := r.quotes[from]
	if !ok || fq.IsZero() {
		return decimal.Decimal{}, false
	}

	tq, ok := r.quotes[to]
	if !ok {
		return decimal.Decimal{}, false
	}

	return tq.Div(fq), true
}
