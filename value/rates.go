package value

import "github.com/shopspring/decimal"

// RateProvider is the boundary to the FX-rate collaborator. The core only
// ever calls it synchronously; an implementation must hand back an
// already resolved rate or report it unavailable.
type RateProvider interface {
	Rate(from, to string) (decimal.Decimal, bool)
}

// ConvertCurrency re-expresses a currency amount in another currency via
// the rate provider. An unavailable rate yields a conversion error value
// rather than blocking.
func ConvertCurrency(c *Currency, target string, rates RateProvider) Value {
	if c.Symbol == target {
		return c
	}

	if rates == nil {
		return Errorf(CategoryRuntime, "no conversion rate available for %s to %s", c.Symbol, target)
	}

	rate, ok := rates.Rate(c.Symbol, target)
	if !ok {
		return Errorf(CategoryRuntime, "no conversion rate available for %s to %s", c.Symbol, target)
	}

	return NewCurrencyDecimal(target, c.Amount.Mul(rate))
}
