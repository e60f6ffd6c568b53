package value

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a monetary amount tied to a symbol or ISO code. Amounts are
// exact decimals; float conversion happens only at the boundary into
// generic numeric code.
type Currency struct {
	Symbol string
	Amount decimal.Decimal
}

// NewCurrency builds a currency value from a float amount.
func NewCurrency(symbol string, amount float64) *Currency {
	return &Currency{Symbol: symbol, Amount: decimal.NewFromFloat(amount)}
}

// NewCurrencyDecimal builds a currency value from an exact decimal.
func NewCurrencyDecimal(symbol string, amount decimal.Decimal) *Currency {
	return &Currency{Symbol: symbol, Amount: amount}
}

// currencySymbols maps presentation symbols to themselves and is used for
// literal detection by the parser.
var currencySymbols = map[string]string{
	"$": "$", "€": "€", "£": "£", "¥": "¥", "₹": "₹", "₩": "₩", "₿": "₿",
}

// currencyCodes is the ISO code subset recognized as suffix notation
// ("100 EUR").
var currencyCodes = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CNY": {}, "INR": {},
	"KRW": {}, "CHF": {}, "CAD": {}, "AUD": {}, "NZD": {}, "SEK": {},
	"NOK": {}, "DKK": {}, "PLN": {}, "BRL": {}, "MXN": {}, "ZAR": {},
	"SGD": {}, "HKD": {}, "TRY": {}, "BTC": {}, "ETH": {},
}

// IsCurrencySymbol reports whether s is a recognized currency symbol.
func IsCurrencySymbol(s string) bool {
	_, ok := currencySymbols[s]
	return ok
}

// IsCurrencyCode reports whether s is a recognized ISO currency code.
func IsCurrencyCode(s string) bool {
	_, ok := currencyCodes[strings.ToUpper(s)]
	return ok && s == strings.ToUpper(s)
}

func (c *Currency) Kind() Kind      { return KindCurrency }
func (c *Currency) IsNumeric() bool { return true }

func (c *Currency) scale(factor decimal.Decimal) *Currency {
	return NewCurrencyDecimal(c.Symbol, c.Amount.Mul(factor))
}

func (c *Currency) sameSymbol(o *Currency) bool {
	return c.Symbol == o.Symbol
}

func (c *Currency) Add(other Value) Value {
	if e, ok := propagate(c, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Currency:
		if !c.sameSymbol(o) {
			return Errorf(CategoryRuntime, "cannot add %s and %s without a conversion rate", c.Symbol, o.Symbol)
		}
		return NewCurrencyDecimal(c.Symbol, c.Amount.Add(o.Amount))
	case *Percentage:
		return o.On(c)
	case *Number:
		if o.V == 0 {
			return c
		}
		return incompatible("add", c, other)
	case *List:
		return o.mapScalarLeft("add", c, Value.Add)
	case *Symbolic:
		return o.combineLeft(c, "+")
	default:
		return incompatible("add", c, other)
	}
}

func (c *Currency) Sub(other Value) Value {
	if e, ok := propagate(c, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Currency:
		if !c.sameSymbol(o) {
			return Errorf(CategoryRuntime, "cannot subtract %s and %s without a conversion rate", c.Symbol, o.Symbol)
		}
		return NewCurrencyDecimal(c.Symbol, c.Amount.Sub(o.Amount))
	case *Percentage:
		return o.Off(c)
	case *Number:
		if o.V == 0 {
			return c
		}
		return incompatible("subtract", c, other)
	case *Symbolic:
		return o.combineLeft(c, "-")
	default:
		return incompatible("subtract", c, other)
	}
}

func (c *Currency) Mul(other Value) Value {
	if e, ok := propagate(c, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		return c.scale(decimal.NewFromFloat(o.V))
	case *Percentage:
		return o.Of(c)
	case *List:
		return o.mapScalarLeft("multiply", c, Value.Mul)
	case *Symbolic:
		return o.combineLeft(c, "*")
	default:
		return incompatible("multiply", c, other)
	}
}

func (c *Currency) Div(other Value) Value {
	if e, ok := propagate(c, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return c.scale(decimal.NewFromFloat(1 / o.V))
	case *Currency:
		if !c.sameSymbol(o) {
			return Errorf(CategoryRuntime, "cannot divide %s by %s without a conversion rate", c.Symbol, o.Symbol)
		}
		if o.Amount.IsZero() {
			return NewError(CategoryRuntime, "division by zero")
		}
		ratio, _ := c.Amount.Div(o.Amount).Float64()
		return NewNumber(ratio)
	case *Percentage:
		if o.Fraction() == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return c.scale(decimal.NewFromFloat(1 / o.Fraction()))
	case *Symbolic:
		return o.combineLeft(c, "/")
	default:
		return incompatible("divide", c, other)
	}
}

func (c *Currency) Pow(other Value) Value {
	if e, ok := propagate(c, other); ok {
		return e
	}

	return incompatible("raise", c, other)
}

func (c *Currency) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Currency)
	if !ok || !c.sameSymbol(o) {
		return false
	}

	diff, _ := c.Amount.Sub(o.Amount).Abs().Float64()

	return diff <= tolerance
}

func (c *Currency) Format(opts DisplayOptions) string {
	amount, _ := c.Amount.Float64()
	rendered := FormatFloat(amount, opts)

	if IsCurrencyCode(c.Symbol) {
		return rendered + " " + c.Symbol
	}

	return c.Symbol + rendered
}
