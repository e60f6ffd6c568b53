package value

import (
	"math"

	"github.com/shopspring/decimal"
)

// Percentage stores the display percent (15 for "15%"). The decimal
// fraction is always derived as percent/100 so the two stay consistent.
type Percentage struct {
	Percent float64
}

// NewPercentage builds a percentage from its display value.
func NewPercentage(percent float64) *Percentage {
	return &Percentage{Percent: percent}
}

// NewPercentageFromFraction builds a percentage from a decimal fraction
// (0.15 -> 15%).
func NewPercentageFromFraction(fraction float64) *Percentage {
	return &Percentage{Percent: fraction * 100}
}

// Fraction returns the decimal fraction form.
func (p *Percentage) Fraction() float64 {
	return p.Percent / 100
}

// Of applies "X% of base": base scaled by the fraction. This, together
// with On and Off, is the algebraic ground truth the percentage-phrase
// lowering must agree with.
func (p *Percentage) Of(base Value) Value {
	switch b := base.(type) {
	case *Number:
		return NewNumber(b.V * p.Fraction())
	case *Currency:
		return b.scale(decimal.NewFromFloat(p.Fraction()))
	case *Unit:
		return NewUnit(b.V*p.Fraction(), b.Units)
	case *Percentage:
		return NewPercentage(b.Percent * p.Fraction())
	case *Error:
		return b
	default:
		return Errorf(CategoryRuntime, "cannot take a percentage of %s", base.Kind())
	}
}

// On applies "X% on base": base plus X percent of it.
func (p *Percentage) On(base Value) Value {
	switch b := base.(type) {
	case *Number:
		return NewNumber(b.V * (1 + p.Fraction()))
	case *Currency:
		return b.scale(decimal.NewFromFloat(1 + p.Fraction()))
	case *Unit:
		return NewUnit(b.V*(1+p.Fraction()), b.Units)
	case *Error:
		return b
	default:
		return Errorf(CategoryRuntime, "cannot add a percentage on %s", base.Kind())
	}
}

// Off applies "X% off base": base minus X percent of it.
func (p *Percentage) Off(base Value) Value {
	switch b := base.(type) {
	case *Number:
		return NewNumber(b.V * (1 - p.Fraction()))
	case *Currency:
		return b.scale(decimal.NewFromFloat(1 - p.Fraction()))
	case *Unit:
		return NewUnit(b.V*(1-p.Fraction()), b.Units)
	case *Error:
		return b
	default:
		return Errorf(CategoryRuntime, "cannot take a percentage off %s", base.Kind())
	}
}

func (p *Percentage) Kind() Kind      { return KindPercentage }
func (p *Percentage) IsNumeric() bool { return true }

func (p *Percentage) Add(other Value) Value {
	if e, ok := propagate(p, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Percentage:
		return NewPercentage(p.Percent + o.Percent)
	case *Number, *Currency, *Unit:
		return p.On(o)
	case *Symbolic:
		return o.combineLeft(p, "+")
	default:
		return incompatible("add", p, other)
	}
}

func (p *Percentage) Sub(other Value) Value {
	if e, ok := propagate(p, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Percentage:
		return NewPercentage(p.Percent - o.Percent)
	case *Symbolic:
		return o.combineLeft(p, "-")
	default:
		return incompatible("subtract", p, other)
	}
}

func (p *Percentage) Mul(other Value) Value {
	if e, ok := propagate(p, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number, *Currency, *Unit, *Percentage:
		return p.Of(o)
	case *Symbolic:
		return o.combineLeft(p, "*")
	default:
		return incompatible("multiply", p, other)
	}
}

func (p *Percentage) Div(other Value) Value {
	if e, ok := propagate(p, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Percentage:
		if o.Fraction() == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewNumber(p.Fraction() / o.Fraction())
	case *Number:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewPercentage(p.Percent / o.V)
	case *Symbolic:
		return o.combineLeft(p, "/")
	default:
		return incompatible("divide", p, other)
	}
}

func (p *Percentage) Pow(other Value) Value {
	if e, ok := propagate(p, other); ok {
		return e
	}

	if o, ok := other.(*Number); ok {
		return NewPercentageFromFraction(math.Pow(p.Fraction(), o.V))
	}

	return incompatible("raise", p, other)
}

func (p *Percentage) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Percentage)
	return ok && math.Abs(p.Percent-o.Percent) <= tolerance
}

func (p *Percentage) Format(opts DisplayOptions) string {
	return FormatFloat(p.Percent, opts) + "%"
}
