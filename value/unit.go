package value

import (
	"math"
	"strings"

	"github.com/shibukawa/calcpad/units"
)

// Unit is a numeric value carrying a composite physical unit.
type Unit struct {
	V     float64
	Units units.Composite
}

// NewUnit builds a unit quantity.
func NewUnit(v float64, c units.Composite) Value {
	if c.IsEmpty() {
		return NewNumber(v)
	}

	return &Unit{V: v, Units: c}
}

func (u *Unit) Kind() Kind      { return KindUnit }
func (u *Unit) IsNumeric() bool { return true }

// baseMagnitude is the value expressed on the canonical SI scale, used to
// pick the display unit of an addition result.
func (u *Unit) baseMagnitude() float64 {
	return units.ToBase(u.V, u.Units)
}

// addCompatible adds or subtracts two dimension-compatible quantities.
// The result is expressed in the unit of the larger-magnitude operand, so
// 2km+300m renders as 2.3 km.
func (u *Unit) addCompatible(o *Unit, sign float64) Value {
	target := u.Units
	if math.Abs(o.baseMagnitude()) > math.Abs(u.baseMagnitude()) {
		target = o.Units
	}

	left, err := units.Convert(u.V, u.Units, target)
	if err != nil {
		return NewError(CategoryRuntime, err.Error())
	}

	right, err := units.Convert(o.V, o.Units, target)
	if err != nil {
		return NewError(CategoryRuntime, err.Error())
	}

	return NewUnit(left+sign*right, target)
}

func (u *Unit) Add(other Value) Value {
	if e, ok := propagate(u, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Unit:
		if u.Units.Dimension() != o.Units.Dimension() {
			return Errorf(CategoryRuntime, "cannot add %s and %s: incompatible dimensions",
				units.Display(u.Units), units.Display(o.Units))
		}
		return u.addCompatible(o, 1)
	case *Number:
		// a zero bare number is an implicit zero of this dimension
		if o.V == 0 {
			return u
		}
		return Errorf(CategoryRuntime, "cannot add a plain number to %s", units.Display(u.Units))
	case *Percentage:
		return o.On(u)
	case *Duration:
		if dur, ok := u.AsDuration(); ok {
			return dur.Add(o)
		}
		return incompatible("add", u, other)
	case *Date:
		return o.Add(u)
	case *List:
		return o.mapScalarLeft("add", u, Value.Add)
	case *Symbolic:
		return o.combineLeft(u, "+")
	default:
		return incompatible("add", u, other)
	}
}

func (u *Unit) Sub(other Value) Value {
	if e, ok := propagate(u, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Unit:
		if u.Units.Dimension() != o.Units.Dimension() {
			return Errorf(CategoryRuntime, "cannot subtract %s and %s: incompatible dimensions",
				units.Display(u.Units), units.Display(o.Units))
		}
		return u.addCompatible(o, -1)
	case *Number:
		if o.V == 0 {
			return u
		}
		return Errorf(CategoryRuntime, "cannot subtract a plain number from %s", units.Display(u.Units))
	case *Percentage:
		return o.Off(u)
	case *Duration:
		if dur, ok := u.AsDuration(); ok {
			return dur.Sub(o)
		}
		return incompatible("subtract", u, other)
	case *Symbolic:
		return o.combineLeft(u, "-")
	default:
		return incompatible("subtract", u, other)
	}
}

func (u *Unit) Mul(other Value) Value {
	if e, ok := propagate(u, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Unit:
		return NewUnit(u.V*o.V, u.Units.Mul(o.Units))
	case *Number:
		return NewUnit(u.V*o.V, u.Units)
	case *Percentage:
		return o.Of(u)
	case *List:
		return o.mapScalarLeft("multiply", u, Value.Mul)
	case *Symbolic:
		return o.combineLeft(u, "*")
	default:
		return incompatible("multiply", u, other)
	}
}

func (u *Unit) Div(other Value) Value {
	if e, ok := propagate(u, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Unit:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewUnit(u.V/o.V, u.Units.Div(o.Units))
	case *Number:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewUnit(u.V/o.V, u.Units)
	case *Symbolic:
		return o.combineLeft(u, "/")
	default:
		return incompatible("divide", u, other)
	}
}

func (u *Unit) Pow(other Value) Value {
	if e, ok := propagate(u, other); ok {
		return e
	}

	o, ok := other.(*Number)
	if !ok {
		return incompatible("raise", u, other)
	}

	n := int(o.V)
	if float64(n) != o.V {
		return NewError(CategoryRuntime, "unit quantities require integer exponents")
	}

	return NewUnit(math.Pow(u.V, o.V), u.Units.Pow(n))
}

func (u *Unit) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Unit)
	if !ok || u.Units.Dimension() != o.Units.Dimension() {
		return false
	}

	converted, err := units.Convert(o.V, o.Units, u.Units)
	if err != nil {
		return false
	}

	return math.Abs(u.V-converted) <= tolerance
}

// Convert re-expresses the quantity in another unit.
func (u *Unit) Convert(target units.Composite) Value {
	converted, err := units.Convert(u.V, u.Units, target)
	if err != nil {
		return NewError(CategoryRuntime, err.Error())
	}

	return NewUnit(converted, target)
}

func (u *Unit) Format(opts DisplayOptions) string {
	display := units.Display(u.Units)

	if def, ok := u.Units.SinglePart(); ok && def.Pluralizes {
		if u.V != 1 && !strings.ContainsAny(display, "/^*") {
			display += "s"
		}
	}

	return FormatFloat(u.V, opts) + " " + display
}
