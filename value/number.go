package value

import "math"

// Number is a plain dimensionless numeric value.
type Number struct {
	V float64
}

// NewNumber wraps a float.
func NewNumber(v float64) *Number {
	return &Number{V: v}
}

func (n *Number) Kind() Kind      { return KindNumber }
func (n *Number) IsNumeric() bool { return true }

func (n *Number) Add(other Value) Value {
	if e, ok := propagate(n, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		return NewNumber(n.V + o.V)
	case *Percentage:
		// 100 + 10% applies the percentage on the base
		return o.On(n)
	case *Unit:
		// a zero bare number may join a dimensioned quantity
		if n.V == 0 {
			return o
		}
		return incompatible("add", n, other)
	case *List:
		return o.mapScalarLeft("add", n, Value.Add)
	case *Symbolic:
		return o.combineLeft(n, "+")
	default:
		return incompatible("add", n, other)
	}
}

func (n *Number) Sub(other Value) Value {
	if e, ok := propagate(n, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		return NewNumber(n.V - o.V)
	case *Percentage:
		return o.Off(n)
	case *Unit:
		if n.V == 0 {
			return NewUnit(-o.V, o.Units)
		}
		return incompatible("subtract", n, other)
	case *List:
		return o.mapScalarLeft("subtract", n, Value.Sub)
	case *Symbolic:
		return o.combineLeft(n, "-")
	default:
		return incompatible("subtract", n, other)
	}
}

func (n *Number) Mul(other Value) Value {
	if e, ok := propagate(n, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		return NewNumber(n.V * o.V)
	case *Percentage:
		return o.Of(n)
	case *Currency:
		return o.Mul(n)
	case *Unit:
		return NewUnit(n.V*o.V, o.Units)
	case *Duration:
		return o.Mul(n)
	case *List:
		return o.mapScalarLeft("multiply", n, Value.Mul)
	case *Symbolic:
		return o.combineLeft(n, "*")
	default:
		return incompatible("multiply", n, other)
	}
}

func (n *Number) Div(other Value) Value {
	if e, ok := propagate(n, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewNumber(n.V / o.V)
	case *Percentage:
		if o.Fraction() == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewNumber(n.V / o.Fraction())
	case *Unit:
		if o.V == 0 {
			return NewError(CategoryRuntime, "division by zero")
		}
		return NewUnit(n.V/o.V, o.Units.Pow(-1))
	case *List:
		return o.mapScalarLeft("divide", n, Value.Div)
	case *Symbolic:
		return o.combineLeft(n, "/")
	default:
		return incompatible("divide", n, other)
	}
}

func (n *Number) Pow(other Value) Value {
	if e, ok := propagate(n, other); ok {
		return e
	}

	switch o := other.(type) {
	case *Number:
		result := math.Pow(n.V, o.V)
		if math.IsNaN(result) {
			return Errorf(CategoryRuntime, "%s^%s is not a real number",
				FormatFloat(n.V, DefaultDisplayOptions()), FormatFloat(o.V, DefaultDisplayOptions()))
		}
		return NewNumber(result)
	case *Symbolic:
		return o.combineLeft(n, "^")
	default:
		return incompatible("raise", n, other)
	}
}

func (n *Number) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*Number)
	return ok && math.Abs(n.V-o.V) <= tolerance
}

func (n *Number) Format(opts DisplayOptions) string {
	return FormatFloat(n.V, opts)
}
