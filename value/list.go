package value

import "strings"

// List is an ordered sequence of semantic values. Lists never nest: an
// element may not itself be a list. NewList enforces the invariant.
type List struct {
	Elems []Value
}

// NewList builds a list, rejecting nested lists with an error value.
func NewList(elems []Value) Value {
	for _, e := range elems {
		if e.Kind() == KindList {
			return NewError(CategorySemantic, "lists cannot contain other lists")
		}
	}

	return &List{Elems: elems}
}

func (l *List) Kind() Kind      { return KindList }
func (l *List) IsNumeric() bool { return false }

// mapScalar applies op elementwise with a scalar right operand.
func (l *List) mapScalar(op string, scalar Value, apply func(Value, Value) Value) Value {
	result := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		result[i] = apply(e, scalar)
		if err, ok := result[i].(*Error); ok {
			return err
		}
	}

	return &List{Elems: result}
}

// mapScalarLeft applies op elementwise with a scalar left operand.
func (l *List) mapScalarLeft(op string, scalar Value, apply func(Value, Value) Value) Value {
	result := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		result[i] = apply(scalar, e)
		if err, ok := result[i].(*Error); ok {
			return err
		}
	}

	return &List{Elems: result}
}

// zip applies op pairwise between two equal-length lists.
func (l *List) zip(op string, other *List, apply func(Value, Value) Value) Value {
	if len(l.Elems) != len(other.Elems) {
		return Errorf(CategoryRuntime, "cannot %s lists of different lengths (%d and %d)",
			op, len(l.Elems), len(other.Elems))
	}

	result := make([]Value, len(l.Elems))
	for i, e := range l.Elems {
		result[i] = apply(e, other.Elems[i])
		if err, ok := result[i].(*Error); ok {
			return err
		}
	}

	return &List{Elems: result}
}

func (l *List) Add(other Value) Value {
	if e, ok := propagate(l, other); ok {
		return e
	}

	if o, ok := other.(*List); ok {
		return l.zip("add", o, Value.Add)
	}

	return l.mapScalar("add", other, Value.Add)
}

func (l *List) Sub(other Value) Value {
	if e, ok := propagate(l, other); ok {
		return e
	}

	if o, ok := other.(*List); ok {
		return l.zip("subtract", o, Value.Sub)
	}

	return l.mapScalar("subtract", other, Value.Sub)
}

func (l *List) Mul(other Value) Value {
	if e, ok := propagate(l, other); ok {
		return e
	}

	if o, ok := other.(*List); ok {
		return l.zip("multiply", o, Value.Mul)
	}

	return l.mapScalar("multiply", other, Value.Mul)
}

func (l *List) Div(other Value) Value {
	if e, ok := propagate(l, other); ok {
		return e
	}

	if o, ok := other.(*List); ok {
		return l.zip("divide", o, Value.Div)
	}

	return l.mapScalar("divide", other, Value.Div)
}

func (l *List) Pow(other Value) Value {
	if e, ok := propagate(l, other); ok {
		return e
	}

	if _, ok := other.(*List); ok {
		return incompatible("raise", l, other)
	}

	return l.mapScalar("raise", other, Value.Pow)
}

func (l *List) Equals(other Value, tolerance float64) bool {
	o, ok := other.(*List)
	if !ok || len(l.Elems) != len(o.Elems) {
		return false
	}

	for i, e := range l.Elems {
		if !e.Equals(o.Elems[i], tolerance) {
			return false
		}
	}

	return true
}

func (l *List) Format(opts DisplayOptions) string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.Format(opts)
	}

	return strings.Join(parts, ", ")
}
