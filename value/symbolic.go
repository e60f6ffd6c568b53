package value

import "fmt"

// Symbolic carries an expression whose referenced variables are not yet
// known. It keeps the textual form so the line can re-evaluate once the
// missing variables appear.
type Symbolic struct {
	Expr string
}

// NewSymbolic wraps unresolved expression text.
func NewSymbolic(expr string) *Symbolic {
	return &Symbolic{Expr: expr}
}

func (s *Symbolic) Kind() Kind      { return KindSymbolic }
func (s *Symbolic) IsNumeric() bool { return false }

func (s *Symbolic) combine(other Value, op string) Value {
	return NewSymbolic(fmt.Sprintf("%s %s %s", s.Expr, op, renderOperand(other)))
}

func (s *Symbolic) combineLeft(other Value, op string) Value {
	return NewSymbolic(fmt.Sprintf("%s %s %s", renderOperand(other), op, s.Expr))
}

func renderOperand(v Value) string {
	if sym, ok := v.(*Symbolic); ok {
		return sym.Expr
	}

	return v.Format(DefaultDisplayOptions())
}

func (s *Symbolic) Add(other Value) Value {
	if e, ok := propagate(s, other); ok {
		return e
	}

	return s.combine(other, "+")
}

func (s *Symbolic) Sub(other Value) Value {
	if e, ok := propagate(s, other); ok {
		return e
	}

	return s.combine(other, "-")
}

func (s *Symbolic) Mul(other Value) Value {
	if e, ok := propagate(s, other); ok {
		return e
	}

	return s.combine(other, "*")
}

func (s *Symbolic) Div(other Value) Value {
	if e, ok := propagate(s, other); ok {
		return e
	}

	return s.combine(other, "/")
}

func (s *Symbolic) Pow(other Value) Value {
	if e, ok := propagate(s, other); ok {
		return e
	}

	return s.combine(other, "^")
}

func (s *Symbolic) Equals(other Value, _ float64) bool {
	o, ok := other.(*Symbolic)
	return ok && o.Expr == s.Expr
}

func (s *Symbolic) Format(DisplayOptions) string {
	return s.Expr
}
