// Package value implements the closed set of semantic value types produced
// by parsing and evaluation: numbers, percentages, currency amounts, unit
// quantities, dates, times, durations, lists, unresolved symbolic
// expressions, and errors.
//
// Every concrete type implements the same total arithmetic contract:
// operations never panic and never return a Go error; a domain violation
// (adding a length to a mass, mixing currency symbols) yields an *Error
// value that call sites propagate uniformly.
package value

// Kind identifies the concrete type of a semantic value.
type Kind int

const (
	KindNumber Kind = iota
	KindPercentage
	KindCurrency
	KindUnit
	KindDate
	KindTime
	KindDuration
	KindList
	KindSymbolic
	KindError
)

// String returns the human-readable kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPercentage:
		return "percentage"
	case KindCurrency:
		return "currency"
	case KindUnit:
		return "unit quantity"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindList:
		return "list"
	case KindSymbolic:
		return "symbolic"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Value is the shared contract of every semantic value. Implementations
// return *Error (never panic, never a Go error) on domain violations so
// results can be propagated without special cases.
type Value interface {
	Kind() Kind
	IsNumeric() bool
	Add(other Value) Value
	Sub(other Value) Value
	Mul(other Value) Value
	Div(other Value) Value
	Pow(other Value) Value
	Equals(other Value, tolerance float64) bool
	Format(opts DisplayOptions) string
}

// propagate returns the first error operand, if any, so binary operations
// can forward upstream failures before attempting arithmetic.
func propagate(a, b Value) (Value, bool) {
	if e, ok := a.(*Error); ok {
		return e, true
	}

	if e, ok := b.(*Error); ok {
		return e, true
	}

	return nil, false
}

// incompatible builds the standard mismatch error for a binary operation.
func incompatible(op string, a, b Value) *Error {
	return Errorf(CategoryRuntime, "cannot %s %s and %s", op, a.Kind(), b.Kind())
}
