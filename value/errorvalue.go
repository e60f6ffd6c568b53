package value

import "fmt"

// Category classifies an error by the phase that produced it.
type Category string

const (
	// CategoryParse covers malformed syntax such as unmatched parentheses.
	CategoryParse Category = "parse"
	// CategorySyntax covers structural problems such as a missing expression.
	CategorySyntax Category = "syntax"
	// CategorySemantic covers type or dimension mismatches caught before
	// evaluation.
	CategorySemantic Category = "semantic"
	// CategoryRuntime covers failures during evaluation: division by zero,
	// undefined variables, unknown units, domain errors, cycles.
	CategoryRuntime Category = "runtime"
)

// Error is the semantic value representing a failed computation. It flows
// through arithmetic like any other value; every operation on it returns
// the error itself.
type Error struct {
	Category Category
	Message  string
}

// NewError builds an error value.
func NewError(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Errorf builds an error value with a formatted message.
func Errorf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Kind() Kind      { return KindError }
func (e *Error) IsNumeric() bool { return false }

func (e *Error) Add(Value) Value { return e }
func (e *Error) Sub(Value) Value { return e }
func (e *Error) Mul(Value) Value { return e }
func (e *Error) Div(Value) Value { return e }
func (e *Error) Pow(Value) Value { return e }

func (e *Error) Equals(other Value, _ float64) bool {
	o, ok := other.(*Error)
	return ok && o.Category == e.Category && o.Message == e.Message
}

func (e *Error) Format(DisplayOptions) string {
	return e.Message
}

// Error implements the error interface so the value can double as a Go
// error at package boundaries.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}
