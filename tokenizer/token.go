package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NUMBER     // numeric literals
	IDENTIFIER // words: variable names, unit symbols, keywords
	STRING     // quoted literals

	// Arithmetic operators
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	POWER    // ^
	PERCENT  // %

	// Comparison operators
	EQUAL_EQUAL   // ==
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=

	// Structure
	OPENED_PARENS // (
	CLOSED_PARENS // )
	COMMA         // ,
	COLON         // : (clock times)
	DOTDOT        // .. (ranges)
	ASSIGN        // =
	ARROW         // => (render trigger)
	AT            // @ (view directives)
	CURRENCY      // currency symbol such as $ or €
	COMMENT       // # line comment

	// Others
	OTHER // anything the grammar does not own
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NUMBER:
		return "NUMBER"
	case IDENTIFIER:
		return "IDENTIFIER"
	case STRING:
		return "STRING"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case POWER:
		return "POWER"
	case PERCENT:
		return "PERCENT"
	case EQUAL_EQUAL:
		return "EQUAL_EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case DOTDOT:
		return "DOTDOT"
	case ASSIGN:
		return "ASSIGN"
	case ARROW:
		return "ARROW"
	case AT:
		return "AT"
	case CURRENCY:
		return "CURRENCY"
	case COMMENT:
		return "COMMENT"
	case OTHER:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Position locates a token within the source line.
type Position struct {
	Offset int // rune offset, 0-based
	Line   int // 1-based
	Column int // 1-based
}

// Token is a single lexical unit of a calcpad line.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// IsOperator reports whether the token is a binary arithmetic operator.
func (t Token) IsOperator() bool {
	switch t.Type {
	case PLUS, MINUS, MULTIPLY, DIVIDE, POWER:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the token is a comparison operator.
func (t Token) IsComparison() bool {
	switch t.Type {
	case EQUAL_EQUAL, NOT_EQUAL, LESS_THAN, GREATER_THAN, LESS_EQUAL, GREATER_EQUAL:
		return true
	default:
		return false
	}
}
