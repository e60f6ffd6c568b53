package tokenizer

import (
	"fmt"
	"iter"
	"unicode"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// LineTokenizer is a tokenizer for one calcpad line that returns an
// iterator.
type LineTokenizer struct {
	input   string
	line    int
	options Options
}

// Options are options for the tokenizer
type Options struct {
	SkipWhitespace bool
}

// New creates a new LineTokenizer. The line number is carried into every
// token's position metadata.
func New(input string, line int, options ...Options) *LineTokenizer {
	opts := Options{}
	if len(options) > 0 {
		opts = options[0]
	}

	if line < 1 {
		line = 1
	}

	return &LineTokenizer{input: input, line: line, options: opts}
}

// Tokens returns an iterator of tokens
func (t *LineTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		lx := &lexer{
			input: []rune(t.input),
			line:  t.line,
		}

		for {
			token, err := lx.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The EOF token is included; the
// first lexer error, if any, is returned alongside the tokens read so far.
func (t *LineTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 32)

	var lastError error

	for token, err := range t.Tokens() {
		if err != nil {
			lastError = err
			continue
		}

		tokens = append(tokens, token)

		if token.Type == EOF {
			break
		}
	}

	return tokens, lastError
}

// Internal lexer implementation
type lexer struct {
	input []rune
	pos   int
	line  int
}

func (l *lexer) current() rune {
	if l.pos >= len(l.input) {
		return 0
	}

	return l.input[l.pos]
}

func (l *lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}

	return l.input[l.pos+1]
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.pos + 1}
}

func (l *lexer) single(tt TokenType) Token {
	token := Token{Type: tt, Value: string(l.current()), Position: l.position()}
	l.pos++

	return token
}

func (l *lexer) pair(tt TokenType, value string) Token {
	token := Token{Type: tt, Value: value, Position: l.position()}
	l.pos += 2

	return token
}

func (l *lexer) nextToken() (Token, error) {
	c := l.current()

	switch {
	case c == 0:
		return Token{Type: EOF, Position: l.position()}, nil
	case c == ' ' || c == '\t':
		return l.readWhitespace(), nil
	case c == '#':
		return l.readComment(), nil
	case c >= '0' && c <= '9':
		return l.readNumber()
	case c == '.':
		if l.peek() == '.' {
			return l.pair(DOTDOT, ".."), nil
		}
		if l.peek() >= '0' && l.peek() <= '9' {
			return l.readNumber()
		}
		l.pos++
		return Token{}, fmt.Errorf("%w: '.' at column %d", ErrUnexpectedCharacter, l.pos)
	case c == '"' || c == '\'':
		return l.readString(c)
	case c == '+':
		return l.single(PLUS), nil
	case c == '-':
		return l.single(MINUS), nil
	case c == '*':
		return l.single(MULTIPLY), nil
	case c == '/':
		return l.single(DIVIDE), nil
	case c == '^':
		return l.single(POWER), nil
	case c == '%':
		return l.single(PERCENT), nil
	case c == '(':
		return l.single(OPENED_PARENS), nil
	case c == ')':
		return l.single(CLOSED_PARENS), nil
	case c == ',':
		return l.single(COMMA), nil
	case c == ':':
		return l.single(COLON), nil
	case c == '@':
		return l.single(AT), nil
	case c == '=':
		switch l.peek() {
		case '>':
			return l.pair(ARROW, "=>"), nil
		case '=':
			return l.pair(EQUAL_EQUAL, "=="), nil
		}
		return l.single(ASSIGN), nil
	case c == '!':
		if l.peek() == '=' {
			return l.pair(NOT_EQUAL, "!="), nil
		}
		l.pos++
		return Token{}, fmt.Errorf("%w: '!' at column %d", ErrUnexpectedCharacter, l.pos)
	case c == '<':
		if l.peek() == '=' {
			return l.pair(LESS_EQUAL, "<="), nil
		}
		return l.single(LESS_THAN), nil
	case c == '>':
		if l.peek() == '=' {
			return l.pair(GREATER_EQUAL, ">="), nil
		}
		return l.single(GREATER_THAN), nil
	case isCurrencyRune(c):
		return l.single(CURRENCY), nil
	case isIdentStart(c):
		return l.readIdentifier(), nil
	default:
		token := l.single(OTHER)
		return token, nil
	}
}

func (l *lexer) readWhitespace() Token {
	start := l.pos
	pos := l.position()

	for l.current() == ' ' || l.current() == '\t' {
		l.pos++
	}

	return Token{Type: WHITESPACE, Value: string(l.input[start:l.pos]), Position: pos}
}

func (l *lexer) readComment() Token {
	pos := l.position()
	value := string(l.input[l.pos:])
	l.pos = len(l.input)

	return Token{Type: COMMENT, Value: value, Position: pos}
}

// readNumber reads an integer or decimal literal with an optional
// exponent. A '.' followed by another '.' belongs to a range operator and
// is left unconsumed.
func (l *lexer) readNumber() (Token, error) {
	start := l.pos
	pos := l.position()
	sawDot := false

	for {
		c := l.current()

		switch {
		case c >= '0' && c <= '9':
			l.pos++
		case c == '.':
			if sawDot || l.peek() == '.' {
				return Token{Type: NUMBER, Value: string(l.input[start:l.pos]), Position: pos}, nil
			}
			sawDot = true
			l.pos++
		case c == 'e' || c == 'E':
			next := l.peek()
			if next >= '0' && next <= '9' {
				l.pos += 2
				continue
			}
			if (next == '+' || next == '-') && l.pos+2 < len(l.input) &&
				l.input[l.pos+2] >= '0' && l.input[l.pos+2] <= '9' {
				l.pos += 3
				continue
			}
			return Token{Type: NUMBER, Value: string(l.input[start:l.pos]), Position: pos}, nil
		default:
			return Token{Type: NUMBER, Value: string(l.input[start:l.pos]), Position: pos}, nil
		}
	}
}

func (l *lexer) readString(quote rune) (Token, error) {
	pos := l.position()
	l.pos++
	start := l.pos

	for l.current() != 0 && l.current() != quote {
		l.pos++
	}

	if l.current() != quote {
		return Token{}, fmt.Errorf("%w: missing closing %c", ErrUnterminatedString, quote)
	}

	value := string(l.input[start:l.pos])
	l.pos++

	return Token{Type: STRING, Value: value, Position: pos}, nil
}

func (l *lexer) readIdentifier() Token {
	start := l.pos
	pos := l.position()

	for isIdentPart(l.current()) {
		l.pos++
	}

	return Token{Type: IDENTIFIER, Value: string(l.input[start:l.pos]), Position: pos}
}

func isCurrencyRune(c rune) bool {
	switch c {
	case '$', '€', '£', '¥', '₹', '₩', '₿':
		return true
	default:
		return false
	}
}

// isIdentStart accepts letters plus the symbols used by unit names (°C,
// µs, Ω).
func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '°' || c == 'µ' || c == 'Ω'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}
