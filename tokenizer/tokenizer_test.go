package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	input := "speed = 2km + 300m =>"
	tok := New(input, 1)

	expectedTypes := []TokenType{
		IDENTIFIER, WHITESPACE, ASSIGN, WHITESPACE, NUMBER, IDENTIFIER,
		WHITESPACE, PLUS, WHITESPACE, NUMBER, IDENTIFIER, WHITESPACE, ARROW, EOF,
	}

	var actualTypes []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorSkipWhitespace(t *testing.T) {
	tok := New("1 + 2", 1, Options{SkipWhitespace: true})

	expectedTypes := []TokenType{NUMBER, PLUS, NUMBER, EOF}

	var actualTypes []TokenType
	for token, err := range tok.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []TokenType
	}{
		{"arrow vs assign", "a = b =>", []TokenType{IDENTIFIER, ASSIGN, IDENTIFIER, ARROW, EOF}},
		{"comparison", "a >= 2 != 3", []TokenType{IDENTIFIER, GREATER_EQUAL, NUMBER, NOT_EQUAL, NUMBER, EOF}},
		{"percent", "15% of 200", []TokenType{NUMBER, PERCENT, IDENTIFIER, NUMBER, EOF}},
		{"currency", "$120.50", []TokenType{CURRENCY, NUMBER, EOF}},
		{"range", "1..10 step 2", []TokenType{NUMBER, DOTDOT, NUMBER, IDENTIFIER, NUMBER, EOF}},
		{"power", "-2^2", []TokenType{MINUS, NUMBER, POWER, NUMBER, EOF}},
		{"clock time", "14:30", []TokenType{NUMBER, COLON, NUMBER, EOF}},
		{"comment", "# note", []TokenType{COMMENT, EOF}},
		{"view directive", "@view plot", []TokenType{AT, IDENTIFIER, IDENTIFIER, EOF}},
		{"exponent literal", "1.5e10", []TokenType{NUMBER, EOF}},
		{"unicode units", "3µs + 20°C", []TokenType{NUMBER, IDENTIFIER, PLUS, NUMBER, IDENTIFIER, EOF}},
		{"function call", "abs(-4)", []TokenType{IDENTIFIER, OPENED_PARENS, MINUS, NUMBER, CLOSED_PARENS, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input, 1, Options{SkipWhitespace: true})

			tokens, err := tok.AllTokens()
			assert.NoError(t, err)

			actual := make([]TokenType, len(tokens))
			for i, token := range tokens {
				actual[i] = token.Type
			}

			assert.Equal(t, tt.types, actual)
		})
	}
}

func TestTokenValuesAndPositions(t *testing.T) {
	tok := New("x = 42", 3, Options{SkipWhitespace: true})

	tokens, err := tok.AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, 4, len(tokens))

	assert.Equal(t, "x", tokens[0].Value)
	assert.Equal(t, Position{Offset: 0, Line: 3, Column: 1}, tokens[0].Position)

	assert.Equal(t, "42", tokens[2].Value)
	assert.Equal(t, Position{Offset: 4, Line: 3, Column: 5}, tokens[2].Position)
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unterminated string", `"abc`, ErrUnterminatedString},
		{"bare exclamation", "1 ! 2", ErrUnexpectedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.input, 1)

			_, err := tok.AllTokens()
			assert.IsError(t, err, tt.err)
		})
	}
}

func TestRangeDotsNotConsumedByNumber(t *testing.T) {
	tok := New("1..5", 1, Options{SkipWhitespace: true})

	tokens, err := tok.AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, "1", tokens[0].Value)
	assert.Equal(t, DOTDOT, tokens[1].Type)
	assert.Equal(t, "5", tokens[2].Value)
}
