package parser

import (
	"fmt"
	"strconv"
	"strings"

	tok "github.com/shibukawa/calcpad/tokenizer"
	"github.com/shibukawa/calcpad/value"
)

// parseComponents turns a token slice into the flat infix component list.
// Literals are resolved to semantic values here; operator precedence and
// implicit multiplication are left to the evaluator's walker.
func (p *Parser) parseComponents(tokens []tok.Token) ([]*Component, error) {
	var components []*Component

	i := 0
	for i < len(tokens) {
		t := tokens[i]

		switch t.Type {
		case tok.NUMBER:
			c, consumed, err := p.resolveNumberLiteral(tokens, i)
			if err != nil {
				return nil, err
			}

			components = append(components, c)
			i += consumed

		case tok.CURRENCY:
			// symbol-first form: $120.50
			if i+1 < len(tokens) && tokens[i+1].Type == tok.NUMBER {
				amount, err := strconv.ParseFloat(tokens[i+1].Value, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q", tok.ErrInvalidNumber, tokens[i+1].Value)
				}

				components = append(components, Literal(t.Value+tokens[i+1].Value, value.NewCurrency(t.Value, amount)))
				i += 2

				continue
			}

			return nil, fmt.Errorf("currency symbol %q without an amount", t.Value)

		case tok.STRING:
			c, err := p.resolveStringLiteral(t)
			if err != nil {
				return nil, err
			}

			components = append(components, c)
			i++

		case tok.IDENTIFIER:
			c, consumed, err := p.resolveWord(tokens, i)
			if err != nil {
				return nil, err
			}

			components = append(components, c)
			i += consumed

		case tok.PLUS, tok.MINUS, tok.MULTIPLY, tok.DIVIDE, tok.POWER,
			tok.EQUAL_EQUAL, tok.NOT_EQUAL,
			tok.LESS_THAN, tok.GREATER_THAN, tok.LESS_EQUAL, tok.GREATER_EQUAL,
			tok.COMMA, tok.DOTDOT:
			components = append(components, Operator(t.Value))
			i++

		case tok.PERCENT:
			// bare "%" is the target of an "as %" conversion
			components = append(components, Operator("%"))
			i++

		case tok.OPENED_PARENS:
			close, err := findMatchingParen(tokens, i)
			if err != nil {
				return nil, err
			}

			inner, err := p.parseComponents(tokens[i+1 : close])
			if err != nil {
				return nil, err
			}

			components = append(components, Group(inner))
			i = close + 1

		case tok.CLOSED_PARENS:
			return nil, fmt.Errorf("unmatched closing parenthesis")

		case tok.COMMENT:
			// trailing inline comment ends the expression
			return components, nil

		case tok.ASSIGN:
			return nil, fmt.Errorf("unexpected %q in expression", "=")

		case tok.EOF:
			return components, nil

		default:
			return nil, fmt.Errorf("unexpected %q in expression", t.Value)
		}
	}

	return components, nil
}

// resolveWord types an identifier token: date literal, grammar keyword,
// named constant, function call, or variable reference.
func (p *Parser) resolveWord(tokens []tok.Token, i int) (*Component, int, error) {
	word := tokens[i].Value

	if v, consumed := tryDateLiteral(tokens, i, p.now()); v != nil {
		return Literal(renderTokens(tokens[i:i+consumed]), v), consumed, nil
	}

	if isKeyword(word) || conversionKeyword(word) {
		return Operator(strings.ToLower(word)), 1, nil
	}

	if n, ok := constants[word]; ok {
		return Literal(word, value.NewNumber(n)), 1, nil
	}

	if i+1 < len(tokens) && tokens[i+1].Type == tok.OPENED_PARENS {
		return p.resolveCall(tokens, i)
	}

	return Variable(word), 1, nil
}

// resolveCall parses "name(arg, arg, ...)" starting at the name token.
// Each argument is its own component list, so comparisons inside an
// argument such as where(xs > 5) parse without ambiguity.
func (p *Parser) resolveCall(tokens []tok.Token, i int) (*Component, int, error) {
	name := tokens[i].Value

	close, err := findMatchingParen(tokens, i+1)
	if err != nil {
		return nil, 0, err
	}

	inner := tokens[i+2 : close]

	var args [][]*Component

	for _, slice := range splitTopLevel(inner) {
		arg, err := p.parseComponents(slice)
		if err != nil {
			return nil, 0, err
		}

		args = append(args, arg)
	}

	return Function(name, args), close - i + 1, nil
}

// findMatchingParen returns the index of the closing parenthesis that
// balances the opening one at openIdx.
func findMatchingParen(tokens []tok.Token, openIdx int) (int, error) {
	depth := 0

	for i := openIdx; i < len(tokens); i++ {
		switch tokens[i].Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("unmatched opening parenthesis")
}

// splitTopLevel splits a token slice on commas outside any parentheses.
// An empty slice yields no segments.
func splitTopLevel(tokens []tok.Token) [][]tok.Token {
	if len(tokens) == 0 {
		return nil
	}

	var segments [][]tok.Token

	depth := 0
	start := 0

	for i, t := range tokens {
		switch t.Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
		case tok.COMMA:
			if depth == 0 {
				segments = append(segments, tokens[start:i])
				start = i + 1
			}
		}
	}

	return append(segments, tokens[start:])
}
