package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tok "github.com/shibukawa/calcpad/tokenizer"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// constants resolved at parse time; lowercase spellings are accepted for
// the word-like ones.
var constants = map[string]float64{
	"PI": math.Pi, "pi": math.Pi, "π": math.Pi,
	"TAU": 2 * math.Pi, "tau": 2 * math.Pi,
	"PHI": math.Phi, "phi": math.Phi,
	"E": math.E,
}

// stringDateLayouts are tried in order for quoted date literals.
var stringDateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
	{"Jan 2, 2006 15:04", true},
	{"Jan 2, 2006", false},
	{"1/2/2006", false},
}

// resolveNumberLiteral reads the literal starting at a NUMBER token:
// clock time, multi-part duration, percentage, unit quantity, or plain
// number. It returns the component and tokens consumed.
func (p *Parser) resolveNumberLiteral(tokens []tok.Token, i int) (*Component, int, error) {
	if v, consumed := tryTimeLiteral(tokens, i); v != nil {
		return Literal(renderTokens(tokens[i:i+consumed]), v), consumed, nil
	}

	if v, consumed := tryDurationLiteral(tokens, i); v != nil {
		return Literal(renderTokens(tokens[i:i+consumed]), v), consumed, nil
	}

	n, err := strconv.ParseFloat(tokens[i].Value, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", tok.ErrInvalidNumber, tokens[i].Value)
	}

	if i+1 < len(tokens) {
		next := tokens[i+1]

		switch {
		case next.Type == tok.PERCENT:
			return Literal(tokens[i].Value+"%", value.NewPercentage(n)), 2, nil

		case next.Type == tok.CURRENCY:
			return Literal(tokens[i].Value+next.Value, value.NewCurrency(next.Value, n)), 2, nil

		case next.Type == tok.IDENTIFIER && value.IsCurrencyCode(next.Value):
			return Literal(tokens[i].Value+" "+next.Value, value.NewCurrency(next.Value, n)), 2, nil

		case next.Type == tok.IDENTIFIER && !isKeyword(next.Value):
			// "5 in" directly after a number resolves as the inch here,
			// not the conversion keyword
			if composite, consumed := p.parseUnitSuffix(tokens, i+1); consumed > 0 {
				text := renderTokens(tokens[i : i+1+consumed])
				return Literal(text, value.NewUnit(n, composite)), 1 + consumed, nil
			}
		}
	}

	return Literal(tokens[i].Value, value.NewNumber(n)), 1, nil
}

// parseUnitSuffix greedily reads a composite unit expression starting at
// an identifier token: unit [^ n] ((*|/) unit [^ n])*, e.g. "km/h" or
// "kg*m/s^2". It returns the composite and tokens consumed (0 when
// tokens[i] is not a unit).
func (p *Parser) parseUnitSuffix(tokens []tok.Token, i int) (units.Composite, int) {
	def := p.lookupUnit(tokens[i].Value)
	if def == nil {
		return units.Composite{}, 0
	}

	parts := []units.Part{{Def: def, Power: 1}}
	j := i + 1

	if power, consumed := p.parseUnitPower(tokens, j); consumed > 0 {
		parts[0].Power = power
		j += consumed
	}

	for j+1 < len(tokens) &&
		(tokens[j].Type == tok.MULTIPLY || tokens[j].Type == tok.DIVIDE) &&
		tokens[j+1].Type == tok.IDENTIFIER {
		next := p.lookupUnit(tokens[j+1].Value)
		if next == nil {
			break
		}

		power := 1
		consumed := 2

		if extra, n := p.parseUnitPower(tokens, j+2); n > 0 {
			power = extra
			consumed += n
		}

		if tokens[j].Type == tok.DIVIDE {
			power = -power
		}

		parts = append(parts, units.Part{Def: next, Power: power})
		j += consumed
	}

	return units.NewComposite(parts...), j - i
}

// parseUnitPower reads "^ n" with an integer n, returning the power and
// tokens consumed.
func (p *Parser) parseUnitPower(tokens []tok.Token, i int) (int, int) {
	if i+1 >= len(tokens) || tokens[i].Type != tok.POWER || tokens[i+1].Type != tok.NUMBER {
		return 0, 0
	}

	n, err := strconv.Atoi(tokens[i+1].Value)
	if err != nil {
		return 0, 0
	}

	return n, 2
}

// lookupUnit resolves a unit symbol, refusing words reserved as grammar
// keywords.
func (p *Parser) lookupUnit(word string) *units.Definition {
	if isKeyword(word) {
		return nil
	}

	return p.registry.Get(word)
}

// resolveStringLiteral types a quoted literal: dates first, otherwise it
// is an error since the grammar has no string values.
func (p *Parser) resolveStringLiteral(token tok.Token) (*Component, error) {
	for _, l := range stringDateLayouts {
		if t, err := time.ParseInLocation(l.layout, token.Value, p.now().Location()); err == nil {
			return Literal(token.Value, value.NewDate(t, l.hasTime)), nil
		}
	}

	return nil, fmt.Errorf("unrecognized date literal %q", token.Value)
}

// keywords the expression grammar owns; they never resolve as units or
// variables.
var keywordSet = map[string]struct{}{
	"of": {}, "on": {}, "off": {}, "to": {}, "as": {}, "is": {},
	"step": {}, "solve": {}, "and": {},
}

func isKeyword(word string) bool {
	_, ok := keywordSet[strings.ToLower(word)]
	return ok
}

// conversionKeyword reports whether the word introduces a unit/currency
// conversion target ("to" and, outside the inch position, "in").
func conversionKeyword(word string) bool {
	lower := strings.ToLower(word)
	return lower == "to" || lower == "in"
}

func renderTokens(tokens []tok.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}

	return strings.Join(parts, " ")
}
