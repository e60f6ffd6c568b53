// Package percent rewrites percentage phrases into plain arithmetic
// component trees: "X% of Y" becomes "(X/100)*Y", "on" and "off" add or
// subtract that product from the base. After lowering, the generic
// numeric evaluator can run the expression without knowing about
// percentages at all.
package percent

import (
	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/value"
)

// Lower applies the lowering rule recursively, innermost phrase first,
// so chained forms such as "10% on 20% off 200" resolve the inner
// operation before the outer one. It returns the rewritten component
// list and whether any phrase was found.
func Lower(components []*parser.Component) ([]*parser.Component, bool) {
	changed := false

	lowered := make([]*parser.Component, 0, len(components))

	for _, c := range components {
		switch c.Kind {
		case parser.CompGroup:
			inner, ok := Lower(c.Children)
			if ok {
				changed = true
				c = parser.Group(inner)
			}
		case parser.CompFunction:
			args := make([][]*parser.Component, len(c.Args))
			argChanged := false

			for i, arg := range c.Args {
				inner, ok := Lower(arg)
				args[i] = inner
				argChanged = argChanged || ok
			}

			if argChanged {
				changed = true
				c = parser.Function(c.Name, args)
			}
		}

		lowered = append(lowered, c)
	}

	for i := 0; i+3 <= len(lowered); i++ {
		if !isPhraseAt(lowered, i) {
			continue
		}

		rest, _ := Lower(lowered[i+2:])

		phrase := buildPhrase(lowered[i], lowered[i+1].Text, rest)

		result := append([]*parser.Component{}, lowered[:i]...)
		result = append(result, phrase)

		return result, true
	}

	return lowered, changed
}

// isPhraseAt reports whether lowered[i:] starts a percentage phrase:
// a percentage operand followed by of/on/off and a right operand.
func isPhraseAt(components []*parser.Component, i int) bool {
	op := components[i+1]
	if op.Kind != parser.CompOperator {
		return false
	}

	switch op.Text {
	case "of", "on", "off":
	default:
		return false
	}

	return isPercentOperand(components[i])
}

// isPercentOperand restricts the left side to shapes whose
// percentage-ness is known at lowering time: a percentage literal or an
// already-lowered parenthesized group. Variables stay with the
// value-based percentage evaluator, which sees their runtime type.
func isPercentOperand(c *parser.Component) bool {
	switch c.Kind {
	case parser.CompLiteral:
		_, ok := c.Value.(*value.Percentage)
		return ok
	case parser.CompGroup:
		return true
	default:
		return false
	}
}

// buildPhrase assembles the lowered arithmetic for one phrase.
func buildPhrase(left *parser.Component, op string, right []*parser.Component) *parser.Component {
	fraction := asFraction(left)
	base := parser.Group(right)

	product := parser.Group([]*parser.Component{
		fraction, parser.Operator("*"), base,
	})

	switch op {
	case "of":
		return product
	case "on":
		return parser.Group([]*parser.Component{
			base, parser.Operator("+"), product,
		})
	default: // off
		return parser.Group([]*parser.Component{
			base, parser.Operator("-"), product,
		})
	}
}

// asFraction converts the percentage operand to its canonical numeric
// form "(v/100)".
func asFraction(c *parser.Component) *parser.Component {
	if pct, ok := c.Value.(*value.Percentage); ok {
		return parser.Group([]*parser.Component{
			parser.Literal(c.Text, value.NewNumber(pct.Percent)),
			parser.Operator("/"),
			parser.Literal("100", value.NewNumber(100)),
		})
	}

	return c
}
