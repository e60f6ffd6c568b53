package parser

import (
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// validateComponents runs checks that do not need variable values:
// operator placement, group shape, and dimension compatibility between
// already-resolved literal quantities. Mismatches that depend on
// variables or function results surface later during evaluation.
func validateComponents(components []*Component) *value.Error {
	if len(components) == 0 {
		return value.NewError(value.CategorySyntax, "empty expression")
	}

	if first := components[0]; first.Kind == CompOperator && !isSignOperator(first.Text) {
		return value.Errorf(value.CategorySyntax, "expression cannot start with %q", first.Text)
	}

	// a bare "%" is the target of an "as %" conversion and acts as an
	// operand in these checks
	if last := components[len(components)-1]; last.Kind == CompOperator && last.Text != "%" {
		return value.Errorf(value.CategorySyntax, "expression cannot end with %q", last.Text)
	}

	for i := 1; i < len(components); i++ {
		prev, cur := components[i-1], components[i]
		if prev.Kind == CompOperator && cur.Kind == CompOperator &&
			!isSignOperator(cur.Text) && cur.Text != "%" {
			return value.Errorf(value.CategorySyntax, "unexpected %q after %q", cur.Text, prev.Text)
		}
	}

	if err := checkLiteralDimensions(components); err != nil {
		return err
	}

	for _, c := range components {
		switch c.Kind {
		case CompGroup:
			if err := validateComponents(c.Children); err != nil {
				return err
			}
		case CompFunction:
			for _, arg := range c.Args {
				if err := validateComponents(arg); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// checkLiteralDimensions flags additions and subtractions of two
// resolved unit literals with incompatible dimensions, so "2m + 3kg"
// fails before any variable is read. Operands touching variables,
// function calls, or multiplicative neighbors are left for the
// evaluator, which sees their values.
func checkLiteralDimensions(components []*Component) *value.Error {
	termBreak := func(idx int) bool {
		if idx < 0 || idx >= len(components) {
			return true
		}

		c := components[idx]

		return c.Kind == CompOperator && c.Text != "*" && c.Text != "/" && c.Text != "^"
	}

	for i := 1; i+1 < len(components); i++ {
		op := components[i]
		if !op.IsOperator("+") && !op.IsOperator("-") {
			continue
		}

		left, lok := literalUnit(components[i-1])
		right, rok := literalUnit(components[i+1])

		if !lok || !rok || !termBreak(i-2) || !termBreak(i+2) {
			continue
		}

		if left.Units.Dimension() != right.Units.Dimension() {
			return value.Errorf(value.CategorySemantic,
				"cannot add %s and %s: incompatible dimensions",
				units.Display(left.Units), units.Display(right.Units))
		}
	}

	return nil
}

func literalUnit(c *Component) (*value.Unit, bool) {
	if c.Kind != CompLiteral {
		return nil, false
	}

	u, ok := c.Value.(*value.Unit)

	return u, ok
}

// isSignOperator reports whether the operator can prefix a value as a
// unary sign.
func isSignOperator(symbol string) bool {
	return symbol == "-" || symbol == "+"
}
