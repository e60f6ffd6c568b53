package evaluator

import (
	"strings"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// EvaluateComponents evaluates a component list to a semantic value.
// Top-level commas build a list; everything else goes through the
// precedence walker. Failures come back as *value.Error, never as a Go
// error or panic.
func EvaluateComponents(components []*parser.Component, ctx *Context) value.Value {
	segments := splitOnComma(components)

	if len(segments) == 1 {
		return evaluateSegment(segments[0], ctx)
	}

	elems := make([]value.Value, 0, len(segments))

	for _, segment := range segments {
		v := evaluateSegment(segment, ctx)
		if errv, ok := v.(*value.Error); ok {
			return errv
		}

		elems = append(elems, v)
	}

	return value.NewList(elems)
}

func evaluateSegment(components []*parser.Component, ctx *Context) value.Value {
	if len(components) == 0 {
		return value.NewError(value.CategorySyntax, "empty expression")
	}

	w := &walker{components: components, ctx: ctx}

	v := w.parseConversion()
	if errv, ok := v.(*value.Error); ok {
		return errv
	}

	if w.pos < len(w.components) {
		return value.Errorf(value.CategorySyntax, "unexpected %q", w.components[w.pos].Text)
	}

	return v
}

func splitOnComma(components []*parser.Component) [][]*parser.Component {
	var segments [][]*parser.Component

	start := 0

	for i, c := range components {
		if c.IsOperator(",") {
			segments = append(segments, components[start:i])
			start = i + 1
		}
	}

	return append(segments, components[start:])
}

// walker evaluates a flat component list with explicit precedence:
// conversion < range < comparison < additive < multiplicative < unary <
// power < primary. Implicit multiplication is adjacency at the
// multiplicative level.
type walker struct {
	components []*parser.Component
	pos        int
	ctx        *Context
}

func (w *walker) peek() *parser.Component {
	if w.pos >= len(w.components) {
		return nil
	}

	return w.components[w.pos]
}

func (w *walker) peekOperator(symbols ...string) string {
	c := w.peek()
	if c == nil || c.Kind != parser.CompOperator {
		return ""
	}

	for _, s := range symbols {
		if c.Text == s {
			return s
		}
	}

	return ""
}

// parseConversion: expr [to|in|as target]...
func (w *walker) parseConversion() value.Value {
	left := w.parseRange()
	if isError(left) {
		return left
	}

	for {
		op := w.peekOperator("to", "in", "as")
		if op == "" {
			return left
		}

		w.pos++

		converted := w.applyConversion(left)
		if isError(converted) {
			return converted
		}

		left = converted
	}
}

// parseRange: expr [.. expr [step expr]]
func (w *walker) parseRange() value.Value {
	left := w.parseComparison()
	if isError(left) {
		return left
	}

	if w.peekOperator("..") == "" {
		return left
	}

	w.pos++

	right := w.parseComparison()
	if isError(right) {
		return right
	}

	var step value.Value

	if w.peekOperator("step") != "" {
		w.pos++

		step = w.parseComparison()
		if isError(step) {
			return step
		}
	}

	return expandRange(left, right, step)
}

// parseComparison: expr [(== != < > <= >= is) expr]...
// "is %" converts the left side to a percentage instead of comparing.
func (w *walker) parseComparison() value.Value {
	left := w.parseAdditive()
	if isError(left) {
		return left
	}

	for {
		op := w.peekOperator("==", "!=", "<", ">", "<=", ">=", "is")
		if op == "" {
			return left
		}

		w.pos++

		if op == "is" {
			if next := w.peek(); next != nil && next.IsOperator("%") {
				w.pos++

				converted := toPercent(left)
				if isError(converted) {
					return converted
				}

				left = converted

				continue
			}
		}

		right := w.parseAdditive()
		if isError(right) {
			return right
		}

		result := compareValues(op, left, right)
		if isError(result) {
			return result
		}

		left = result
	}
}

// parseAdditive: expr [(+ - and of on off) expr]...
// The percentage keywords live here so variable-held percentages such as
// "discount off base price" evaluate left to right like + and -.
func (w *walker) parseAdditive() value.Value {
	left := w.parseMultiplicative()
	if isError(left) {
		return left
	}

	for {
		op := w.peekOperator("+", "-", "and", "of", "on", "off")
		if op == "" {
			return left
		}

		w.pos++

		right := w.parseMultiplicative()
		if isError(right) {
			return right
		}

		switch op {
		case "+", "and":
			left = left.Add(right)
		case "-":
			left = left.Sub(right)
		default:
			left = applyPercentOp(op, left, right)
		}

		if isError(left) {
			return left
		}
	}
}

// parseMultiplicative: expr [(* /) expr]... plus implicit multiplication
// on adjacency, so "2x" and "2(3+4)" multiply without an operator.
func (w *walker) parseMultiplicative() value.Value {
	left := w.parseUnary()
	if isError(left) {
		return left
	}

	for {
		if op := w.peekOperator("*", "/"); op != "" {
			w.pos++

			right := w.parseUnary()
			if isError(right) {
				return right
			}

			if op == "*" {
				left = left.Mul(right)
			} else {
				left = left.Div(right)
			}

			if isError(left) {
				return left
			}

			continue
		}

		if w.startsPrimary() {
			right := w.parseUnary()
			if isError(right) {
				return right
			}

			left = left.Mul(right)
			if isError(left) {
				return left
			}

			continue
		}

		return left
	}
}

func (w *walker) startsPrimary() bool {
	c := w.peek()
	if c == nil {
		return false
	}

	switch c.Kind {
	case parser.CompLiteral, parser.CompVariable, parser.CompFunction, parser.CompGroup:
		return true
	default:
		return false
	}
}

// parseUnary: [- +] power
func (w *walker) parseUnary() value.Value {
	if op := w.peekOperator("-", "+"); op != "" {
		w.pos++

		v := w.parseUnary()
		if isError(v) {
			return v
		}

		if op == "-" {
			return v.Mul(value.NewNumber(-1))
		}

		return v
	}

	return w.parsePower()
}

// parsePower: primary [^ unary], right associative so 2^3^2 is 2^(3^2)
// and -2^2 is -(2^2).
func (w *walker) parsePower() value.Value {
	left := w.parsePrimary()
	if isError(left) {
		return left
	}

	if w.peekOperator("^") == "" {
		return left
	}

	w.pos++

	right := w.parseUnary()
	if isError(right) {
		return right
	}

	return left.Pow(right)
}

func (w *walker) parsePrimary() value.Value {
	c := w.peek()
	if c == nil {
		return value.NewError(value.CategorySyntax, "expression ended unexpectedly")
	}

	switch c.Kind {
	case parser.CompLiteral:
		w.pos++
		return c.Value

	case parser.CompGroup:
		w.pos++
		return EvaluateComponents(c.Children, w.ctx)

	case parser.CompFunction:
		w.pos++
		return w.applyFunction(c)

	case parser.CompVariable:
		if w.startsBareCall(c) {
			w.pos++

			arg := w.parseUnary()
			if isError(arg) {
				return arg
			}

			return w.applyFunction(parser.Function(c.Name, [][]*parser.Component{
				{parser.Literal(c.Name+" argument", arg)},
			}))
		}

		return w.resolveVariable()

	default:
		return value.Errorf(value.CategorySyntax, "unexpected %q", c.Text)
	}
}

// startsBareCall reports whether a bare word is a known function applied
// to a single trailing argument without parentheses, as in "abs -4". A
// variable binding with the same name wins over the function reading.
func (w *walker) startsBareCall(c *parser.Component) bool {
	if _, ok := w.ctx.lookup(c.Name); ok {
		return false
	}

	if _, ok := builtins[strings.ToLower(c.Name)]; !ok {
		if _, ok := w.ctx.function(c.Name); !ok {
			return false
		}
	}

	if w.pos+1 >= len(w.components) {
		return false
	}

	switch next := w.components[w.pos+1]; next.Kind {
	case parser.CompLiteral, parser.CompVariable, parser.CompFunction, parser.CompGroup:
		return true
	case parser.CompOperator:
		return isSignText(next.Text)
	default:
		return false
	}
}

func isSignText(symbol string) bool {
	return symbol == "-" || symbol == "+"
}

// resolveVariable consumes a run of adjacent variable words and binds the
// longest joined name the store knows, so "base price" resolves as one
// variable when it was assigned as one.
func (w *walker) resolveVariable() value.Value {
	words := []string{}

	for i := w.pos; i < len(w.components); i++ {
		c := w.components[i]
		if c.Kind != parser.CompVariable {
			break
		}

		words = append(words, c.Name)
	}

	for k := len(words); k >= 1; k-- {
		name := strings.Join(words[:k], " ")

		if v, ok := w.ctx.lookup(name); ok {
			w.pos += k
			return v
		}
	}

	name := words[0]
	w.pos++

	return value.Errorf(value.CategoryRuntime, "undefined variable: %s", name)
}

// applyConversion reads the target that follows a to/in/as keyword and
// converts the value. Targets are a bare "%", a currency code or symbol,
// or a unit spelling such as "km/h".
func (w *walker) applyConversion(left value.Value) value.Value {
	c := w.peek()
	if c == nil {
		return value.NewError(value.CategorySyntax, "conversion is missing its target")
	}

	if c.IsOperator("%") {
		w.pos++
		return toPercent(left)
	}

	if c.Kind == parser.CompVariable {
		if value.IsCurrencyCode(c.Name) || value.IsCurrencySymbol(c.Name) {
			w.pos++
			return convertCurrency(left, c.Name, w.ctx)
		}

		composite, consumed := w.parseUnitTarget()
		if consumed > 0 {
			w.pos += consumed
			return convertUnit(left, composite)
		}

		return value.Errorf(value.CategoryRuntime, "unknown unit: %s", c.Name)
	}

	return value.Errorf(value.CategorySyntax, "cannot convert to %q", c.Text)
}

// parseUnitTarget reads a unit spelling from the component stream:
// word [^ n] ((*|/) word [^ n])*. It returns the composite and how many
// components it spans, or 0 when the first word is not a unit.
func (w *walker) parseUnitTarget() (units.Composite, int) {
	read := func(i int) (*units.Definition, bool) {
		if i >= len(w.components) || w.components[i].Kind != parser.CompVariable {
			return nil, false
		}

		def := w.ctx.Units.Get(w.components[i].Name)

		return def, def != nil
	}

	readPower := func(i int) (int, int) {
		if i+1 >= len(w.components) || !w.components[i].IsOperator("^") {
			return 0, 0
		}

		lit := w.components[i+1]
		if lit.Kind != parser.CompLiteral {
			return 0, 0
		}

		n, ok := lit.Value.(*value.Number)
		if !ok || n.V != float64(int(n.V)) {
			return 0, 0
		}

		return int(n.V), 2
	}

	def, ok := read(w.pos)
	if !ok {
		return units.Composite{}, 0
	}

	parts := []units.Part{{Def: def, Power: 1}}
	i := w.pos + 1

	if power, consumed := readPower(i); consumed > 0 {
		parts[0].Power = power
		i += consumed
	}

	for i < len(w.components) {
		op := w.components[i]
		if !op.IsOperator("*") && !op.IsOperator("/") {
			break
		}

		next, ok := read(i + 1)
		if !ok {
			break
		}

		power := 1
		consumed := 2

		if extra, n := readPower(i + 2); n > 0 {
			power = extra
			consumed += n
		}

		if op.IsOperator("/") {
			power = -power
		}

		parts = append(parts, units.Part{Def: next, Power: power})
		i += consumed
	}

	return units.NewComposite(parts...), i - w.pos
}

func isError(v value.Value) bool {
	_, ok := v.(*value.Error)
	return ok
}
