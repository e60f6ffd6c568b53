package evaluator

import (
	"strings"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/percent"
	"github.com/shibukawa/calcpad/value"
)

// Decision is the outcome of one evaluator's attempt at a node. Defer
// keeps the chain composable: an evaluator whose predicate matched can
// still pass the node on when it detects semantics it does not own.
type Decision int

const (
	NoMatch Decision = iota
	Defer
	Match
)

// Evaluator is one link in the priority chain.
type Evaluator interface {
	Name() string
	CanHandle(node *parser.Node) bool
	Evaluate(node *parser.Node, ctx *Context) (*RenderNode, Decision)
}

// Registry dispatches a node to the first evaluator that handles it, in
// fixed priority order: percentage, units, variable, generic expression,
// error, plain text.
type Registry struct {
	chain []Evaluator
}

// NewRegistry builds the standard chain.
func NewRegistry() *Registry {
	return &Registry{chain: []Evaluator{
		&percentEvaluator{},
		&unitsEvaluator{},
		&variableEvaluator{},
		&expressionEvaluator{},
		&errorEvaluator{},
		&plainTextEvaluator{},
	}}
}

// Evaluate runs the chain. The plain-text evaluator matches everything,
// so a render node always comes back.
func (r *Registry) Evaluate(node *parser.Node, ctx *Context) *RenderNode {
	for _, ev := range r.chain {
		if !ev.CanHandle(node) {
			continue
		}

		rn, decision := ev.Evaluate(node, ctx)
		if decision == Match {
			return rn
		}
	}

	return plainTextRender(node.Line)
}

// hasComponents reports whether the node carries an evaluable component
// list.
func hasComponents(node *parser.Node) bool {
	switch node.Kind {
	case parser.NodeExpression, parser.NodeAssignment, parser.NodeCombinedAssignment:
		return len(node.Components) > 0
	default:
		return false
	}
}

func walkComponents(components []*parser.Component, visit func(*parser.Component) bool) bool {
	for _, c := range components {
		if visit(c) {
			return true
		}

		switch c.Kind {
		case parser.CompGroup:
			if walkComponents(c.Children, visit) {
				return true
			}
		case parser.CompFunction:
			for _, arg := range c.Args {
				if walkComponents(arg, visit) {
					return true
				}
			}
		}
	}

	return false
}

func containsPercent(components []*parser.Component) bool {
	return walkComponents(components, func(c *parser.Component) bool {
		if c.Kind == parser.CompOperator {
			switch c.Text {
			case "of", "on", "off", "%":
				return true
			}

			return false
		}

		if c.Kind == parser.CompLiteral {
			_, ok := c.Value.(*value.Percentage)
			return ok
		}

		return false
	})
}

func containsUnits(components []*parser.Component) bool {
	return walkComponents(components, func(c *parser.Component) bool {
		if c.Kind == parser.CompOperator {
			switch c.Text {
			case "to", "in", "as":
				return true
			}

			return false
		}

		if c.Kind == parser.CompLiteral {
			_, ok := c.Value.(*value.Unit)
			return ok
		}

		return false
	})
}

func containsCalendar(components []*parser.Component) bool {
	return walkComponents(components, func(c *parser.Component) bool {
		if c.Kind != parser.CompLiteral {
			return false
		}

		switch c.Value.(type) {
		case *value.Date, *value.TimeOfDay, *value.Duration:
			return true
		default:
			return false
		}
	})
}

func containsUserFunction(components []*parser.Component) bool {
	return walkComponents(components, func(c *parser.Component) bool {
		if c.Kind != parser.CompFunction {
			return false
		}

		_, builtin := builtins[strings.ToLower(c.Name)]

		return !builtin
	})
}

// evaluateNode lowers percentage phrases and runs the walker.
func evaluateNode(node *parser.Node, ctx *Context) value.Value {
	lowered, _ := percent.Lower(node.Components)

	return EvaluateComponents(lowered, ctx)
}

// renderValue wraps an evaluation result in the render variant the node
// kind asks for.
func renderValue(node *parser.Node, v value.Value, ctx *Context) *RenderNode {
	switch node.Kind {
	case parser.NodeAssignment, parser.NodeCombinedAssignment:
		return combinedRender(node.Line, node.Name, node.RawValue, v, ctx.Display, node.HasTrigger)
	default:
		return mathRender(node.Line, node.RawValue, v, ctx.Display, true)
	}
}

// percentEvaluator owns percentage phrases and percentage hint lines.
type percentEvaluator struct{}

func (e *percentEvaluator) Name() string { return "percentage" }

func (e *percentEvaluator) CanHandle(node *parser.Node) bool {
	if node.Hint == parser.HintPercent {
		return true
	}

	return hasComponents(node) && containsPercent(node.Components)
}

func (e *percentEvaluator) Evaluate(node *parser.Node, ctx *Context) (*RenderNode, Decision) {
	if node.Hint == parser.HintPercent && len(node.Components) == 0 {
		return errorRender(node.Line, value.NewError(value.CategorySyntax,
			"could not read this as a percentage expression")), Match
	}

	return renderValue(node, evaluateNode(node, ctx), ctx), Match
}

// unitsEvaluator owns unit arithmetic and conversions, deferring when
// the expression mixes in calendar values or user-defined functions.
type unitsEvaluator struct{}

func (e *unitsEvaluator) Name() string { return "units" }

func (e *unitsEvaluator) CanHandle(node *parser.Node) bool {
	return hasComponents(node) && containsUnits(node.Components)
}

func (e *unitsEvaluator) Evaluate(node *parser.Node, ctx *Context) (*RenderNode, Decision) {
	if containsCalendar(node.Components) || containsUserFunction(node.Components) {
		return nil, Defer
	}

	return renderValue(node, evaluateNode(node, ctx), ctx), Match
}

// variableEvaluator renders a line that is nothing but a stored variable
// reference, deferring when the name is unknown so prose falls through
// to plain text.
type variableEvaluator struct{}

func (e *variableEvaluator) Name() string { return "variable" }

func (e *variableEvaluator) CanHandle(node *parser.Node) bool {
	if node.Kind != parser.NodeExpression || len(node.Components) == 0 {
		return false
	}

	for _, c := range node.Components {
		if c.Kind != parser.CompVariable {
			return false
		}
	}

	return true
}

func (e *variableEvaluator) Evaluate(node *parser.Node, ctx *Context) (*RenderNode, Decision) {
	words := make([]string, len(node.Components))
	for i, c := range node.Components {
		words[i] = c.Name
	}

	name := strings.Join(words, " ")

	v, ok := ctx.lookup(name)
	if !ok {
		return nil, Defer
	}

	return mathRender(node.Line, name, v, ctx.Display, true), Match
}

// expressionEvaluator is the generic arithmetic evaluator. It also owns
// solve lines and the non-percentage hint fallbacks.
type expressionEvaluator struct{}

func (e *expressionEvaluator) Name() string { return "expression" }

func (e *expressionEvaluator) CanHandle(node *parser.Node) bool {
	switch node.Kind {
	case parser.NodeExpression, parser.NodeAssignment, parser.NodeCombinedAssignment,
		parser.NodeSolve, parser.NodeFunctionDefinition:
		return true
	default:
		return false
	}
}

func (e *expressionEvaluator) Evaluate(node *parser.Node, ctx *Context) (*RenderNode, Decision) {
	switch node.Kind {
	case parser.NodeFunctionDefinition:
		// definitions are stored by the engine; nothing renders
		return plainTextRender(node.Line), Match

	case parser.NodeSolve:
		return solveNode(node, ctx)
	}

	if len(node.Components) == 0 {
		switch node.Hint {
		case parser.HintDate:
			return errorRender(node.Line, value.NewError(value.CategorySyntax,
				"could not read this as a date expression")), Match
		case parser.HintRange:
			return errorRender(node.Line, value.NewError(value.CategorySyntax,
				"malformed range expression")), Match
		default:
			return nil, Defer
		}
	}

	if node.Kind == parser.NodeExpression && isSingleUnknownVariable(node, ctx) {
		return nil, Defer
	}

	return renderValue(node, evaluateNode(node, ctx), ctx), Match
}

// isSingleUnknownVariable reports a bare variable line whose name the
// store does not know; such lines read as prose.
func isSingleUnknownVariable(node *parser.Node, ctx *Context) bool {
	for _, c := range node.Components {
		if c.Kind != parser.CompVariable {
			return false
		}
	}

	words := make([]string, len(node.Components))
	for i, c := range node.Components {
		words[i] = c.Name
	}

	_, ok := ctx.lookup(strings.Join(words, " "))

	return !ok
}

// errorEvaluator renders parse-time failures.
type errorEvaluator struct{}

func (e *errorEvaluator) Name() string { return "error" }

func (e *errorEvaluator) CanHandle(node *parser.Node) bool {
	return node.IsError()
}

func (e *errorEvaluator) Evaluate(node *parser.Node, _ *Context) (*RenderNode, Decision) {
	return errorRender(node.Line, value.NewError(node.Category, node.Message)), Match
}

// plainTextEvaluator matches everything left over.
type plainTextEvaluator struct{}

func (e *plainTextEvaluator) Name() string { return "plain text" }

func (e *plainTextEvaluator) CanHandle(*parser.Node) bool { return true }

func (e *plainTextEvaluator) Evaluate(node *parser.Node, _ *Context) (*RenderNode, Decision) {
	return plainTextRender(node.Line), Match
}
