package evaluator

import (
	"math"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

const (
	solveTolerance  = 1e-9
	solveIterations = 100
)

// solveNode finds the single unknown in "solve lhs = rhs". Linear
// equations resolve exactly from two samples; anything else falls back
// to the secant method.
func solveNode(node *parser.Node, ctx *Context) (*RenderNode, Decision) {
	unknown, errv := findUnknown(node, ctx)
	if errv != nil {
		return errorRender(node.Line, errv), Match
	}

	residual := func(x float64) (float64, *value.Error) {
		scoped := ctx.withScope(map[string]value.Value{unknown: value.NewNumber(x)})

		lhs, errv := numericResult(EvaluateComponents(node.SolveLHS, scoped))
		if errv != nil {
			return 0, errv
		}

		rhs, errv := numericResult(EvaluateComponents(node.SolveRHS, scoped))
		if errv != nil {
			return 0, errv
		}

		return lhs - rhs, nil
	}

	root, errv := findRoot(residual)
	if errv != nil {
		return errorRender(node.Line, errv), Match
	}

	result := value.NewNumber(root)

	return &RenderNode{
		Kind:       RenderCombined,
		Line:       node.Line,
		Name:       unknown,
		Expression: parser.Render(node.SolveLHS) + " = " + parser.Render(node.SolveRHS),
		Result:     result.Format(ctx.Display),
		Value:      result,
		Visible:    true,
	}, Match
}

// findUnknown collects every variable the equation references and
// requires exactly one of them to be absent from the store.
func findUnknown(node *parser.Node, ctx *Context) (string, *value.Error) {
	names := parser.CollectVariables(node.SolveLHS)
	names = append(names, parser.CollectVariables(node.SolveRHS)...)

	var unknowns []string

	seen := map[string]struct{}{}

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}

		if _, ok := ctx.lookup(name); !ok {
			unknowns = append(unknowns, name)
		}
	}

	switch len(unknowns) {
	case 1:
		return unknowns[0], nil
	case 0:
		return "", value.NewError(value.CategoryRuntime,
			"solve found no unknown variable to solve for")
	default:
		return "", value.Errorf(value.CategoryRuntime,
			"solve needs exactly one unknown variable, found %d", len(unknowns))
	}
}

func numericResult(v value.Value) (float64, *value.Error) {
	switch t := v.(type) {
	case *value.Error:
		return 0, t
	case *value.Number:
		return t.V, nil
	case *value.Percentage:
		return t.Fraction(), nil
	case *value.Unit:
		return units.ToBase(t.V, t.Units), nil
	default:
		return 0, value.Errorf(value.CategorySemantic,
			"solve requires numeric expressions, got %s", v.Kind())
	}
}

func findRoot(residual func(float64) (float64, *value.Error)) (float64, *value.Error) {
	f0, errv := residual(0)
	if errv != nil {
		return 0, errv
	}

	f1, errv := residual(1)
	if errv != nil {
		return 0, errv
	}

	// linear shortcut: with slope s = f(1)-f(0), the root of s*x+f(0)
	// is exact whenever the equation really is linear
	if slope := f1 - f0; slope != 0 {
		root := -f0 / slope

		fr, errv := residual(root)
		if errv != nil {
			return 0, errv
		}

		if math.Abs(fr) <= solveTolerance {
			return root, nil
		}
	}

	// secant iteration for the nonlinear case
	x0, x1 := 0.0, 1.0

	if f0 == f1 {
		x1 = 2
		if f1, errv = residual(x1); errv != nil {
			return 0, errv
		}
	}

	for i := 0; i < solveIterations; i++ {
		if math.Abs(f1) <= solveTolerance {
			return x1, nil
		}

		if f1 == f0 {
			break
		}

		next := x1 - f1*(x1-x0)/(f1-f0)

		x0, f0 = x1, f1
		x1 = next

		if f1, errv = residual(x1); errv != nil {
			return 0, errv
		}
	}

	if math.Abs(f1) <= solveTolerance {
		return x1, nil
	}

	return 0, value.NewError(value.CategoryRuntime, "solve did not converge")
}
