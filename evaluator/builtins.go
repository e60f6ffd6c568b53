package evaluator

import (
	"math"
	"sort"
	"strings"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/value"
)

const maxCallDepth = 64

// applyFunction dispatches a call component to a builtin or a
// user-defined function.
func (w *walker) applyFunction(call *parser.Component) value.Value {
	name := strings.ToLower(call.Name)

	if fn, ok := builtins[name]; ok {
		return fn(w, call)
	}

	if fn, ok := w.ctx.function(call.Name); ok {
		return w.applyUserFunction(fn, call)
	}

	return value.Errorf(value.CategoryRuntime, "unknown function: %s", call.Name)
}

// applyUserFunction binds arguments to parameters, filling defaults for
// trailing parameters, then evaluates the body in the overlaid scope.
func (w *walker) applyUserFunction(fn *Function, call *parser.Component) value.Value {
	if w.ctx.callDepth >= maxCallDepth {
		return value.Errorf(value.CategoryRuntime,
			"%s(): call depth limit exceeded", fn.Name)
	}

	if len(call.Args) > len(fn.Params) {
		return value.Errorf(value.CategoryRuntime,
			"%s() takes at most %d arguments, got %d", fn.Name, len(fn.Params), len(call.Args))
	}

	bindings := make(map[string]value.Value, len(fn.Params))

	for i, param := range fn.Params {
		if i < len(call.Args) {
			v := EvaluateComponents(call.Args[i], w.ctx)
			if isError(v) {
				return v
			}

			bindings[param.Name] = v

			continue
		}

		if param.Default == nil {
			return value.Errorf(value.CategoryRuntime,
				"%s() is missing its %q argument", fn.Name, param.Name)
		}

		v := EvaluateComponents(param.Default, w.ctx.withScope(bindings))
		if isError(v) {
			return v
		}

		bindings[param.Name] = v
	}

	scoped := w.ctx.withScope(bindings)
	scoped.callDepth = w.ctx.callDepth + 1

	return EvaluateComponents(fn.Body, scoped)
}

type builtinFunc func(*walker, *parser.Component) value.Value

var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"abs":   numericBuiltin("abs", math.Abs),
		"sqrt":  domainBuiltin("sqrt", math.Sqrt, func(v float64) bool { return v >= 0 }),
		"cbrt":  numericBuiltin("cbrt", math.Cbrt),
		"ln":    domainBuiltin("ln", math.Log, func(v float64) bool { return v > 0 }),
		"log":   domainBuiltin("log", math.Log10, func(v float64) bool { return v > 0 }),
		"exp":   numericBuiltin("exp", math.Exp),
		"sin":   numericBuiltin("sin", math.Sin),
		"cos":   numericBuiltin("cos", math.Cos),
		"tan":   numericBuiltin("tan", math.Tan),
		"asin":  domainBuiltin("asin", math.Asin, func(v float64) bool { return v >= -1 && v <= 1 }),
		"acos":  domainBuiltin("acos", math.Acos, func(v float64) bool { return v >= -1 && v <= 1 }),
		"atan":  numericBuiltin("atan", math.Atan),
		"round": builtinRound,
		"floor": numericBuiltin("floor", math.Floor),
		"ceil":  numericBuiltin("ceil", math.Ceil),

		"sum":    listBuiltin("sum", listSum),
		"avg":    listBuiltin("avg", listAvg),
		"min":    listBuiltin("min", listMin),
		"max":    listBuiltin("max", listMax),
		"median": listBuiltin("median", listMedian),
		"where":  builtinWhere,
	}
}

func numericBuiltin(name string, fn func(float64) float64) builtinFunc {
	return domainBuiltin(name, fn, nil)
}

func domainBuiltin(name string, fn func(float64) float64, domain func(float64) bool) builtinFunc {
	return func(w *walker, call *parser.Component) value.Value {
		n, errv := singleNumberArg(w, name, call)
		if errv != nil {
			return errv
		}

		if domain != nil && !domain(n) {
			return value.Errorf(value.CategoryRuntime,
				"%s() is undefined for %s", name, value.FormatFloat(n, w.ctx.Display))
		}

		return value.NewNumber(fn(n))
	}
}

func builtinRound(w *walker, call *parser.Component) value.Value {
	if len(call.Args) == 0 || len(call.Args) > 2 {
		return value.NewError(value.CategoryRuntime, "round() takes one or two arguments")
	}

	target := EvaluateComponents(call.Args[0], w.ctx)
	if isError(target) {
		return target
	}

	n, ok := target.(*value.Number)
	if !ok {
		return value.Errorf(value.CategoryRuntime, "round() expects a number, got %s", target.Kind())
	}

	digits := 0.0

	if len(call.Args) == 2 {
		d := EvaluateComponents(call.Args[1], w.ctx)
		if isError(d) {
			return d
		}

		dn, ok := d.(*value.Number)
		if !ok || dn.V != math.Trunc(dn.V) {
			return value.NewError(value.CategoryRuntime, "round() digits must be a whole number")
		}

		digits = dn.V
	}

	scale := math.Pow(10, digits)

	return value.NewNumber(math.Round(n.V*scale) / scale)
}

func singleNumberArg(w *walker, name string, call *parser.Component) (float64, *value.Error) {
	if len(call.Args) != 1 {
		return 0, value.Errorf(value.CategoryRuntime, "%s() takes exactly one argument", name)
	}

	v := EvaluateComponents(call.Args[0], w.ctx)

	switch t := v.(type) {
	case *value.Error:
		return 0, t
	case *value.Number:
		return t.V, nil
	default:
		return 0, value.Errorf(value.CategoryRuntime, "%s() expects a number, got %s", name, v.Kind())
	}
}

// listBuiltin gathers the argument list for an aggregate helper. A single
// argument must already be a list; multiple arguments form an implicit
// list, and a list among them would nest, which the helpers reject.
func listBuiltin(name string, fn func(string, []value.Value, *Context) value.Value) builtinFunc {
	return func(w *walker, call *parser.Component) value.Value {
		elems, errv := gatherList(w, name, call.Args)
		if errv != nil {
			return errv
		}

		return fn(name, elems, w.ctx)
	}
}

func gatherList(w *walker, name string, args [][]*parser.Component) ([]value.Value, *value.Error) {
	if len(args) == 0 {
		return nil, value.Errorf(value.CategoryRuntime, "%s() expects a list", name)
	}

	if len(args) == 1 {
		v := EvaluateComponents(args[0], w.ctx)

		switch t := v.(type) {
		case *value.Error:
			return nil, t
		case *value.List:
			return t.Elems, nil
		default:
			return nil, value.Errorf(value.CategoryRuntime,
				"%s() expects a list, got %s", name, v.Kind())
		}
	}

	elems := make([]value.Value, 0, len(args))

	for _, arg := range args {
		v := EvaluateComponents(arg, w.ctx)

		if errv, ok := v.(*value.Error); ok {
			return nil, errv
		}

		if _, ok := v.(*value.List); ok {
			return nil, value.Errorf(value.CategoryRuntime,
				"%s() does not support nested lists", name)
		}

		elems = append(elems, v)
	}

	return elems, nil
}

func listSum(name string, elems []value.Value, _ *Context) value.Value {
	if len(elems) == 0 {
		return value.NewNumber(0)
	}

	acc := elems[0]

	for _, e := range elems[1:] {
		acc = acc.Add(e)
		if isError(acc) {
			return acc
		}
	}

	return acc
}

func listAvg(name string, elems []value.Value, ctx *Context) value.Value {
	if len(elems) == 0 {
		return value.Errorf(value.CategoryRuntime, "%s() of an empty list", name)
	}

	total := listSum(name, elems, ctx)
	if isError(total) {
		return total
	}

	return total.Div(value.NewNumber(float64(len(elems))))
}

func listMin(name string, elems []value.Value, _ *Context) value.Value {
	return listExtreme(name, elems, -1)
}

func listMax(name string, elems []value.Value, _ *Context) value.Value {
	return listExtreme(name, elems, 1)
}

func listExtreme(name string, elems []value.Value, want int) value.Value {
	if len(elems) == 0 {
		return value.Errorf(value.CategoryRuntime, "%s() of an empty list", name)
	}

	best := elems[0]

	for _, e := range elems[1:] {
		cmp, errv := ordering(e, best)
		if errv != nil {
			return errv
		}

		if cmp == want {
			best = e
		}
	}

	return best
}

func listMedian(name string, elems []value.Value, _ *Context) value.Value {
	if len(elems) == 0 {
		return value.Errorf(value.CategoryRuntime, "%s() of an empty list", name)
	}

	sorted := make([]value.Value, len(elems))
	copy(sorted, elems)

	var sortErr *value.Error

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp, errv := ordering(sorted[i], sorted[j])
		if errv != nil && sortErr == nil {
			sortErr = errv
		}

		return cmp < 0
	})

	if sortErr != nil {
		return sortErr
	}

	mid := len(sorted) / 2

	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	half := sorted[mid-1].Add(sorted[mid])
	if isError(half) {
		return half
	}

	return half.Div(value.NewNumber(2))
}

// builtinWhere filters a list by a comparison written inside the call:
// where(xs > 5). The comparison splits the single argument into the list
// expression and the bound.
func builtinWhere(w *walker, call *parser.Component) value.Value {
	if len(call.Args) != 1 {
		return value.NewError(value.CategoryRuntime, "where() takes exactly one argument")
	}

	arg := call.Args[0]

	opIdx := -1
	opText := ""

	for i, c := range arg {
		if c.Kind != parser.CompOperator {
			continue
		}

		switch c.Text {
		case "==", "!=", "<", ">", "<=", ">=":
			opIdx = i
			opText = c.Text
		}

		if opIdx >= 0 {
			break
		}
	}

	if opIdx <= 0 || opIdx == len(arg)-1 {
		return value.NewError(value.CategoryRuntime,
			"where() needs a comparison such as where(xs > 5)")
	}

	source := EvaluateComponents(arg[:opIdx], w.ctx)

	switch t := source.(type) {
	case *value.Error:
		return t
	case *value.List:
		bound := EvaluateComponents(arg[opIdx+1:], w.ctx)
		if isError(bound) {
			return bound
		}

		var kept []value.Value

		for _, e := range t.Elems {
			if _, ok := e.(*value.List); ok {
				return value.NewError(value.CategoryRuntime,
					"where() does not support nested lists")
			}

			match := compareValues(opText, e, bound)
			if isError(match) {
				return match
			}

			if match.(*value.Number).V != 0 {
				kept = append(kept, e)
			}
		}

		return value.NewList(kept)
	default:
		return value.Errorf(value.CategoryRuntime,
			"where() expects a list, got %s", source.Kind())
	}
}
