package evaluator

import (
	"math"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

type fixedRates struct{}

func (fixedRates) Rate(from, to string) (decimal.Decimal, bool) {
	if from == "USD" && to == "EUR" {
		return decimal.NewFromFloat(0.9), true
	}

	return decimal.Decimal{}, false
}

type harness struct {
	parser   *parser.Parser
	registry *Registry
	ctx      *Context
	vars     MapSource
}

func newHarness() *harness {
	clock := func() time.Time {
		return time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	}

	reg := units.NewRegistry()
	ctx := NewContext(reg)
	ctx.Rates = fixedRates{}

	return &harness{
		parser:   parser.New(reg, parser.WithClock(clock)),
		registry: NewRegistry(),
		ctx:      ctx,
		vars:     ctx.Variables.(MapSource),
	}
}

// run evaluates a line, committing assignments and function definitions
// the way the document engine does.
func (h *harness) run(t *testing.T, line string) *RenderNode {
	t.Helper()

	node := h.parser.ParseLine(line, 1)

	if node.Kind == parser.NodeFunctionDefinition {
		h.ctx.Functions[node.Name] = &Function{
			Name:   node.Name,
			Params: node.Params,
			Body:   node.Body,
		}
	}

	rn := h.registry.Evaluate(node, h.ctx)

	if rn.Kind == RenderCombined && !rn.IsError() && node.Kind != parser.NodeSolve {
		h.vars[rn.Name] = rn.Value
	}

	return rn
}

func (h *harness) result(t *testing.T, line string) string {
	t.Helper()

	rn := h.run(t, line)
	assert.False(t, rn.IsError(), "unexpected error: %s", rn.Message)

	return rn.Result
}

func TestArithmeticScenarios(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"constant product", "23*PI", "72.2566310326"},
		{"unit addition", "2km+300m", "2.3 km"},
		{"grouped power", "(-2)^2", "4"},
		{"negated power", "-2^2", "-4"},
		{"ratio as percent", "20/80 as %", "25%"},
		{"implicit multiplication", "2(3+4)", "14"},
		{"right associative power", "2^3^2", "512"},
		{"division", "20/80", "0.25"},
		{"of ratio phrase", "5 of 20 is %", "25%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			assert.Equal(t, tt.want, h.result(t, tt.line))
		})
	}
}

func TestDiscountScenario(t *testing.T) {
	h := newHarness()

	h.run(t, "discount = 15%")
	h.run(t, "base price = $120.50")

	assert.Equal(t, "$102.425", h.result(t, "discount off base price =>"))
}

func TestPercentagePhrases(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"15% of 200", "30"},
		{"15% on 200", "230"},
		{"15% off 200", "170"},
		{"10% on 20% off 200", "176"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness()
			assert.Equal(t, tt.want, h.result(t, tt.line))
		})
	}
}

func TestVariables(t *testing.T) {
	h := newHarness()

	h.run(t, "x = 5")

	t.Run("implicit multiplication with variable", func(t *testing.T) {
		assert.Equal(t, "10", h.result(t, "2x"))
	})

	t.Run("bare reference renders stored value", func(t *testing.T) {
		rn := h.run(t, "x")
		assert.Equal(t, RenderMath, rn.Kind)
		assert.Equal(t, "5", rn.Result)
	})

	t.Run("unknown bare word falls through to plain text", func(t *testing.T) {
		rn := h.run(t, "y")
		assert.Equal(t, RenderPlainText, rn.Kind)
	})

	t.Run("undefined variable in arithmetic errors", func(t *testing.T) {
		rn := h.run(t, "y + 1")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategoryRuntime, rn.Category)
	})
}

func TestConversions(t *testing.T) {
	h := newHarness()

	t.Run("length", func(t *testing.T) {
		rn := h.run(t, "5 km to mi")
		u, ok := rn.Value.(*value.Unit)
		assert.True(t, ok)
		assert.True(t, math.Abs(u.V-3.10686) < 1e-4)
	})

	t.Run("duration to hours", func(t *testing.T) {
		assert.Equal(t, "72 h", h.result(t, "3 days in hours"))
	})

	t.Run("compound target", func(t *testing.T) {
		rn := h.run(t, "10 m/s to km/h")
		u, ok := rn.Value.(*value.Unit)
		assert.True(t, ok)
		assert.True(t, math.Abs(u.V-36) < 1e-9)
	})

	t.Run("currency", func(t *testing.T) {
		rn := h.run(t, "100 USD to EUR")
		cur, ok := rn.Value.(*value.Currency)
		assert.True(t, ok)
		assert.Equal(t, "EUR", cur.Symbol)
		assert.True(t, cur.Amount.Equal(decimal.NewFromInt(90)))
	})

	t.Run("unavailable rate", func(t *testing.T) {
		rn := h.run(t, "100 USD to GBP")
		assert.True(t, rn.IsError())
	})

	t.Run("data binary prefix", func(t *testing.T) {
		rn := h.run(t, "2 KiB to bytes")
		u, ok := rn.Value.(*value.Unit)
		assert.True(t, ok)
		assert.Equal(t, 2048.0, u.V)
	})

	t.Run("data decimal prefix", func(t *testing.T) {
		rn := h.run(t, "1 MB in bits")
		u, ok := rn.Value.(*value.Unit)
		assert.True(t, ok)
		assert.Equal(t, 8e6, u.V)
	})

	t.Run("unknown unit target", func(t *testing.T) {
		rn := h.run(t, "5 km to flurbs")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategoryRuntime, rn.Category)
	})
}

func TestRanges(t *testing.T) {
	h := newHarness()

	t.Run("simple", func(t *testing.T) {
		assert.Equal(t, "1, 2, 3, 4, 5", h.result(t, "1..5"))
	})

	t.Run("step", func(t *testing.T) {
		assert.Equal(t, "1, 3, 5, 7, 9", h.result(t, "1..10 step 2"))
	})

	t.Run("descending", func(t *testing.T) {
		assert.Equal(t, "3, 2, 1", h.result(t, "3..1"))
	})

	t.Run("fractional step rejected", func(t *testing.T) {
		rn := h.run(t, "1..5 step 0.5")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategorySemantic, rn.Category)
	})

	t.Run("date range needs duration step", func(t *testing.T) {
		rn := h.run(t, "Jan 1, 2026..Jan 10, 2026 step 3")
		assert.True(t, rn.IsError())
	})

	t.Run("date range with duration step", func(t *testing.T) {
		rn := h.run(t, "Jan 1, 2026..Jan 10, 2026 step 3 days")
		list, ok := rn.Value.(*value.List)
		assert.True(t, ok)
		assert.Equal(t, 4, len(list.Elems))
	})
}

func TestListHelpers(t *testing.T) {
	h := newHarness()

	h.run(t, "xs = 1, 4, 7, 9")

	t.Run("sum", func(t *testing.T) {
		assert.Equal(t, "21", h.result(t, "sum(xs)"))
	})

	t.Run("avg", func(t *testing.T) {
		assert.Equal(t, "5.25", h.result(t, "avg(xs)"))
	})

	t.Run("median", func(t *testing.T) {
		assert.Equal(t, "5.5", h.result(t, "median(xs)"))
	})

	t.Run("max of implicit list", func(t *testing.T) {
		assert.Equal(t, "3", h.result(t, "max(1, 2, 3)"))
	})

	t.Run("where filters", func(t *testing.T) {
		assert.Equal(t, "7, 9", h.result(t, "where(xs > 5)"))
	})

	t.Run("scalar argument error names the type", func(t *testing.T) {
		rn := h.run(t, "sum(5)")
		assert.True(t, rn.IsError())
		assert.Equal(t, "sum() expects a list, got number", rn.Message)
	})

	t.Run("nested list rejected", func(t *testing.T) {
		h.run(t, "ys = 2, 3")
		rn := h.run(t, "sum(xs, ys)")
		assert.True(t, rn.IsError())
		assert.Equal(t, "sum() does not support nested lists", rn.Message)
	})

	t.Run("where on scalar", func(t *testing.T) {
		h.run(t, "n = 4")
		rn := h.run(t, "where(n > 2)")
		assert.True(t, rn.IsError())
		assert.Equal(t, "where() expects a list, got number", rn.Message)
	})
}

func TestBuiltinMath(t *testing.T) {
	h := newHarness()

	t.Run("abs", func(t *testing.T) {
		assert.Equal(t, "4", h.result(t, "abs(-4)"))
	})

	t.Run("sqrt", func(t *testing.T) {
		assert.Equal(t, "3", h.result(t, "sqrt(9)"))
	})

	t.Run("negative sqrt errors", func(t *testing.T) {
		rn := h.run(t, "sqrt(-1)")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategoryRuntime, rn.Category)
	})

	t.Run("round with digits", func(t *testing.T) {
		assert.Equal(t, "3.14", h.result(t, "round(PI, 2)"))
	})

	t.Run("unknown function", func(t *testing.T) {
		rn := h.run(t, "frobnicate(3)")
		assert.True(t, rn.IsError())
		assert.Equal(t, "unknown function: frobnicate", rn.Message)
	})
}

func TestBareFunctionCalls(t *testing.T) {
	h := newHarness()

	t.Run("negative argument", func(t *testing.T) {
		assert.Equal(t, "4", h.result(t, "abs -4"))
	})

	t.Run("argument binds tighter than addition", func(t *testing.T) {
		assert.Equal(t, "5", h.result(t, "sqrt 16 + 1"))
	})

	t.Run("user function", func(t *testing.T) {
		h.run(t, "double(x) = x * 2")
		assert.Equal(t, "6", h.result(t, "double 3"))
	})

	t.Run("variable binding shadows the function", func(t *testing.T) {
		h.vars["abs"] = value.NewNumber(5)
		assert.Equal(t, "15", h.result(t, "abs 3"))

		delete(h.vars, "abs")
	})
}

func TestUserFunctions(t *testing.T) {
	h := newHarness()

	h.run(t, "square(x) = x^2")
	h.run(t, "scale(x, factor = 10) = x * factor")

	t.Run("apply", func(t *testing.T) {
		assert.Equal(t, "49", h.result(t, "square(7)"))
	})

	t.Run("default argument", func(t *testing.T) {
		assert.Equal(t, "30", h.result(t, "scale(3)"))
	})

	t.Run("explicit argument wins", func(t *testing.T) {
		assert.Equal(t, "6", h.result(t, "scale(3, 2)"))
	})

	t.Run("missing argument", func(t *testing.T) {
		rn := h.run(t, "square()")
		assert.True(t, rn.IsError())
	})

	t.Run("runaway recursion stops", func(t *testing.T) {
		h.run(t, "loop(x) = loop(x)")
		rn := h.run(t, "loop(1)")
		assert.True(t, rn.IsError())
	})
}

func TestSolve(t *testing.T) {
	h := newHarness()

	t.Run("linear", func(t *testing.T) {
		rn := h.run(t, "solve 2x + 1 = 7")
		assert.Equal(t, RenderCombined, rn.Kind)
		assert.Equal(t, "x", rn.Name)
		assert.Equal(t, "3", rn.Result)
	})

	t.Run("uses stored variables", func(t *testing.T) {
		h.run(t, "a = 4")
		rn := h.run(t, "solve a * y = 20")
		assert.Equal(t, "5", rn.Result)
	})

	t.Run("nonlinear", func(t *testing.T) {
		rn := h.run(t, "solve z^2 = 9")
		assert.False(t, rn.IsError())

		n, ok := rn.Value.(*value.Number)
		assert.True(t, ok)
		assert.True(t, math.Abs(n.V*n.V-9) < 1e-6)
	})

	t.Run("no unknown", func(t *testing.T) {
		h.run(t, "b = 1")
		rn := h.run(t, "solve b + 1 = 2")
		assert.True(t, rn.IsError())
	})
}

func TestDateArithmetic(t *testing.T) {
	h := newHarness()

	t.Run("date plus weeks", func(t *testing.T) {
		assert.Equal(t, "Mar 17, 2026", h.result(t, "Mar 3, 2026 + 2 weeks"))
	})

	t.Run("time rollover", func(t *testing.T) {
		assert.Equal(t, "01:00 (+1 day)", h.result(t, "23:30 + 90 minutes"))
	})
}

func TestDispatchOrder(t *testing.T) {
	h := newHarness()

	t.Run("comment is plain text", func(t *testing.T) {
		rn := h.run(t, "# budget notes")
		assert.Equal(t, RenderPlainText, rn.Kind)
	})

	t.Run("parse error surfaces category", func(t *testing.T) {
		rn := h.run(t, "2 * (3 + 4")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategorySyntax, rn.Category)
	})

	t.Run("percent hint never leaks grammar errors", func(t *testing.T) {
		rn := h.run(t, "(40% of")
		assert.True(t, rn.IsError())
		assert.Equal(t, value.CategorySyntax, rn.Category)
		assert.Equal(t, "could not read this as a percentage expression", rn.Message)
	})

	t.Run("units expression with user function defers to generic", func(t *testing.T) {
		h.run(t, "double(v) = v * 2")
		rn := h.run(t, "double(3) * 1 km")
		assert.False(t, rn.IsError())
		assert.Equal(t, "6 km", rn.Result)
	})
}
