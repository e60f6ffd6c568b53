package percent

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

func parse(t *testing.T, line string) []*parser.Component {
	t.Helper()

	clock := func() time.Time {
		return time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	}

	node := parser.New(units.NewRegistry(), parser.WithClock(clock)).ParseLine(line, 1)
	assert.NotEqual(t, parser.NodeError, node.Kind)

	return node.Components
}

// evalFlat folds a lowered component list left to right. Lowered trees
// are fully parenthesized, so each group holds at most one operator and
// the fold is exact.
func evalFlat(t *testing.T, components []*parser.Component) float64 {
	t.Helper()

	var acc float64

	op := ""

	apply := func(v float64) {
		switch op {
		case "":
			acc = v
		case "+":
			acc += v
		case "-":
			acc -= v
		case "*":
			acc *= v
		case "/":
			acc /= v
		}
	}

	for _, c := range components {
		switch c.Kind {
		case parser.CompLiteral:
			n, ok := c.Value.(*value.Number)
			assert.True(t, ok)
			apply(n.V)
		case parser.CompGroup:
			apply(evalFlat(t, c.Children))
		case parser.CompOperator:
			op = c.Text
		default:
			t.Fatalf("unexpected component kind %d", c.Kind)
		}
	}

	return acc
}

func TestLowerPhrases(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
	}{
		{"of", "15% of 200", 30},
		{"on", "15% on 200", 230},
		{"off", "15% off 200", 170},
		{"chained on off", "10% on 20% off 200", 176},
		{"phrase after prefix", "100 + 10% of 50", 105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lowered, changed := Lower(parse(t, tt.line))
			assert.True(t, changed)
			assert.Equal(t, tt.want, evalFlat(t, lowered))
		})
	}
}

func TestLowerAgreesWithValueSemantics(t *testing.T) {
	for _, p := range []float64{0, 5, 12.5, 100, 250} {
		for _, y := range []float64{1, 50, 200, 1234.5} {
			lowered, changed := Lower([]*parser.Component{
				parser.Literal("p", value.NewPercentage(p)),
				parser.Operator("of"),
				parser.Literal("y", value.NewNumber(y)),
			})
			assert.True(t, changed)

			direct := value.NewPercentage(p).Of(value.NewNumber(y))
			n, ok := direct.(*value.Number)
			assert.True(t, ok)

			got := evalFlat(t, lowered)
			assert.True(t, got == n.V || (got-n.V) < 1e-9 && (n.V-got) < 1e-9)
		}
	}
}

func TestLowerLeavesVariablesAlone(t *testing.T) {
	lowered, changed := Lower(parse(t, "discount off base"))
	assert.False(t, changed)
	assert.Equal(t, 3, len(lowered))
}

func TestLowerRecursesIntoGroups(t *testing.T) {
	lowered, changed := Lower(parse(t, "2 * (15% of 200)"))
	assert.True(t, changed)
	assert.Equal(t, 60.0, evalFlat(t, lowered))
}

func TestLowerKeepsVariableNames(t *testing.T) {
	lowered, changed := Lower(parse(t, "15% of subtotal"))
	assert.True(t, changed)
	assert.Equal(t, []string{"subtotal"}, parser.CollectVariables(lowered))
}
