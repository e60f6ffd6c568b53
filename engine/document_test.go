package engine

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/calcpad/evaluator"
	"github.com/shibukawa/calcpad/value"
)

func testDocument() *Document {
	clock := func() time.Time {
		return time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	}

	return New(WithClock(clock))
}

func TestAssignmentAndRecomputation(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(2, "b = a * 3")
	d.SetLine(3, "a + b =>")

	rn, ok := d.Render(3)
	assert.True(t, ok)
	assert.Equal(t, "8", rn.Result)

	// editing a cascades through b into line 3
	d.SetLine(1, "a = 10")

	rn, _ = d.Render(2)
	assert.Equal(t, "30", rn.Result)

	rn, _ = d.Render(3)
	assert.Equal(t, "40", rn.Result)
}

func TestRecomputationIsIdempotent(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(2, "b = a + 1")

	d.SetLine(1, "a = 2")
	d.SetLine(1, "a = 2")

	rn, _ := d.Render(2)
	assert.Equal(t, "3", rn.Result)

	vars := d.Variables()
	assert.Equal(t, 2, len(vars))
}

func TestCycleRejectionLeavesStoreUnchanged(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(2, "b = a + 1")

	rn := d.SetLine(1, "a = b * 2")
	assert.True(t, rn.IsError())
	assert.Equal(t, value.CategoryRuntime, rn.Category)

	// previous binding survives the rejected edit
	vars := d.Variables()
	n, ok := vars["a"].Value.(*value.Number)
	assert.True(t, ok)
	assert.Equal(t, 2.0, n.V)
}

func TestSelfReferenceRejected(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 5")

	rn := d.SetLine(1, "a = a + 1")
	assert.True(t, rn.IsError())

	vars := d.Variables()
	n, _ := vars["a"].Value.(*value.Number)
	assert.Equal(t, 5.0, n.V)
}

func TestRejectedCycleEditDoesNotStealBinding(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 1")

	rn := d.SetLine(2, "a = a + 1")
	assert.True(t, rn.IsError())

	// re-editing the rejected line must not release line 1's binding
	d.SetLine(2, "b = 2")

	vars := d.Variables()
	n, ok := vars["a"].Value.(*value.Number)
	assert.True(t, ok)
	assert.Equal(t, 1.0, n.V)

	rn = d.SetLine(3, "a + 1 =>")
	assert.False(t, rn.IsError())
	assert.Equal(t, "2", rn.Result)
}

func TestUpstreamErrorPropagation(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(2, "b = a + 1")

	rn := d.SetLine(1, "a = 1/0")
	assert.True(t, rn.IsError())

	// a keeps its last good value alongside the error flag
	vars := d.Variables()
	assert.NotZero(t, vars["a"].Err)
	n, ok := vars["a"].Value.(*value.Number)
	assert.True(t, ok)
	assert.Equal(t, 2.0, n.V)

	// b reports the upstream failure and keeps its own last good value
	brn, _ := d.Render(2)
	assert.True(t, brn.IsError())
	assert.Equal(t, "source value has an error: a", brn.Message)

	bn, ok := vars["b"].Value.(*value.Number)
	assert.True(t, ok)
	assert.Equal(t, 3.0, bn.V)

	// fixing a heals the chain
	d.SetLine(1, "a = 4")

	brn, _ = d.Render(2)
	assert.False(t, brn.IsError())
	assert.Equal(t, "5", brn.Result)
}

func TestFailedFirstAssignmentCreatesNothing(t *testing.T) {
	d := testDocument()

	rn := d.SetLine(1, "c = 1/0")
	assert.True(t, rn.IsError())

	assert.Equal(t, 0, len(d.Variables()))
}

func TestMultiWordDependency(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "discount = 15%")
	d.SetLine(2, "base price = $120.50")
	d.SetLine(3, "discount off base price =>")

	rn, _ := d.Render(3)
	assert.Equal(t, "$102.425", rn.Result)

	d.SetLine(2, "base price = $200")

	rn, _ = d.Render(3)
	assert.Equal(t, "$170", rn.Result)
}

func TestRemoveLineDropsVariable(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(2, "a * 2 =>")

	d.RemoveLine(1)

	assert.Equal(t, 0, len(d.Variables()))

	rn, _ := d.Render(2)
	assert.True(t, rn.IsError())
}

func TestReassignedLineReleasesOldName(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "a = 2")
	d.SetLine(1, "b = 3")

	vars := d.Variables()
	_, hasA := vars["a"]
	assert.False(t, hasA)
	_, hasB := vars["b"]
	assert.True(t, hasB)
}

func TestFunctionDefinitionAndUse(t *testing.T) {
	d := testDocument()

	d.SetLine(1, "vat(x) = x * 20%")
	rn := d.SetLine(2, "vat(50) =>")

	assert.False(t, rn.IsError())
	assert.Equal(t, "10", rn.Result)
}

func TestPlainTextLines(t *testing.T) {
	d := testDocument()

	rn := d.SetLine(1, "Shopping list for March")
	assert.Equal(t, evaluator.RenderPlainText, rn.Kind)

	rn = d.SetLine(2, "# a comment")
	assert.Equal(t, evaluator.RenderPlainText, rn.Kind)
}
