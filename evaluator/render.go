package evaluator

import "github.com/shibukawa/calcpad/value"

// RenderKind discriminates render result variants.
type RenderKind int

const (
	// RenderMath carries an expression and its formatted result.
	RenderMath RenderKind = iota
	// RenderCombined carries a variable name, its expression, and the
	// formatted result, for "name = expr" lines.
	RenderCombined
	// RenderError carries a message and a category.
	RenderError
	// RenderPlainText marks a line the engine leaves untouched.
	RenderPlainText
)

// RenderNode is what the core hands to the UI boundary for one line. The
// UI owns positioning and decoration; the core only produces strings.
type RenderNode struct {
	Kind RenderKind
	Line int

	// Name is set for combined renders.
	Name string
	// Expression is the evaluated expression text.
	Expression string
	// Result is the formatted value.
	Result string
	// Value is the semantic result backing Result.
	Value value.Value

	// Visible reports whether the line asked for its result to be shown
	// (a trailing "=>" or a bare expression).
	Visible bool

	Message  string
	Category value.Category
}

// IsError reports whether the render is an error variant.
func (r *RenderNode) IsError() bool {
	return r.Kind == RenderError
}

func mathRender(line int, expr string, v value.Value, opts value.DisplayOptions, visible bool) *RenderNode {
	if errv, ok := v.(*value.Error); ok {
		return errorRender(line, errv)
	}

	return &RenderNode{
		Kind:       RenderMath,
		Line:       line,
		Expression: expr,
		Result:     v.Format(opts),
		Value:      v,
		Visible:    visible,
	}
}

func combinedRender(line int, name, expr string, v value.Value, opts value.DisplayOptions, visible bool) *RenderNode {
	if errv, ok := v.(*value.Error); ok {
		return errorRender(line, errv)
	}

	return &RenderNode{
		Kind:       RenderCombined,
		Line:       line,
		Name:       name,
		Expression: expr,
		Result:     v.Format(opts),
		Value:      v,
		Visible:    visible,
	}
}

func errorRender(line int, errv *value.Error) *RenderNode {
	return &RenderNode{
		Kind:     RenderError,
		Line:     line,
		Message:  errv.Message,
		Category: errv.Category,
	}
}

func plainTextRender(line int) *RenderNode {
	return &RenderNode{Kind: RenderPlainText, Line: line}
}
