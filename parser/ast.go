// Package parser turns a line of calcpad text into an AST node carrying a
// component tree. Parsing never returns a Go error to the caller; every
// failure becomes an Error-kind node with a category and a human-readable
// message.
package parser

import "github.com/shibukawa/calcpad/value"

// NodeKind discriminates the AST node variants.
type NodeKind int

const (
	// NodePlainText is a line the grammar does not own (prose, blank).
	NodePlainText NodeKind = iota
	// NodeComment is a #-prefixed line.
	NodeComment
	// NodeViewDirective is an @view line consumed by the plotting
	// collaborator outside the core.
	NodeViewDirective
	// NodeAssignment stores a variable silently: "name = value".
	NodeAssignment
	// NodeExpression is a bare expression, rendered when triggered.
	NodeExpression
	// NodeCombinedAssignment stores and renders: "name = expr =>".
	NodeCombinedAssignment
	// NodeFunctionDefinition is "name(params) = body".
	NodeFunctionDefinition
	// NodeSolve is "solve <lhs> = <rhs>" for a single unknown.
	NodeSolve
	// NodeError carries a parse/syntax/semantic failure.
	NodeError
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodePlainText:
		return "plain text"
	case NodeComment:
		return "comment"
	case NodeViewDirective:
		return "view directive"
	case NodeAssignment:
		return "assignment"
	case NodeExpression:
		return "expression"
	case NodeCombinedAssignment:
		return "combined assignment"
	case NodeFunctionDefinition:
		return "function definition"
	case NodeSolve:
		return "solve"
	case NodeError:
		return "error"
	default:
		return "unknown"
	}
}

// Hint marks a line whose component parse failed but whose raw text
// plausibly encodes an alternate grammar owned by a specialized
// evaluator. The raw grammar error is suppressed in favor of the hint.
type Hint int

const (
	HintNone Hint = iota
	HintPercent
	HintDate
	HintRange
)

// Param is one formal parameter of a function definition, optionally
// with a default value expression.
type Param struct {
	Name    string
	Default []*Component
}

// Node is the per-line AST. A node is created once per edit and replaced
// wholesale on re-parse; it is never mutated after Parse returns.
type Node struct {
	Kind NodeKind
	Line int
	Text string

	// Name is the assignment target or function name. Multi-word
	// variable names keep their interior spaces.
	Name     string
	RawValue string

	// Components is the parsed right-hand side or bare expression.
	Components []*Component

	// HasTrigger marks a trailing "=>".
	HasTrigger bool

	// Function definition fields
	Params []Param
	Body   []*Component

	// Solve fields
	SolveLHS []*Component
	SolveRHS []*Component

	// Error fields
	Message  string
	Category value.Category

	// Hint routes fallback evaluation for lines whose component parse
	// was suppressed.
	Hint Hint
}

// IsError reports whether the node is an error node.
func (n *Node) IsError() bool {
	return n.Kind == NodeError
}

// errorNode builds an error-kind node for a line.
func errorNode(line int, text string, category value.Category, message string) *Node {
	return &Node{
		Kind:     NodeError,
		Line:     line,
		Text:     text,
		Message:  message,
		Category: category,
	}
}
