package parser

import (
	"strings"

	"github.com/shibukawa/calcpad/value"
)

// ComponentKind discriminates expression component variants.
type ComponentKind int

const (
	// CompLiteral carries a semantic value resolved at parse time. No
	// string-typed literal ever reaches evaluation.
	CompLiteral ComponentKind = iota
	// CompVariable references a variable by name.
	CompVariable
	// CompOperator is an arithmetic, comparison, percentage, conversion,
	// or range operator.
	CompOperator
	// CompFunction is a call with per-argument component lists.
	CompFunction
	// CompGroup is a parenthesized sub-expression.
	CompGroup
)

// Component is one element of the flat infix expression representation.
// Parenthesized groups nest through Children; operator precedence is
// applied by the evaluator's expression walker.
type Component struct {
	Kind     ComponentKind
	Text     string
	Value    value.Value
	Name     string
	Args     [][]*Component
	Children []*Component
}

// Literal wraps a resolved semantic value.
func Literal(text string, v value.Value) *Component {
	return &Component{Kind: CompLiteral, Text: text, Value: v}
}

// Variable references a name.
func Variable(name string) *Component {
	return &Component{Kind: CompVariable, Text: name, Name: name}
}

// Operator builds an operator component.
func Operator(symbol string) *Component {
	return &Component{Kind: CompOperator, Text: symbol}
}

// Function builds a call component.
func Function(name string, args [][]*Component) *Component {
	return &Component{Kind: CompFunction, Text: name, Name: name, Args: args}
}

// Group wraps a parenthesized sub-expression.
func Group(children []*Component) *Component {
	return &Component{Kind: CompGroup, Text: "(...)", Children: children}
}

// IsOperator reports whether the component is the given operator.
func (c *Component) IsOperator(symbol string) bool {
	return c.Kind == CompOperator && c.Text == symbol
}

// CollectVariables walks the component tree and gathers every referenced
// variable name, recursing through function arguments and groups. The
// result preserves first-reference order without duplicates.
func CollectVariables(components []*Component) []string {
	seen := make(map[string]struct{})

	var names []string

	var walk func(list []*Component)
	walk = func(list []*Component) {
		for _, c := range list {
			switch c.Kind {
			case CompVariable:
				if _, ok := seen[c.Name]; !ok {
					seen[c.Name] = struct{}{}
					names = append(names, c.Name)
				}
			case CompFunction:
				for _, arg := range c.Args {
					walk(arg)
				}
			case CompGroup:
				walk(c.Children)
			}
		}
	}
	walk(components)

	return names
}

// Render reconstructs a readable expression string from components, used
// for symbolic values and error messages.
func Render(components []*Component) string {
	parts := make([]string, 0, len(components))

	for _, c := range components {
		switch c.Kind {
		case CompLiteral:
			parts = append(parts, c.Text)
		case CompVariable:
			parts = append(parts, c.Name)
		case CompOperator:
			parts = append(parts, c.Text)
		case CompFunction:
			args := make([]string, len(c.Args))
			for i, arg := range c.Args {
				args[i] = Render(arg)
			}
			parts = append(parts, c.Name+"("+strings.Join(args, ", ")+")")
		case CompGroup:
			parts = append(parts, "("+Render(c.Children)+")")
		}
	}

	return strings.Join(parts, " ")
}
