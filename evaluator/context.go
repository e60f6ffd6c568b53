// Package evaluator turns parsed AST nodes into render results. A fixed
// priority chain of evaluators inspects each node; every evaluator can
// match, defer to the next candidate, or declare the node outside its
// domain.
package evaluator

import (
	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// VariableSource provides read access to stored variables. The document
// engine passes its store; tests can pass a plain map via MapSource.
type VariableSource interface {
	Lookup(name string) (value.Value, bool)
}

// MapSource adapts a map to VariableSource.
type MapSource map[string]value.Value

func (m MapSource) Lookup(name string) (value.Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Function is a user-defined function captured from a definition line.
type Function struct {
	Name   string
	Params []parser.Param
	Body   []*parser.Component
}

// Context carries everything an evaluation needs. There is no ambient
// state; every call receives its context explicitly.
type Context struct {
	Variables VariableSource
	Functions map[string]*Function
	Units     *units.Registry
	Rates     value.RateProvider
	Display   value.DisplayOptions

	callDepth int
}

// NewContext builds a context with empty variable and function tables.
func NewContext(registry *units.Registry) *Context {
	return &Context{
		Variables: MapSource{},
		Functions: map[string]*Function{},
		Units:     registry,
		Display:   value.DefaultDisplayOptions(),
	}
}

func (c *Context) lookup(name string) (value.Value, bool) {
	if c.Variables == nil {
		return nil, false
	}

	return c.Variables.Lookup(name)
}

func (c *Context) function(name string) (*Function, bool) {
	fn, ok := c.Functions[name]
	return fn, ok
}

// withScope overlays local bindings (function parameters, the solve
// unknown) over the current variable source.
func (c *Context) withScope(vars map[string]value.Value) *Context {
	scoped := *c
	scoped.Variables = &scope{parent: c.Variables, vars: vars}

	return &scoped
}

type scope struct {
	parent VariableSource
	vars   map[string]value.Value
}

func (s *scope) Lookup(name string) (value.Value, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}

	if s.parent == nil {
		return nil, false
	}

	return s.parent.Lookup(name)
}
