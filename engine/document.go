package engine

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shibukawa/calcpad/evaluator"
	"github.com/shibukawa/calcpad/parser"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// Document is the synchronous core the editor talks to: one SetLine call
// runs parse, evaluate, store update, and the dependent recomputation
// sweep before returning. The host must serialize edits; the core never
// runs two passes interleaved and never awaits I/O.
type Document struct {
	parser   *parser.Parser
	registry *evaluator.Registry
	store    *Store
	graph    *Graph
	ctx      *evaluator.Context
	lines    map[int]*lineState
}

type lineState struct {
	text    string
	node    *parser.Node
	render  *evaluator.RenderNode
	deps    []string
	varName string
}

// Option configures a Document.
type Option func(*config)

type config struct {
	clock   func() time.Time
	units   *units.Registry
	rates   value.RateProvider
	display value.DisplayOptions
}

// WithClock fixes the reference time for date literals and timestamps.
func WithClock(fn func() time.Time) Option {
	return func(c *config) { c.clock = fn }
}

// WithUnits supplies a unit registry, typically one extended with custom
// units from configuration.
func WithUnits(r *units.Registry) Option {
	return func(c *config) { c.units = r }
}

// WithRates supplies the synchronous exchange-rate snapshot used for
// currency conversion.
func WithRates(r value.RateProvider) Option {
	return func(c *config) { c.rates = r }
}

// WithDisplay overrides the result formatting options.
func WithDisplay(opts value.DisplayOptions) Option {
	return func(c *config) { c.display = opts }
}

// New builds an empty document.
func New(options ...Option) *Document {
	cfg := &config{
		clock:   time.Now,
		units:   units.NewRegistry(),
		display: value.DefaultDisplayOptions(),
	}

	for _, opt := range options {
		opt(cfg)
	}

	store := NewStore(cfg.clock)

	ctx := evaluator.NewContext(cfg.units)
	ctx.Variables = store
	ctx.Rates = cfg.rates
	ctx.Display = cfg.display

	return &Document{
		parser:   parser.New(cfg.units, parser.WithClock(cfg.clock)),
		registry: evaluator.NewRegistry(),
		store:    store,
		graph:    NewGraph(),
		ctx:      ctx,
		lines:    make(map[int]*lineState),
	}
}

// SetLine replaces the text of one line and returns its render result.
// Dependent lines are recomputed synchronously before SetLine returns.
func (d *Document) SetLine(line int, text string) *evaluator.RenderNode {
	st, ok := d.lines[line]
	if !ok {
		st = &lineState{}
		d.lines[line] = st
	}

	st.text = text
	st.node = d.parser.ParseLine(text, line)

	st.render = d.evaluateLine(line, st, map[string]struct{}{})

	return st.render
}

// RemoveLine deletes a line. If the line defined a variable, the binding
// is dropped and dependents are recomputed.
func (d *Document) RemoveLine(line int) {
	st, ok := d.lines[line]
	if !ok {
		return
	}

	delete(d.lines, line)

	if st.varName != "" {
		d.store.Delete(st.varName)
		d.graph.Remove(st.varName)
		d.recompute(st.varName, -1, map[string]struct{}{})
	}
}

// Define commits a binding that no line owns, such as a configured
// constant. Dependents recompute as if an assignment line changed.
func (d *Document) Define(name string, v value.Value, raw string) {
	d.store.Set(name, v, raw)
	d.recompute(name, -1, map[string]struct{}{})
}

// Render returns the last render result for a line.
func (d *Document) Render(line int) (*evaluator.RenderNode, bool) {
	st, ok := d.lines[line]
	if !ok {
		return nil, false
	}

	return st.render, true
}

// Variables returns a read-only snapshot for the variable panel.
func (d *Document) Variables() map[string]Variable {
	return d.store.Snapshot()
}

func (d *Document) evaluateLine(line int, st *lineState, seen map[string]struct{}) *evaluator.RenderNode {
	node := st.node

	oldVar := st.varName
	st.varName = ""
	st.deps = nil

	var rn *evaluator.RenderNode

	switch node.Kind {
	case parser.NodeFunctionDefinition:
		d.ctx.Functions[node.Name] = &evaluator.Function{
			Name:   node.Name,
			Params: node.Params,
			Body:   node.Body,
		}

		rn = d.registry.Evaluate(node, d.ctx)

	case parser.NodeAssignment, parser.NodeCombinedAssignment:
		rn = d.evaluateAssignment(line, st, oldVar, seen)

	case parser.NodeExpression:
		st.deps = d.dependencies(node.Components)

		if errv := d.upstreamError(st.deps); errv != nil {
			rn = errorRender(line, errv)
			break
		}

		rn = d.registry.Evaluate(node, d.ctx)

	case parser.NodeSolve:
		st.deps = d.dependencies(append(append([]*parser.Component{}, node.SolveLHS...), node.SolveRHS...))

		if errv := d.upstreamError(st.deps); errv != nil {
			rn = errorRender(line, errv)
			break
		}

		rn = d.registry.Evaluate(node, d.ctx)

	default:
		rn = d.registry.Evaluate(node, d.ctx)
	}

	if oldVar != "" && oldVar != st.varName {
		d.store.Delete(oldVar)
		d.graph.Remove(oldVar)
		d.recompute(oldVar, line, seen)
	}

	return rn
}

func (d *Document) evaluateAssignment(line int, st *lineState, oldVar string, seen map[string]struct{}) *evaluator.RenderNode {
	node := st.node
	name := node.Name

	deps := d.dependencies(node.Components)
	st.deps = deps

	// reject cycles before touching the store or claiming the name, so
	// the previous value, ownership, and unset state survive intact
	if d.graph.WouldCycle(name, deps) {
		st.varName = oldVar

		return errorRender(line, value.Errorf(value.CategoryRuntime,
			"cycle detected: %s depends on itself", name))
	}

	st.varName = name

	if errv := d.upstreamError(deps); errv != nil {
		d.store.MarkError(name, errv)
		d.recompute(name, line, seen)

		return errorRender(line, errv)
	}

	rn := d.registry.Evaluate(node, d.ctx)
	if rn.IsError() {
		d.store.MarkError(name, value.NewError(rn.Category, rn.Message))
		d.recompute(name, line, seen)

		return rn
	}

	d.store.Set(name, rn.Value, node.RawValue)
	d.graph.SetSources(name, deps)
	d.recompute(name, line, seen)

	return rn
}

func (d *Document) upstreamError(deps []string) *value.Error {
	for _, dep := range deps {
		if v, ok := d.store.Get(dep); ok && v.Err != nil {
			return value.Errorf(value.CategoryRuntime, "source value has an error: %s", dep)
		}
	}

	return nil
}

// recompute re-evaluates, in document order, every line that reads the
// changed variable. Assignments among them cascade through the same seen
// set, which both bounds the sweep and keeps it a single pass.
func (d *Document) recompute(changed string, originLine int, seen map[string]struct{}) {
	if _, ok := seen[changed]; ok {
		return
	}

	seen[changed] = struct{}{}

	for _, line := range slices.Sorted(maps.Keys(d.lines)) {
		if line == originLine {
			continue
		}

		st := d.lines[line]

		if slices.Contains(st.deps, changed) {
			st.render = d.evaluateLine(line, st, seen)
		}
	}
}

// dependencies collects referenced variable names, merging adjacent words
// into the longest name the store knows so "base price" counts as one
// dependency.
func (d *Document) dependencies(components []*parser.Component) []string {
	var names []string

	dedupe := map[string]struct{}{}

	add := func(name string) {
		if _, ok := dedupe[name]; ok {
			return
		}

		dedupe[name] = struct{}{}
		names = append(names, name)
	}

	var walk func(list []*parser.Component)
	walk = func(list []*parser.Component) {
		for i := 0; i < len(list); i++ {
			c := list[i]

			switch c.Kind {
			case parser.CompVariable:
				j := i
				var words []string

				for ; j < len(list) && list[j].Kind == parser.CompVariable; j++ {
					words = append(words, list[j].Name)
				}

				for k := 0; k < len(words); {
					consumed := 1
					name := words[k]

					for n := len(words) - k; n > 1; n-- {
						candidate := strings.Join(words[k:k+n], " ")
						if _, ok := d.store.Get(candidate); ok {
							name = candidate
							consumed = n

							break
						}
					}

					add(name)
					k += consumed
				}

				i = j - 1

			case parser.CompFunction:
				for _, arg := range c.Args {
					walk(arg)
				}

			case parser.CompGroup:
				walk(c.Children)
			}
		}
	}
	walk(components)

	return names
}

func errorRender(line int, errv *value.Error) *evaluator.RenderNode {
	return &evaluator.RenderNode{
		Kind:     evaluator.RenderError,
		Line:     line,
		Message:  errv.Message,
		Category: errv.Category,
	}
}
