package parser

import (
	"strings"
	"time"

	tok "github.com/shibukawa/calcpad/tokenizer"
	"github.com/shibukawa/calcpad/units"
	"github.com/shibukawa/calcpad/value"
)

// Parser parses one line at a time. It is stateless apart from the unit
// registry and the clock, so a single instance can be shared across
// documents.
type Parser struct {
	registry *units.Registry
	nowFn    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock fixes the reference time used for "today", "now", and
// year-less date literals.
func WithClock(fn func() time.Time) Option {
	return func(p *Parser) {
		p.nowFn = fn
	}
}

// New builds a parser over the given unit registry.
func New(registry *units.Registry, options ...Option) *Parser {
	p := &Parser{
		registry: registry,
		nowFn:    time.Now,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

func (p *Parser) now() time.Time {
	return p.nowFn()
}

// ParseLine classifies and parses a single line of input. It always
// returns a node; failures become NodeError nodes and lines the grammar
// does not own become NodePlainText.
func (p *Parser) ParseLine(text string, line int) *Node {
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		return &Node{Kind: NodePlainText, Line: line, Text: text}

	case strings.HasPrefix(trimmed, "#"):
		return &Node{Kind: NodeComment, Line: line, Text: text}

	case strings.HasPrefix(trimmed, "@"):
		return p.parseDirective(trimmed, line, text)
	}

	tokens, err := tok.New(trimmed, line, tok.Options{SkipWhitespace: true}).AllTokens()
	tokens = dropEOF(tokens)

	if err != nil {
		if looksMathematical(tokens) {
			return errorNode(line, text, value.CategoryParse, err.Error())
		}

		return &Node{Kind: NodePlainText, Line: line, Text: text}
	}

	hasTrigger := false
	if n := len(tokens); n > 0 && tokens[n-1].Type == tok.ARROW {
		hasTrigger = true
		tokens = tokens[:n-1]
	}

	if len(tokens) == 0 {
		return &Node{Kind: NodePlainText, Line: line, Text: text}
	}

	if tokens[0].Type == tok.IDENTIFIER && strings.EqualFold(tokens[0].Value, "solve") {
		return p.parseSolve(tokens, line, text, hasTrigger)
	}

	if isFunctionDefinition(tokens) {
		return p.parseFunctionDefinition(tokens, line, text)
	}

	if isAssignment(tokens) {
		return p.parseAssignment(tokens, line, text, hasTrigger)
	}

	return p.parseExpression(tokens, line, text, hasTrigger)
}

// parseDirective handles "@view ..." style lines. The directive name and
// its raw argument text are preserved for collaborators outside the core.
func (p *Parser) parseDirective(trimmed string, line int, text string) *Node {
	rest := strings.TrimPrefix(trimmed, "@")
	name, args, _ := strings.Cut(rest, " ")

	return &Node{
		Kind:     NodeViewDirective,
		Line:     line,
		Text:     text,
		Name:     name,
		RawValue: strings.TrimSpace(args),
	}
}

func (p *Parser) parseExpression(tokens []tok.Token, line int, text string, hasTrigger bool) *Node {
	components, err := p.parseComponents(tokens)
	if err != nil {
		if hint := detectHint(text); hint != HintNone {
			return &Node{
				Kind:       NodeExpression,
				Line:       line,
				Text:       text,
				RawValue:   strings.TrimSpace(text),
				HasTrigger: hasTrigger,
				Hint:       hint,
			}
		}

		if looksMathematical(tokens) {
			return errorNode(line, text, value.CategorySyntax, err.Error())
		}

		return &Node{Kind: NodePlainText, Line: line, Text: text}
	}

	if !hasTrigger && onlyVariables(components) {
		// a line of bare words with no operators or values is prose
		return &Node{Kind: NodePlainText, Line: line, Text: text}
	}

	if verr := validateComponents(components); verr != nil {
		return errorNode(line, text, verr.Category, verr.Message)
	}

	return &Node{
		Kind:       NodeExpression,
		Line:       line,
		Text:       text,
		RawValue:   strings.TrimSpace(text),
		Components: components,
		HasTrigger: hasTrigger,
	}
}

func (p *Parser) parseAssignment(tokens []tok.Token, line int, text string, hasTrigger bool) *Node {
	idx := indexOfTopLevel(tokens, tok.ASSIGN)

	nameTokens := tokens[:idx]
	valueTokens := tokens[idx+1:]

	words := make([]string, len(nameTokens))
	for i, t := range nameTokens {
		words[i] = t.Value
	}

	name := strings.Join(words, " ")

	components, err := p.parseComponents(valueTokens)
	if err != nil {
		if hint := detectHint(renderTokens(valueTokens)); hint != HintNone {
			return &Node{
				Kind:       NodeAssignment,
				Line:       line,
				Text:       text,
				Name:       name,
				RawValue:   renderTokens(valueTokens),
				HasTrigger: hasTrigger,
				Hint:       hint,
			}
		}

		return errorNode(line, text, value.CategorySyntax, err.Error())
	}

	if verr := validateComponents(components); verr != nil {
		return errorNode(line, text, verr.Category, verr.Message)
	}

	kind := NodeAssignment
	if hasTrigger {
		kind = NodeCombinedAssignment
	}

	return &Node{
		Kind:       kind,
		Line:       line,
		Text:       text,
		Name:       name,
		RawValue:   renderTokens(valueTokens),
		Components: components,
		HasTrigger: hasTrigger,
	}
}

func (p *Parser) parseFunctionDefinition(tokens []tok.Token, line int, text string) *Node {
	name := tokens[0].Value

	close, err := findMatchingParen(tokens, 1)
	if err != nil {
		return errorNode(line, text, value.CategorySyntax, err.Error())
	}

	var params []Param

	for _, segment := range splitTopLevel(tokens[2:close]) {
		if len(segment) == 0 {
			continue
		}

		param := Param{Name: segment[0].Value}

		if len(segment) > 2 && segment[1].Type == tok.ASSIGN {
			def, err := p.parseComponents(segment[2:])
			if err != nil {
				return errorNode(line, text, value.CategorySyntax, err.Error())
			}

			param.Default = def
		}

		params = append(params, param)
	}

	// the head grammar guarantees an "=" right after the closing paren
	body, err := p.parseComponents(tokens[close+2:])
	if err != nil {
		return errorNode(line, text, value.CategorySyntax, err.Error())
	}

	if verr := validateComponents(body); verr != nil {
		return errorNode(line, text, verr.Category, verr.Message)
	}

	return &Node{
		Kind:   NodeFunctionDefinition,
		Line:   line,
		Text:   text,
		Name:   name,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) parseSolve(tokens []tok.Token, line int, text string, hasTrigger bool) *Node {
	rest := tokens[1:]

	idx := indexOfTopLevel(rest, tok.ASSIGN)
	if idx < 0 {
		return errorNode(line, text, value.CategorySyntax, "solve requires an equation of the form lhs = rhs")
	}

	lhs, err := p.parseComponents(rest[:idx])
	if err != nil {
		return errorNode(line, text, value.CategorySyntax, err.Error())
	}

	rhs, err := p.parseComponents(rest[idx+1:])
	if err != nil {
		return errorNode(line, text, value.CategorySyntax, err.Error())
	}

	if len(lhs) == 0 || len(rhs) == 0 {
		return errorNode(line, text, value.CategorySyntax, "solve requires expressions on both sides of =")
	}

	return &Node{
		Kind:       NodeSolve,
		Line:       line,
		Text:       text,
		SolveLHS:   lhs,
		SolveRHS:   rhs,
		HasTrigger: hasTrigger,
	}
}

// indexOfTopLevel returns the index of the first token of the given type
// outside any parentheses, or -1.
func indexOfTopLevel(tokens []tok.Token, tt tok.TokenType) int {
	depth := 0

	for i, t := range tokens {
		switch t.Type {
		case tok.OPENED_PARENS:
			depth++
		case tok.CLOSED_PARENS:
			depth--
		default:
			if t.Type == tt && depth == 0 {
				return i
			}
		}
	}

	return -1
}

func dropEOF(tokens []tok.Token) []tok.Token {
	if n := len(tokens); n > 0 && tokens[n-1].Type == tok.EOF {
		return tokens[:n-1]
	}

	return tokens
}

// looksMathematical reports whether a failed line was plausibly intended
// as an expression rather than prose. Prose stays plain text; broken math
// becomes an error node.
func looksMathematical(tokens []tok.Token) bool {
	if len(tokens) == 0 {
		return false
	}

	switch tokens[0].Type {
	case tok.NUMBER, tok.CURRENCY, tok.OPENED_PARENS, tok.MINUS:
		return true
	}

	hasNumber := false
	hasOperator := false

	for _, t := range tokens {
		if t.Type == tok.NUMBER || t.Type == tok.CURRENCY {
			hasNumber = true
		}

		if t.IsOperator() || t.Type == tok.ASSIGN {
			hasOperator = true
		}
	}

	return hasNumber && hasOperator
}

// onlyVariables reports whether every component is a bare variable
// reference, which makes the line prose rather than an expression.
func onlyVariables(components []*Component) bool {
	if len(components) < 2 {
		return false
	}

	for _, c := range components {
		if c.Kind != CompVariable {
			return false
		}
	}

	return true
}

// detectHint inspects the raw text of a line whose component parse failed
// for shapes owned by specialized evaluators.
func detectHint(text string) Hint {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, ".."):
		return HintRange
	case strings.Contains(lower, "%") || strings.Contains(lower, "percent"):
		return HintPercent
	case containsDateWord(lower):
		return HintDate
	default:
		return HintNone
	}
}

func containsDateWord(lower string) bool {
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	}) {
		if isDateWord(word) {
			return true
		}
	}

	return false
}
