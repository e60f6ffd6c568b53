package parser

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"

	tok "github.com/shibukawa/calcpad/tokenizer"
)

// Token-level combinators for line-head classification. The full
// expression grammar is precedence-based and lives in components.go; the
// combinators only decide which line shape we are looking at.

func primitive(types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func anyExcept(types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && !slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

var (
	identTok   = primitive(tok.IDENTIFIER)
	parenOpen  = primitive(tok.OPENED_PARENS)
	parenClose = primitive(tok.CLOSED_PARENS)
	assignTok  = primitive(tok.ASSIGN)
	commaTok   = primitive(tok.COMMA)
	anyTok     = anyExcept(tok.EOF)

	// param = identifier [ '=' default-tokens ]
	paramDefault = pc.Seq(
		assignTok,
		anyExcept(tok.COMMA, tok.CLOSED_PARENS, tok.EOF),
		pc.ZeroOrMore("default value", anyExcept(tok.COMMA, tok.CLOSED_PARENS, tok.EOF)),
	)
	paramItem = pc.Seq(identTok, pc.Optional(paramDefault))
	paramList = pc.Optional(pc.Seq(
		paramItem,
		pc.ZeroOrMore("more params", pc.Seq(commaTok, paramItem)),
	))

	// name(params) = body
	funcDefHead = pc.Seq(
		identTok, parenOpen, paramList, parenClose, assignTok,
		anyTok, pc.ZeroOrMore("body", anyTok),
		pc.EOS[tok.Token](),
	)

	// name words... = value
	assignHead = pc.Seq(
		identTok, pc.ZeroOrMore("name words", identTok), assignTok,
		anyTok, pc.ZeroOrMore("value", anyTok),
		pc.EOS[tok.Token](),
	)
)

func toParserTokens(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

func matches(grammar pc.Parser[tok.Token], tokens []tok.Token) bool {
	pctx := pc.NewParseContext[tok.Token]()

	_, _, err := grammar(pctx, toParserTokens(tokens))

	return err == nil
}

// isFunctionDefinition reports whether the token line has the shape
// "name(params) = body".
func isFunctionDefinition(tokens []tok.Token) bool {
	return matches(funcDefHead, tokens)
}

// isAssignment reports whether the token line has the shape
// "name [more name words] = value".
func isAssignment(tokens []tok.Token) bool {
	return matches(assignHead, tokens)
}
