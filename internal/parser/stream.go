// Package parser implements the shunting-yard operator-expression parser
// (spec.md §4.3) and the recursive-descent parser for items, statements,
// and blocks (spec.md §4.4), feeding an itemtable.Table keyed by absolute
// paths. Grounded on the teacher's internal/parser package: the
// TokenStream abstraction, Parser/recover shape, and the expect() helper
// are all kept (the teacher's own parallel ParseError accumulator was
// not — diagnostics here flow solely through the shared diag.Reporter);
// the grammar itself is replaced.
package parser

import (
	"github.com/sunshine-lang/sunc/internal/lexer"
	"github.com/sunshine-lang/sunc/internal/token"
)

// TokenStream abstracts over a Lexer so the grammar-level code never
// touches lexer errors directly: a lex error is reported to the shared
// diagnostic Reporter by the Lexer itself, and the stream silently
// retries until it can hand back a well-formed token (or real EOF),
// per spec.md §4.2's "recovery is by caller" contract — the caller here
// is this stream, not the grammar.
type TokenStream interface {
	Next() token.Token
	Peek() token.Token
	IsEOF() bool
	Pos() token.Position
}

type lexerStream struct {
	lx *lexer.Lexer

	cached    token.Token
	hasCached bool
}

// NewTokenStream adapts a Lexer into a TokenStream.
func NewTokenStream(lx *lexer.Lexer) TokenStream {
	return &lexerStream{lx: lx}
}

func (s *lexerStream) fill() {
	if s.hasCached {
		return
	}
	for {
		tok, err := s.lx.Next()
		if err == nil {
			s.cached = tok
			s.hasCached = true
			return
		}
		// Error already reported; keep scanning for the next token. Real
		// EOF never comes with an error, and every lex error consumes at
		// least one character, so this loop always makes progress.
	}
}

func (s *lexerStream) Next() token.Token {
	s.fill()
	tok := s.cached
	s.hasCached = false
	return tok
}

func (s *lexerStream) Peek() token.Token {
	s.fill()
	return s.cached
}

func (s *lexerStream) IsEOF() bool {
	return s.Peek().Kind == token.EOF
}

func (s *lexerStream) Pos() token.Position {
	return s.Peek().Pos()
}
