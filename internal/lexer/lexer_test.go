package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/lexer"
	"github.com/sunshine-lang/sunc/internal/token"
)

func allTokens(t *testing.T, src string) ([]token.Token, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	l := lexer.New(src, reporter, "test.sun", token.NoSource)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			break
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, reporter
}

func TestSkipsWhitespaceLineAndBlockComments(t *testing.T) {
	toks, reporter := allTokens(t, "  // a line comment\n/* a block\ncomment */ fn")
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 2)
	assert.True(t, toks[0].IsKeyword(token.Fn))
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestUnterminatedBlockCommentIsAcceptedToEOF(t *testing.T) {
	toks, reporter := allTokens(t, "/* never closed")
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

func TestKeywordsAndIdentifiersAreDistinguished(t *testing.T) {
	toks, reporter := allTokens(t, "let x_1 fn")
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 4)
	assert.True(t, toks[0].IsKeyword(token.Let))
	assert.Equal(t, token.IdentifierTok, toks[1].Kind)
	assert.Equal(t, "x_1", toks[1].Identifier)
	assert.True(t, toks[2].IsKeyword(token.Fn))
}

func TestNumberLiteralBasesAndFraction(t *testing.T) {
	toks, reporter := allTokens(t, "0b101 0o17 0xFF 3.14")
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 5)

	assert.Equal(t, token.Binary, toks[0].Num.Base)
	assert.Equal(t, "101", toks[0].Num.Integer)

	assert.Equal(t, token.Octal, toks[1].Num.Base)
	assert.Equal(t, "17", toks[1].Num.Integer)

	assert.Equal(t, token.Hexadecimal, toks[2].Num.Base)
	assert.Equal(t, "FF", toks[2].Num.Integer)

	assert.Equal(t, token.Decimal, toks[3].Num.Base)
	assert.Equal(t, "3", toks[3].Num.Integer)
	require.NotNil(t, toks[3].Num.Fraction)
	assert.Equal(t, "14", *toks[3].Num.Fraction)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks, reporter := allTokens(t, `"a\nb\"c"`)
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\"c", toks[0].Str)
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, reporter := allTokens(t, `"abc`)
	assert.True(t, reporter.CompilationFailed())
}

func TestInvalidEscapeIsAnError(t *testing.T) {
	_, reporter := allTokens(t, `"a\qb"`)
	assert.True(t, reporter.CompilationFailed())
}

func TestLongestMatchPunctuation(t *testing.T) {
	toks, reporter := allTokens(t, "-> == = -")
	require.False(t, reporter.CompilationFailed())
	require.Len(t, toks, 5)
	assert.Equal(t, "->", toks[0].Punct)
	assert.Equal(t, "==", toks[1].Punct)
	assert.Equal(t, "=", toks[2].Punct)
	assert.Equal(t, "-", toks[3].Punct)
}

func TestPeekDoesNotConsume(t *testing.T) {
	reporter := diag.NewReporter()
	l := lexer.New("fn", reporter, "test.sun", token.NoSource)
	first, err := l.Peek()
	require.NoError(t, err)
	second, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	next, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, first, next)
	assert.True(t, l.IsEOF())
}
