// Package token defines the lexical primitives shared by the lexer, parser,
// and diagnostics packages: positions, spans, and the token tagged union.
package token

import "fmt"

// Position is a 1-based (line, column) location in a source file.
type Position struct {
	Line int
	Col  int
}

// String renders a position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Less reports whether p comes strictly before other in reading order.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// SourceID identifies a loaded file within a SourceMap. The zero value
// means "no source" (e.g. synthetic spans produced by recovery).
type SourceID int

// NoSource is the SourceID used for spans that are not tied to any file.
const NoSource SourceID = 0

// Span locates a range of source text, optionally within a known file.
type Span struct {
	Source SourceID
	Start  Position
	End    Position
}

// Base ranks the prefix that introduced a Number literal.
type Base int

const (
	Decimal Base = iota
	Binary
	Octal
	Hexadecimal
)

func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Hexadecimal:
		return "hexadecimal"
	default:
		return "decimal"
	}
}

// Number is the lexer's representation of a numeric literal: a base plus
// the raw integer and optional fractional digit runs (unparsed — this
// stage performs no arithmetic conversion, only recognition).
type Number struct {
	Base     Base
	Integer  string
	Fraction *string // nil when no '.' was present; non-nil (possibly empty) otherwise
}

// String renders the number approximately as it appeared in source.
func (n Number) String() string {
	s := n.Integer
	if n.Fraction != nil {
		s += "." + *n.Fraction
	}
	return s
}

// Keyword is the closed set of reserved words.
type Keyword int

const (
	Let Keyword = iota
	Fn
	If
	Else
	While
	For
	In
	Return
	Break
	Struct
	Mod
	True
	False
	Pub
	Super
	Crate
)

var keywordNames = map[string]Keyword{
	"let": Let, "fn": Fn, "if": If, "else": Else, "while": While,
	"for": For, "in": In, "return": Return, "break": Break,
	"struct": Struct, "mod": Mod, "true": True, "false": False,
	"pub": Pub, "super": Super, "crate": Crate,
}

var keywordText = func() map[Keyword]string {
	m := make(map[Keyword]string, len(keywordNames))
	for text, kw := range keywordNames {
		m[kw] = text
	}
	return m
}()

// LookupKeyword returns the Keyword for text and true, or false if text is
// not one of the reserved words.
func LookupKeyword(text string) (Keyword, bool) {
	kw, ok := keywordNames[text]
	return kw, ok
}

func (k Keyword) String() string {
	if s, ok := keywordText[k]; ok {
		return s
	}
	return "<unknown-keyword>"
}

// Kind distinguishes the members of the Token tagged union.
type Kind int

const (
	EOF Kind = iota
	PunctuationTok
	NumberTok
	StringTok
	KeywordTok
	IdentifierTok
)

// Token is the lexer's output unit: a tagged union discriminated by Kind.
// Exactly one of the payload fields is meaningful for a given Kind.
type Token struct {
	Kind       Kind
	Span       Span
	Punct      string
	Num        Number
	Str        string
	Key        Keyword
	Identifier string
}

// Pos returns the token's start position, for callers that only need a
// point rather than a full span.
func (t Token) Pos() Position { return t.Span.Start }

// String renders the token for diagnostics and test failure messages.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case PunctuationTok:
		return fmt.Sprintf("punct(%q)", t.Punct)
	case NumberTok:
		return fmt.Sprintf("number(%s)", t.Num.String())
	case StringTok:
		return fmt.Sprintf("string(%q)", t.Str)
	case KeywordTok:
		return fmt.Sprintf("keyword(%s)", t.Key.String())
	case IdentifierTok:
		return fmt.Sprintf("ident(%s)", t.Identifier)
	default:
		return "<invalid-token>"
	}
}

// IsPunct reports whether the token is punctuation equal to s.
func (t Token) IsPunct(s string) bool {
	return t.Kind == PunctuationTok && t.Punct == s
}

// IsKeyword reports whether the token is the keyword k.
func (t Token) IsKeyword(k Keyword) bool {
	return t.Kind == KeywordTok && t.Key == k
}
