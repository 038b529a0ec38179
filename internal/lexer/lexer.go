package lexer

import (
	"unicode"

	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/token"
)

// Lexer produces a lazy, peekable stream of tokens over a single file's
// text, per spec.md §4.2. Contract: Peek() returns the next token without
// consuming it; Next() returns and consumes; IsEOF() == Peek()==Eof; a
// successful Peek()'s result is exactly what the following Next() yields.
type Lexer struct {
	stream   *charStream
	reporter *diag.Reporter
	path     string
	source   token.SourceID

	cached    *token.Token
	cacheErr  error
}

// New builds a Lexer over input, reporting diagnostics through reporter
// tagged with path (used only for the --> path:line:col rendering).
func New(input string, reporter *diag.Reporter, path string, source token.SourceID) *Lexer {
	return &Lexer{stream: newCharStream(input), reporter: reporter, path: path, source: source}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.cached == nil && l.cacheErr == nil {
		tok, err := l.scan()
		l.cached = &tok
		l.cacheErr = err
	}
	if l.cacheErr != nil {
		return token.Token{}, l.cacheErr
	}
	return *l.cached, nil
}

// Next returns and consumes the next token.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.Peek()
	l.cached = nil
	l.cacheErr = nil
	return tok, err
}

// IsEOF reports whether the next token is Eof (ignoring lex errors).
func (l *Lexer) IsEOF() bool {
	tok, err := l.Peek()
	return err == nil && tok.Kind == token.EOF
}

func (l *Lexer) pos() token.Position {
	line, col := l.stream.location()
	return token.Position{Line: line, Col: col}
}

func (l *Lexer) span(start token.Position) token.Span {
	return token.Span{Source: l.source, Start: start, End: l.pos()}
}

func (l *Lexer) fail(start token.Position, err diag.CompilerError) error {
	l.reporter.ReportErr(err, l.span(start), l.path)
	return err
}

// scan implements spec.md §4.2's scanning algorithm.
func (l *Lexer) scan() (token.Token, error) {
	l.skipTrivia()

	start := l.pos()
	if l.stream.isEOF() {
		return token.Token{Kind: token.EOF, Span: l.span(start)}, nil
	}

	ch := l.stream.ch()
	switch {
	case ch == '"':
		return l.scanString(start)
	case unicode.IsDigit(ch) || (ch == '.' && unicode.IsDigit(l.stream.peek(1))):
		return l.scanNumber(start)
	case isIdentStart(ch):
		return l.scanIdentifierOrKeyword(start)
	case isASCIIPunct(ch):
		return l.scanPunctuation(start)
	default:
		l.stream.next()
		return token.Token{}, l.fail(start, diag.UnexpectedCharacter{Rune: ch})
	}
}

// skipTrivia consumes whitespace, line comments, and (non-nesting) block
// comments, per spec.md §4.2 step 1 and §6's "(non-nesting)" note.
func (l *Lexer) skipTrivia() {
	for {
		for unicode.IsSpace(l.stream.ch()) {
			l.stream.next()
		}
		if l.stream.ch() == '/' && l.stream.peek(1) == '/' {
			for l.stream.ch() != '\n' && !l.stream.isEOF() {
				l.stream.next()
			}
			continue
		}
		if l.stream.ch() == '/' && l.stream.peek(1) == '*' {
			l.stream.next()
			l.stream.next()
			for !l.stream.isEOF() {
				if l.stream.ch() == '*' && l.stream.peek(1) == '/' {
					l.stream.next()
					l.stream.next()
					break
				}
				l.stream.next()
			}
			// Unterminated block comments are accepted silently to EOF
			// per spec.md §9's pinned resolution of that open question.
			continue
		}
		return
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch rune) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func (l *Lexer) scanIdentifierOrKeyword(start token.Position) (token.Token, error) {
	var runes []rune
	for isIdentCont(l.stream.ch()) {
		runes = append(runes, l.stream.next())
	}
	if !l.stream.isEOF() && unicode.IsLetter(l.stream.ch()) && !isIdentCont(l.stream.ch()) {
		bad := l.stream.next()
		return token.Token{}, l.fail(start, diag.InvalidIdentifier{Rune: bad})
	}
	text := string(runes)
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: token.KeywordTok, Key: kw, Span: l.span(start)}, nil
	}
	return token.Token{Kind: token.IdentifierTok, Identifier: text, Span: l.span(start)}, nil
}

func digitValue(ch rune, base int) (int, bool) {
	var d int
	switch {
	case ch >= '0' && ch <= '9':
		d = int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		d = int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		d = int(ch-'A') + 10
	default:
		return 0, false
	}
	if d >= base {
		return 0, false
	}
	return d, true
}

// scanNumber implements spec.md §4.2's number grammar: optional 0b/0o/0x
// prefix, digits valid for the base, an optional '.' switching to
// fraction mode.
func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	base := token.Decimal
	baseDigits := 10
	if l.stream.ch() == '0' && (l.stream.peek(1) == 'b' || l.stream.peek(1) == 'o' || l.stream.peek(1) == 'x') {
		switch l.stream.peek(1) {
		case 'b':
			base, baseDigits = token.Binary, 2
		case 'o':
			base, baseDigits = token.Octal, 8
		case 'x':
			base, baseDigits = token.Hexadecimal, 16
		}
		l.stream.next()
		l.stream.next()
	}

	var integer []rune
	for {
		if _, ok := digitValue(l.stream.ch(), baseDigits); ok {
			integer = append(integer, l.stream.next())
			continue
		}
		break
	}

	var fraction *string
	if l.stream.ch() == '.' {
		l.stream.next()
		var frac []rune
		for {
			if _, ok := digitValue(l.stream.ch(), 10); ok {
				frac = append(frac, l.stream.next())
				continue
			}
			break
		}
		s := string(frac)
		fraction = &s
	}

	if len(integer) == 0 && (fraction == nil || *fraction == "") {
		return token.Token{}, l.fail(start, diag.InvalidNumber{Reason: "no digits"})
	}

	num := token.Number{Base: base, Integer: string(integer), Fraction: fraction}
	return token.Token{Kind: token.NumberTok, Num: num, Span: l.span(start)}, nil
}

var stringEscapes = map[rune]rune{
	'\'': '\'', '"': '"', 'n': '\n', 'r': '\r', 't': '\t', '\\': '\\', '0': 0,
}

// scanString implements the escapes listed in spec.md §4.2: "\' \" \n \r
// \t \\ \0".
func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	l.stream.next() // opening quote
	var out []rune
	for {
		if l.stream.isEOF() {
			return token.Token{}, l.fail(start, diag.UnterminatedString{})
		}
		ch := l.stream.ch()
		if ch == '"' {
			l.stream.next()
			break
		}
		if ch == '\\' {
			l.stream.next()
			esc := l.stream.ch()
			mapped, ok := stringEscapes[esc]
			if !ok {
				l.stream.next()
				return token.Token{}, l.fail(start, diag.InvalidEscape{Rune: esc})
			}
			l.stream.next()
			out = append(out, mapped)
			continue
		}
		out = append(out, l.stream.next())
	}
	return token.Token{Kind: token.StringTok, Str: string(out), Span: l.span(start)}, nil
}

func isASCIIPunct(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^',
		'(', ')', '{', '}', '[', ']', ',', ';', ':':
		return true
	}
	return false
}

// scanPunctuation performs longest-match lookup over the Punctuation
// dictionary, per spec.md §4.2: "grow a buffer by peeking successive
// ASCII-punctuation characters up to dictionary maximum length; record
// the longest prefix that is a dictionary key; consume exactly those
// characters."
func (l *Lexer) scanPunctuation(start token.Position) (token.Token, error) {
	var buf []rune
	for i := 0; i < maxPunctLen; i++ {
		ch := l.stream.peek(i)
		if ch == 0 || !isASCIIPunct(ch) {
			break
		}
		buf = append(buf, ch)
	}

	best := ""
	for n := len(buf); n >= 1; n-- {
		candidate := string(buf[:n])
		if _, ok := Punctuation[candidate]; ok {
			best = candidate
			break
		}
	}

	if best == "" {
		for range buf {
			l.stream.next()
		}
		return token.Token{}, l.fail(start, diag.UnknownPunctuation{Text: string(buf)})
	}
	for range best {
		l.stream.next()
	}
	return token.Token{Kind: token.PunctuationTok, Punct: best, Span: l.span(start)}, nil
}
