// Package lexer turns source text into a lazy, peekable token stream, per
// spec.md §4.2. Static tables follow the teacher's internal/lexer/tables.go
// layout (fixed maps queried by the scanning loop) generalized to this
// language's punctuation dictionary (spec.md §3/§4.3).
package lexer

import "github.com/sunshine-lang/sunc/internal/token"

// PunctProps is one entry of the punctuation dictionary (spec.md §3):
// "{ is_unary, is_binary, binary_priority, is_assign, is_stopper }".
type PunctProps struct {
	IsUnary        bool
	IsBinary       bool
	BinaryPriority int
	IsAssign       bool
	// IsStopper marks punctuation that terminates operator-expression
	// parsing without being consumed by it (the glossary's "Stopper").
	IsStopper bool
}

// Punctuation is the fixed dictionary driving longest-match tokenization
// and the shunting-yard parser. Priorities are spec.md §4.3's literal
// table: "* / % 128; + - 96; >> << 64; & 52; ^ 51; | 50; && 31; || 30;
// comparisons == != > < >= <= 16."
var Punctuation = map[string]PunctProps{
	"+": {IsUnary: true, IsBinary: true, BinaryPriority: 96},
	"-": {IsUnary: true, IsBinary: true, BinaryPriority: 96},
	"!": {IsUnary: true},
	"*": {IsBinary: true, BinaryPriority: 128},
	"/": {IsBinary: true, BinaryPriority: 128},
	"%": {IsBinary: true, BinaryPriority: 128},
	">>": {IsBinary: true, BinaryPriority: 64},
	"<<": {IsBinary: true, BinaryPriority: 64},
	"&":  {IsBinary: true, BinaryPriority: 52},
	"^":  {IsBinary: true, BinaryPriority: 51},
	"|":  {IsBinary: true, BinaryPriority: 50},
	"&&": {IsBinary: true, BinaryPriority: 31},
	"||": {IsBinary: true, BinaryPriority: 30},
	"==": {IsBinary: true, BinaryPriority: 16},
	"!=": {IsBinary: true, BinaryPriority: 16},
	">":  {IsBinary: true, BinaryPriority: 16},
	"<":  {IsBinary: true, BinaryPriority: 16},
	">=": {IsBinary: true, BinaryPriority: 16},
	"<=": {IsBinary: true, BinaryPriority: 16},

	"=":  {IsAssign: true},
	"+=": {IsAssign: true},
	"-=": {IsAssign: true},
	"*=": {IsAssign: true},
	"/=": {IsAssign: true},
	"%=": {IsAssign: true},

	"(": {},
	")": {IsStopper: true},
	"{": {IsStopper: true},
	"}": {IsStopper: true},
	"[": {},
	"]": {IsStopper: true},
	",": {IsStopper: true},
	";": {IsStopper: true},
	":": {IsStopper: true},
	"::": {},
	"->": {IsStopper: true},
}

// maxPunctLen is the longest key in Punctuation, computed once so the
// scanner knows how far to grow its lookahead buffer.
var maxPunctLen = func() int {
	max := 0
	for k := range Punctuation {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}()

// IsStopper reports whether text is a stopper punctuation, per the
// glossary: "a punctuation that terminates operator-expression parsing
// without being consumed by it."
func IsStopper(text string) bool {
	p, ok := Punctuation[text]
	return ok && p.IsStopper
}

// LookupKeyword resolves text against the closed reserved-word set from
// spec.md §3, reusing token.LookupKeyword as the single source of truth.
func LookupKeyword(text string) (token.Keyword, bool) {
	return token.LookupKeyword(text)
}
