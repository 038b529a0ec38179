package lexer

// charStream is a buffered peek/next reader over a borrowed rune slice,
// tracking 1-based line/column per spec.md §4.1. Grounded on the
// teacher's internal/lexer/scanner.go; generalized to the "never seek"
// single-pass contract the spec requires (no PeekN is exposed beyond what
// the lexer itself needs, and the buffer is never mutated after creation).
type charStream struct {
	runes  []rune
	length int
	pos    int // index of the rune ch() currently returns
	line   int
	col    int
}

func newCharStream(input string) *charStream {
	return &charStream{runes: []rune(input), length: len([]rune(input)), pos: 0, line: 1, col: 1}
}

// ch returns the rune at the stream's current read position, or 0 past EOF.
func (s *charStream) ch() rune {
	if s.pos >= s.length {
		return 0
	}
	return s.runes[s.pos]
}

// peek returns the n-th rune ahead (n=0 is the current one) without
// advancing, per spec.md §4.1: "peek(n)→char?...Peeking never advances."
func (s *charStream) peek(n int) rune {
	idx := s.pos + n
	if idx >= s.length || idx < 0 {
		return 0
	}
	return s.runes[idx]
}

// next consumes and returns the current rune, advancing line/column
// bookkeeping: "Locations advance one column per non-newline character;
// newline increments line and resets column."
func (s *charStream) next() rune {
	r := s.ch()
	if r == 0 {
		return 0
	}
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *charStream) isEOF() bool { return s.pos >= s.length }

func (s *charStream) location() (line, col int) { return s.line, s.col }
