// Package itempath implements the absolute/relative path algebra from
// spec.md §4.6 and §3 ("ItemPath"), grounded on original_source's
// path.rs / path/absolute.rs / path/relative.rs.
package itempath

import "strings"

// Absolute identifies an item uniquely: the crate name plus an ordered
// list of segments. Absolute is comparable and usable as a map key (see
// spec.md §3: "ItemTable: mapping from AbsolutePath to Item").
type Absolute struct {
	Crate string
	rest  string // segments joined by "::", used only to make the type comparable/hashable
}

// segments materializes the segment list. Kept as a method (not a field) so
// Absolute stays comparable without needing a slice-free representation
// trick; callers needing []string should use this, not string splitting
// of Crate.
func (a Absolute) segments() []string {
	if a.rest == "" {
		return nil
	}
	return strings.Split(a.rest, "::")
}

// NewAbsolute builds an absolute path from a crate name and segments.
func NewAbsolute(crate string, segments ...string) Absolute {
	return Absolute{Crate: crate, rest: strings.Join(segments, "::")}
}

// Rest exposes the path's segments after the crate name.
func (a Absolute) Rest() []string { return a.segments() }

// Join returns a new Absolute with extra segments appended.
func (a Absolute) Join(segments ...string) Absolute {
	all := append(append([]string{}, a.segments()...), segments...)
	return NewAbsolute(a.Crate, all...)
}

// Pop returns a new Absolute with its last n segments removed, and false
// if n exceeds the number of segments available (the "super" underflow
// case from spec.md §8).
func (a Absolute) Pop(n int) (Absolute, bool) {
	segs := a.segments()
	if n > len(segs) {
		return Absolute{}, false
	}
	return NewAbsolute(a.Crate, segs[:len(segs)-n]...), true
}

// String renders an absolute path as "crate::seg1::seg2".
func (a Absolute) String() string {
	segs := a.segments()
	if len(segs) == 0 {
		return a.Crate
	}
	return a.Crate + "::" + strings.Join(segs, "::")
}

// StartKind distinguishes the three legal leading forms of a relative
// path, per spec.md §3: "relative path starts with crate, N×super, or a
// leading identifier."
type StartKind int

const (
	StartCrate StartKind = iota
	StartSuper
	StartIdent
)

// Relative is a not-yet-resolved path as written in source: `crate::...`,
// `super::super::...::...`, or `IDENT::...`.
type Relative struct {
	Start      StartKind
	SuperCount int      // meaningful only when Start == StartSuper
	LeadIdent  string   // meaningful only when Start == StartIdent
	Rest       []string // segments following the leading form
}

// NewRelativeCrate builds a `crate::rest...` relative path.
func NewRelativeCrate(rest ...string) Relative {
	return Relative{Start: StartCrate, Rest: rest}
}

// NewRelativeSuper builds a `super::...::super::rest...` relative path
// with n leading `super` segments.
func NewRelativeSuper(n int, rest ...string) Relative {
	return Relative{Start: StartSuper, SuperCount: n, Rest: rest}
}

// NewRelativeIdent builds an `IDENT::rest...` relative path.
func NewRelativeIdent(ident string, rest ...string) Relative {
	return Relative{Start: StartIdent, LeadIdent: ident, Rest: rest}
}

// ToAbsolute resolves a relative path against a context absolute path,
// exactly per spec.md §4.6:
//
//   - crate        → absolute root (crate, []) + rest
//   - super(n)      → pop n segments from context, or fail on underflow
//   - IDENT         → append IDENT then rest to context's current path
func (r Relative) ToAbsolute(context Absolute) (Absolute, bool) {
	switch r.Start {
	case StartCrate:
		return NewAbsolute(context.Crate, r.Rest...), true
	case StartSuper:
		popped, ok := context.Pop(r.SuperCount)
		if !ok {
			return Absolute{}, false
		}
		return popped.Join(r.Rest...), true
	case StartIdent:
		return context.Join(append([]string{r.LeadIdent}, r.Rest...)...), true
	default:
		return Absolute{}, false
	}
}

// String renders a relative path in source notation, for diagnostics.
func (r Relative) String() string {
	var head string
	switch r.Start {
	case StartCrate:
		head = "crate"
	case StartSuper:
		segs := make([]string, r.SuperCount)
		for i := range segs {
			segs[i] = "super"
		}
		head = strings.Join(segs, "::")
	case StartIdent:
		head = r.LeadIdent
	}
	if len(r.Rest) == 0 {
		return head
	}
	return head + "::" + strings.Join(r.Rest, "::")
}

// ParseRelative parses a relative path from its "::"-joined segment form,
// used by FromStr-style round-trip tests (spec.md §8:
// "AbsolutePath::from_str(p.to_string()) == Ok(p)").
func ParseRelative(segments []string) Relative {
	if len(segments) == 0 {
		return Relative{Start: StartIdent, LeadIdent: ""}
	}
	if segments[0] == "crate" {
		return NewRelativeCrate(segments[1:]...)
	}
	n := 0
	for n < len(segments) && segments[n] == "super" {
		n++
	}
	if n > 0 {
		return NewRelativeSuper(n, segments[n:]...)
	}
	return NewRelativeIdent(segments[0], segments[1:]...)
}
