package itempath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshine-lang/sunc/internal/itempath"
)

func TestAbsoluteJoinAndString(t *testing.T) {
	root := itempath.NewAbsolute("C")
	assert.Equal(t, "C", root.String())

	joined := root.Join("a", "b")
	assert.Equal(t, "C::a::b", joined.String())
	assert.Equal(t, []string{"a", "b"}, joined.Rest())
}

func TestAbsolutePopUnderflowFails(t *testing.T) {
	p := itempath.NewAbsolute("C", "a")
	_, ok := p.Pop(2)
	assert.False(t, ok)

	popped, ok := p.Pop(1)
	require.True(t, ok)
	assert.Equal(t, "C", popped.String())
}

func TestAbsoluteIsComparable(t *testing.T) {
	a := itempath.NewAbsolute("C", "a", "b")
	b := itempath.NewAbsolute("C", "a", "b")
	assert.Equal(t, a, b)
	assert.True(t, a == b)
}

func TestRelativeCrateResolvesToCrateRoot(t *testing.T) {
	ctx := itempath.NewAbsolute("C", "mod1", "mod2")
	rel := itempath.NewRelativeCrate("f")
	abs, ok := rel.ToAbsolute(ctx)
	require.True(t, ok)
	assert.Equal(t, "C::f", abs.String())
}

func TestRelativeSuperPopsContextSegments(t *testing.T) {
	ctx := itempath.NewAbsolute("C", "a", "b")
	rel := itempath.NewRelativeSuper(1, "f")
	abs, ok := rel.ToAbsolute(ctx)
	require.True(t, ok)
	assert.Equal(t, "C::a::f", abs.String())
}

func TestRelativeSuperUnderflowFails(t *testing.T) {
	ctx := itempath.NewAbsolute("C")
	rel := itempath.NewRelativeSuper(1, "f")
	_, ok := rel.ToAbsolute(ctx)
	assert.False(t, ok)
}

func TestRelativeIdentAppendsToContext(t *testing.T) {
	ctx := itempath.NewAbsolute("C", "mod1")
	rel := itempath.NewRelativeIdent("g")
	abs, ok := rel.ToAbsolute(ctx)
	require.True(t, ok)
	assert.Equal(t, "C::mod1::g", abs.String())
}

func TestParseRelativeRoundTripsWithString(t *testing.T) {
	cases := [][]string{
		{"crate", "f"},
		{"super", "super", "f"},
		{"a", "b", "g"},
	}
	for _, segs := range cases {
		rel := itempath.ParseRelative(segs)
		assert.Equal(t, joinSegs(segs), rel.String())
	}
}

func joinSegs(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "::" + s
	}
	return out
}
