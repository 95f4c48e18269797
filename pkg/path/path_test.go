package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/vcerr"
)

func TestParseRoundTrip(t *testing.T) {
	tts := []string{
		"",
		"/credentialSubject/degree",
		"/a~1b/c~0d",
		"/foo/0/bar",
	}
	for _, s := range tts {
		p, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("no-leading-slash")
	assert.ErrorIs(t, err, vcerr.ErrMalformedPointer)
}

func TestAppendOnlyOnJSONPointer(t *testing.T) {
	n := NQuad(3)
	_, err := n.Append("x")
	assert.Error(t, err)

	r := Root
	child, err := r.Append("credentialSubject")
	require.NoError(t, err)
	assert.Equal(t, "/credentialSubject", child.String())
}

func TestParentAndAncestors(t *testing.T) {
	p := MustParse("/a/b/c")
	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, "/a/b", parent.String())

	ancestors := p.Ancestors()
	require.Len(t, ancestors, 3)
	assert.Equal(t, "", ancestors[0].String())
	assert.Equal(t, "/a", ancestors[1].String())
	assert.Equal(t, "/a/b", ancestors[2].String())

	self := p.SelfAndAncestors()
	assert.Len(t, self, 4)
	assert.Equal(t, "/a/b/c", self[3].String())

	_, ok = Root.Parent()
	assert.False(t, ok)

	_, ok = NQuad(1).Parent()
	assert.False(t, ok)
}

func TestIsAncestorOfExactSegmentBoundary(t *testing.T) {
	foo := MustParse("/foo")
	foobar := MustParse("/foobar")
	assert.False(t, foo.IsAncestorOf(foobar))

	fooBar := MustParse("/foo/bar")
	assert.True(t, foo.IsAncestorOf(fooBar))
}

func TestTotalOrder(t *testing.T) {
	a := MustParse("/a")
	b := MustParse("/b")
	ab := MustParse("/a/b")
	n := NQuad(0)

	assert.True(t, a.Less(b))
	assert.True(t, a.Less(ab))
	assert.True(t, ab.Less(n))
	assert.False(t, n.Less(a))

	paths := []Path{n, b, ab, a}
	Sort(paths)
	assert.True(t, paths[0].Equal(a))
	assert.True(t, paths[1].Equal(ab))
	assert.True(t, paths[2].Equal(b))
	assert.True(t, paths[3].Equal(n))
}

func TestEquality(t *testing.T) {
	assert.True(t, MustParse("/a/b").Equal(MustParse("/a/b")))
	assert.False(t, MustParse("/a/b").Equal(MustParse("/a/c")))
	assert.False(t, MustParse("/a").Equal(NQuad(0)))
	assert.True(t, NQuad(5).Equal(NQuad(5)))
}

func TestNQuadDepthFixedAtOne(t *testing.T) {
	assert.Equal(t, 1, NQuad(7).Depth())
	assert.Equal(t, 0, Root.Depth())
	assert.Equal(t, 2, MustParse("/a/b").Depth())
}
