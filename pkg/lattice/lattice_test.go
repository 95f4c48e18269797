package lattice

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc/pkg/vcerr"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestNewRejectsNonSubsetBottom(t *testing.T) {
	_, err := New([]string{"a", "b"}, []string{"c"})
	assert.ErrorIs(t, err, vcerr.ErrMandatoryNotSubset)
}

func TestSelectableIsTopMinusBottom(t *testing.T) {
	l, err := New([]string{"a", "b", "c"}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, l.Bottom())
	assert.ElementsMatch(t, []string{"b", "c"}, l.Selectable())
}

func TestIsValidBounds(t *testing.T) {
	l, err := New([]string{"a", "b", "c"}, []string{"a"})
	require.NoError(t, err)

	assert.True(t, l.IsValid([]string{"a"}))
	assert.True(t, l.IsValid([]string{"a", "b"}))
	assert.False(t, l.IsValid([]string{"b"})) // missing mandatory "a"
	assert.False(t, l.IsValid([]string{"a", "d"})) // "d" not in top
}

func TestJoinMeetDiff(t *testing.T) {
	assert.ElementsMatch(t, []string{"a", "b", "c"}, Join([]string{"a", "b"}, []string{"b", "c"}))
	assert.ElementsMatch(t, []string{"b"}, Meet([]string{"a", "b"}, []string{"b", "c"}))
	assert.ElementsMatch(t, []string{"a"}, Diff([]string{"a", "b"}, []string{"b", "c"}))
}

func TestJoinCommutative(t *testing.T) {
	assert.Equal(t, sorted(Join([]string{"a"}, []string{"b"})), sorted(Join([]string{"b"}, []string{"a"})))
}

func TestNormalizeNilReturnsEmptySets(t *testing.T) {
	l, err := New([]string{"a"}, nil)
	require.NoError(t, err)
	n := l.Normalize(nil)
	assert.Empty(t, n.MandatoryHit)
	assert.Empty(t, n.SelectableHit)
	assert.Empty(t, n.Unavailable)
}

func TestNormalizePartitions(t *testing.T) {
	l, err := New([]string{"a", "b"}, []string{"a"})
	require.NoError(t, err)
	n := l.Normalize([]string{"a", "b", "z"})
	assert.Equal(t, []string{"a"}, n.MandatoryHit)
	assert.Equal(t, []string{"b"}, n.SelectableHit)
	assert.Equal(t, []string{"z"}, n.Unavailable)
}
